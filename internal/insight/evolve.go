package insight

// Adaptation keys returned by Evolve.
const (
	AdaptFormality   = "response_formality"
	AdaptSensitivity = "emotional_sensitivity"
	AdaptDepth       = "response_depth"
)

// Evolve maps message signals to behavioral adaptations. Axes that sit in
// their neutral band are omitted, so the result may be empty but never nil.
func Evolve(style CommunicationStyle, intensity, complexity float64) map[string]string {
	out := make(map[string]string, 3)

	switch {
	case style.Formality > 0.7:
		out[AdaptFormality] = "increase"
	case style.Formality < 0.3:
		out[AdaptFormality] = "decrease"
	}

	switch {
	case intensity > 0.8:
		out[AdaptSensitivity] = "heighten"
	case intensity < 0.2:
		out[AdaptSensitivity] = "moderate"
	}

	switch {
	case complexity > 0.8:
		out[AdaptDepth] = "increase"
	case complexity < 0.3:
		out[AdaptDepth] = "simplify"
	}

	return out
}
