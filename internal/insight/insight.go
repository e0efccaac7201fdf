// Package insight extracts lightweight communication signals from a message
// and turns them into behavioral adaptation hints.
package insight

import "strings"

// Preference is the inferred verbosity a user prefers.
type Preference string

const (
	PreferenceDetailed Preference = "detailed"
	PreferenceConcise  Preference = "concise"
)

// detailedWordCount is the word count above which a message reads as detailed.
const detailedWordCount = 20

var concepts = []string{"consciousness", "memory", "learning", "intelligence"}

// CommunicationStyle scores a message on four axes, each in [0,1].
type CommunicationStyle struct {
	Formality  float64 `json:"formality"`
	Curiosity  float64 `json:"curiosity"`
	Enthusiasm float64 `json:"enthusiasm"`
	Complexity float64 `json:"complexity"`
}

// Insights is everything learned from a single message.
type Insights struct {
	Style       CommunicationStyle `json:"communication_style"`
	Complexity  float64            `json:"complexity_level"`
	Concepts    []string           `json:"conceptual_insights"`
	Preference  Preference         `json:"communication_preference"`
	Adaptations map[string]string  `json:"behavioral_changes,omitempty"`
}

// Analyze collects all insights for text. intensity is the lexicon intensity
// of the same message and only feeds the adaptations.
func Analyze(text string, intensity float64) Insights {
	style := Style(text)
	complexity := Complexity(text)
	return Insights{
		Style:       style,
		Complexity:  complexity,
		Concepts:    Concepts(text),
		Preference:  PreferenceFor(text),
		Adaptations: Evolve(style, intensity, complexity),
	}
}

// Style measures length-driven formality, question and exclamation density.
// Densities are per sentence, where sentences are split on '.'.
func Style(text string) CommunicationStyle {
	words := float64(len(strings.Fields(text)))
	sentences := float64(max(1, strings.Count(text, ".")+1))
	questions := float64(strings.Count(text, "?")) / sentences
	exclamations := float64(strings.Count(text, "!")) / sentences

	return CommunicationStyle{
		Formality:  min(1.0, words/50),
		Curiosity:  min(1.0, questions*2),
		Enthusiasm: min(1.0, exclamations*3),
		Complexity: min(1.0, words/100),
	}
}

// Complexity is the interaction complexity, saturating at 50 words.
func Complexity(text string) float64 {
	return min(1.0, float64(len(strings.Fields(text)))/50)
}

// Concepts returns the known concepts mentioned in text. Never nil.
func Concepts(text string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, c := range concepts {
		if strings.Contains(lower, c) {
			found = append(found, c)
		}
	}
	return found
}

// PreferenceFor infers whether the user writes in detail or concisely.
func PreferenceFor(text string) Preference {
	if len(strings.Fields(text)) > detailedWordCount {
		return PreferenceDetailed
	}
	return PreferenceConcise
}
