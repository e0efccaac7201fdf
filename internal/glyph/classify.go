package glyph

import "math"

// Rule is one step of the classification cascade.
type Rule struct {
	Name  string
	Match func(valence, intensity float64) bool
	Glyph Glyph
}

// rules is evaluated top to bottom and the first match wins. Ranges overlap,
// so the order is part of the contract. The final rule always matches.
var rules = []Rule{
	{"spark_wonder", func(v, i float64) bool { return v >= 0.85 && i >= 0.7 }, SparkWonder},
	{"gentle_ache", func(v, i float64) bool { return i >= 0.5 && v <= -0.3 }, GentleAche},
	{"fierce_passion", func(v, i float64) bool { return i >= 0.85 }, FiercePassion},
	{"silent_intimacy", func(v, i float64) bool { return i >= 0.65 && between(v, 0.35, 0.65) }, SilentIntimacy},
	{"spiral_mystery", func(v, i float64) bool {
		return (i >= 0.7 && between(v, 0.15, 0.5)) || (i >= 0.6 && between(v, 0.2, 0.35))
	}, SpiralMystery},
	{"resonant_responsibility", func(v, i float64) bool { return i >= 0.45 && between(v, -0.2, 0.35) }, ResonantResponsibility},
	{"growth_nurture", func(v, i float64) bool { return i >= 0.35 && between(v, 0.45, 0.8) }, GrowthNurture},

	// Fallback chain.
	{"fallback_strong_positive", func(v, i float64) bool { return v >= 0.7 }, SparkWonder},
	{"fallback_strong_negative", func(v, i float64) bool { return v <= -0.4 }, GentleAche},
	{"fallback_high_intensity_positive", func(v, i float64) bool { return i >= 0.6 && v >= 0.3 }, FiercePassion},
	{"fallback_high_intensity", func(v, i float64) bool { return i >= 0.6 }, SpiralMystery},
	{"fallback_non_negative", func(v, i float64) bool { return v >= 0 }, GrowthNurture},
	{"fallback_default", func(v, i float64) bool { return true }, ResonantResponsibility},
}

// Rules returns a copy of the ordered cascade.
func Rules() []Rule {
	return append([]Rule(nil), rules...)
}

// Classify maps valence and intensity to a glyph. Inputs are clamped to
// [-1,1] and [0,1] first; NaN is treated as 0.
func Classify(valence, intensity float64) Glyph {
	g, _ := Explain(valence, intensity)
	return g
}

// Explain is Classify that also reports which rule fired.
func Explain(valence, intensity float64) (Glyph, string) {
	v := clamp(valence, -1, 1)
	i := clamp(intensity, 0, 1)
	for _, r := range rules {
		if r.Match(v, i) {
			return r.Glyph, r.Name
		}
	}
	// Unreachable: the last rule matches everything.
	return ResonantResponsibility, "fallback_default"
}

func between(x, lo, hi float64) bool {
	return x >= lo && x <= hi
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
