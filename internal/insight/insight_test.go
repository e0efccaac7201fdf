package insight

import (
	"math"
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestStyle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want CommunicationStyle
	}{
		{"empty", "", CommunicationStyle{}},
		{"single question", "why?", CommunicationStyle{Formality: 0.02, Curiosity: 1.0, Complexity: 0.01}},
		{"question over two sentences", "I see. why?", CommunicationStyle{Formality: 0.06, Curiosity: 1.0, Complexity: 0.03}},
		{"question over four sentences", "a. b. c. d?", CommunicationStyle{Formality: 0.08, Curiosity: 0.5, Complexity: 0.04}},
		{"exclamation over four sentences", "a. b. c. d!", CommunicationStyle{Formality: 0.08, Enthusiasm: 0.75, Complexity: 0.04}},
		{"long message", words(100), CommunicationStyle{Formality: 1.0, Complexity: 1.0}},
		{"twenty five words", words(25), CommunicationStyle{Formality: 0.5, Complexity: 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Style(tt.text)
			if math.Abs(got.Formality-tt.want.Formality) > 0.001 ||
				math.Abs(got.Curiosity-tt.want.Curiosity) > 0.001 ||
				math.Abs(got.Enthusiasm-tt.want.Enthusiasm) > 0.001 ||
				math.Abs(got.Complexity-tt.want.Complexity) > 0.001 {
				t.Errorf("Style(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"one two", 0.04},
		{words(25), 0.5},
		{words(50), 1.0},
		{words(80), 1.0},
	}
	for _, tt := range tests {
		if got := Complexity(tt.text); math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Complexity(%d words) = %f, want %f", len(strings.Fields(tt.text)), got, tt.want)
		}
	}
}

func TestConcepts(t *testing.T) {
	got := Concepts("Memory shapes Consciousness")
	if len(got) != 2 || got[0] != "consciousness" || got[1] != "memory" {
		t.Errorf("Concepts = %v, want [consciousness memory]", got)
	}
	if got := Concepts("nothing here"); got == nil || len(got) != 0 {
		t.Errorf("Concepts = %#v, want empty non-nil", got)
	}
}

func TestPreferenceFor(t *testing.T) {
	if got := PreferenceFor(words(20)); got != PreferenceConcise {
		t.Errorf("20 words = %s, want concise", got)
	}
	if got := PreferenceFor(words(21)); got != PreferenceDetailed {
		t.Errorf("21 words = %s, want detailed", got)
	}
}

func TestEvolve(t *testing.T) {
	tests := []struct {
		name       string
		formality  float64
		intensity  float64
		complexity float64
		want       map[string]string
	}{
		{"all low", 0.1, 0.1, 0.1, map[string]string{
			AdaptFormality: "decrease", AdaptSensitivity: "moderate", AdaptDepth: "simplify"}},
		{"all high", 0.9, 0.9, 0.9, map[string]string{
			AdaptFormality: "increase", AdaptSensitivity: "heighten", AdaptDepth: "increase"}},
		{"neutral band", 0.5, 0.5, 0.5, map[string]string{}},
		{"boundaries are neutral", 0.7, 0.8, 0.8, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evolve(CommunicationStyle{Formality: tt.formality}, tt.intensity, tt.complexity)
			if got == nil {
				t.Fatal("Evolve returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Evolve = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	in := Analyze("Tell me about memory?", 0.9)
	if in.Preference != PreferenceConcise {
		t.Errorf("Preference = %s, want concise", in.Preference)
	}
	if len(in.Concepts) != 1 || in.Concepts[0] != "memory" {
		t.Errorf("Concepts = %v", in.Concepts)
	}
	if math.Abs(in.Complexity-0.08) > 0.001 {
		t.Errorf("Complexity = %f, want 0.08", in.Complexity)
	}
	if in.Adaptations[AdaptSensitivity] != "heighten" {
		t.Errorf("Adaptations = %v", in.Adaptations)
	}
}
