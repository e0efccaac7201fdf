package trust

import (
	"math"
	"testing"

	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
)

func TestEmpathyGrowth_Floor(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		score lexicon.ScoreResult
	}{
		{"empty", "", lexicon.ScoreResult{}},
		{"neutral", "ok", lexicon.ScoreResult{Intensity: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmpathyGrowth(tt.text, tt.score, 0, nil)
			if got != MinEmpathy {
				t.Errorf("EmpathyGrowth(%q) = %f, want %f", tt.text, got, MinEmpathy)
			}
		})
	}
}

func TestEmpathyGrowth_Range(t *testing.T) {
	text := "I feel vulnerable, it is hard to share this but I trust you. I need help, " +
		"I want to learn and grow, present with you in this moment, deeply aware and fully engaged"
	score := lexicon.ScoreResult{Intensity: 1.0, Matched: []string{"vulnerable", "trust", "longing"}, MatchCount: 40}
	got := EmpathyGrowth(text, score, 1.0, &RelationshipState{RelationshipDepth: 1.0})
	if got < MinEmpathy || got > 1.0 {
		t.Errorf("EmpathyGrowth = %f, out of range", got)
	}
	if got != 1.0 {
		t.Errorf("EmpathyGrowth = %f, want saturation at 1.0", got)
	}
}

func TestEmpathyGrowth_NeedHelp(t *testing.T) {
	// resonance 0.3*(2/3.5), support 0.3+0.4, vulnerability 0.3*0.2
	got := EmpathyGrowth("I need help", lexicon.ScoreResult{Intensity: 0.3}, 0, nil)
	want := 0.3*(2.0/3.5)*0.25 + 0.7*0.25 + 0.06*0.35
	if math.Abs(got-want) > 0.001 {
		t.Errorf("EmpathyGrowth = %f, want %f", got, want)
	}
}

func TestEmpathyGrowth_PriorDepth(t *testing.T) {
	score := lexicon.ScoreResult{Intensity: 0.3}
	base := EmpathyGrowth("I need help", score, 0, nil)

	tests := []struct {
		depth float64
		bonus float64
	}{
		{0, 0},
		{0.5, 0.04},
		{1.0, 0.08},
		{2.0, 0.08}, // depth clamped to 1
	}
	for _, tt := range tests {
		got := EmpathyGrowth("I need help", score, 0, &RelationshipState{RelationshipDepth: tt.depth})
		if math.Abs(got-base-tt.bonus) > 0.001 {
			t.Errorf("depth %f: bonus = %f, want %f", tt.depth, got-base, tt.bonus)
		}
	}
}

func TestEmpathyGrowth_DensityMultiplier(t *testing.T) {
	score := lexicon.ScoreResult{Intensity: 0.3, MatchCount: 1}
	dense := EmpathyGrowth("I need help", score, 0, nil)
	sparse := EmpathyGrowth("I need help with this one today please", score, 0, nil)
	if math.Abs(dense/sparse-1.15) > 0.001 {
		t.Errorf("dense/sparse = %f, want 1.15", dense/sparse)
	}
}

func TestEmpathyGrowth_VulnerabilityWeighsMost(t *testing.T) {
	score := lexicon.ScoreResult{Intensity: 0.5}
	vulnerable := EmpathyGrowth("It is hard to share this, I feel vulnerable and I trust you", score, 0, nil)
	neutral := EmpathyGrowth("the weather report is ready", score, 0, nil)
	if vulnerable <= neutral {
		t.Errorf("vulnerable %f should exceed neutral %f", vulnerable, neutral)
	}
}

func TestEmpathyGrowth_ComplexityRaisesPresence(t *testing.T) {
	score := lexicon.ScoreResult{Intensity: 0.3}
	low := EmpathyGrowth("I need help", score, 0, nil)
	high := EmpathyGrowth("I need help", score, 1, nil)
	if math.Abs(high-low-0.025) > 0.001 {
		t.Errorf("complexity delta = %f, want 0.025", high-low)
	}
}
