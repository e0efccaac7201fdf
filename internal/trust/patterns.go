package trust

import (
	"strings"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
)

// recentWindow is how many trailing entries feed quality and trajectory.
const recentWindow = 5

var (
	vulnerabilityMarkers = []string{"miss", "longing", "vulnerable", "intimate"}
	growthMarkers        = []string{"learning", "growing", "develop"}
)

// Patterns summarizes a relationship's history ahead of a trust update.
type Patterns struct {
	Quality                Quality    `json:"interaction_quality"`
	EmotionalConsistency   float64    `json:"emotional_consistency"`
	Trajectory             Trajectory `json:"trust_trajectory"`
	VulnerabilityFrequency float64    `json:"vulnerability_sharing_frequency"`
	GrowthCollaboration    float64    `json:"growth_collaboration_score"`
	ResonancePatterns      []string   `json:"empathy_resonance_patterns"`
}

// AnalyzePatterns derives quality, trajectory and sharing frequencies from
// prior history. current is the matched phrase set of the interaction being
// processed; its first five phrases are kept as resonance patterns.
//
// With fewer than two prior entries the relationship is "developing" and the
// trajectory "stable", which leaves the trust shift unscaled.
func AnalyzePatterns(history []HistoryEntry, current []string) Patterns {
	p := Patterns{
		Quality:              QualityDeveloping,
		EmotionalConsistency: 0.5,
		Trajectory:           TrajectoryStable,
	}

	if len(history) > 1 {
		recent := history
		if len(recent) > recentWindow {
			recent = recent[len(recent)-recentWindow:]
		}

		var qualitySum, shiftSum float64
		for _, h := range recent {
			qualitySum += (h.EmpathyGrowth + abs(h.TrustShift)) / 2
			shiftSum += h.TrustShift
		}
		avgQuality := qualitySum / float64(len(recent))
		switch {
		case avgQuality > 0.5:
			p.Quality = QualityDeep
		case avgQuality > 0.25:
			p.Quality = QualityMeaningful
		default:
			p.Quality = QualitySurface
		}

		avgShift := shiftSum / float64(len(recent))
		switch {
		case avgShift > 0.05:
			p.Trajectory = TrajectoryGrowing
		case avgShift < -0.02:
			p.Trajectory = TrajectoryDeclining
		}

		var tags int
		unique := make(map[string]struct{})
		vulnerable, growth := 0, 0
		for _, h := range history {
			tags += len(h.Tags)
			for _, t := range h.Tags {
				unique[t] = struct{}{}
			}
			if glyph.Vulnerable(h.Glyph) || anyTagContains(h.Tags, vulnerabilityMarkers) {
				vulnerable++
			}
			if anyTagContains(h.Tags, growthMarkers) {
				growth++
			}
		}
		if tags > 0 {
			p.EmotionalConsistency = min(1.0, float64(tags)/float64(len(unique)*2))
		}
		p.VulnerabilityFrequency = float64(vulnerable) / float64(len(history))
		p.GrowthCollaboration = float64(growth) / float64(len(history))
	}

	if len(current) > recentWindow {
		current = current[:recentWindow]
	}
	p.ResonancePatterns = append([]string{}, current...)
	return p
}

func anyTagContains(tags, markers []string) bool {
	for _, t := range tags {
		for _, m := range markers {
			if strings.Contains(t, m) {
				return true
			}
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
