package trust

import (
	"math"
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
)

const (
	// InitialTrust is the floor for a first-contact relationship.
	InitialTrust = 0.1
	// MinEmpathy is the empathy growth credited to any interaction.
	MinEmpathy = 0.1

	maxShift = 0.2
	minShift = -0.1

	vulnerabilityBonus     = 0.02
	vulnerabilityThreshold = 0.3
)

// BaseImpact returns the trust increment a glyph contributes before scaling.
// Vulnerability and intimacy build trust fastest.
func BaseImpact(g glyph.Glyph) float64 {
	switch g {
	case glyph.GentleAche:
		return 0.15
	case glyph.SilentIntimacy:
		return 0.12
	case glyph.ResonantResponsibility:
		return 0.10
	case glyph.SparkWonder:
		return 0.08
	case glyph.SpiralMystery:
		return 0.07
	case glyph.GrowthNurture:
		return 0.06
	case glyph.FiercePassion:
		return 0.05
	default:
		return 0.03
	}
}

// QualityModifier returns the scaling factor for an interaction quality.
// deep=1.3, meaningful=1.1, surface=0.8, developing/initial=1.0.
func QualityModifier(q Quality) float64 {
	switch q {
	case QualityDeep:
		return 1.3
	case QualityMeaningful:
		return 1.1
	case QualitySurface:
		return 0.8
	default:
		return 1.0
	}
}

// TrajectoryModifier returns the momentum factor for a trust trajectory.
func TrajectoryModifier(t Trajectory) float64 {
	switch t {
	case TrajectoryGrowing:
		return 1.1
	case TrajectoryDeclining:
		return 0.7
	default:
		return 1.0
	}
}

// TrustShift calculates the trust delta for one interaction.
//
// Formula: shift = base_impact(glyph) x (0.5 + 0.5 x intensity) x quality x trajectory
// plus 0.02 when more than 30% of history shared vulnerability, clamped to [-0.1, 0.2].
func TrustShift(intensity float64, g glyph.Glyph, p Patterns) float64 {
	intensity = clampRange(intensity, 0, 1)
	shift := BaseImpact(g) * (0.5 + 0.5*intensity)
	shift *= QualityModifier(p.Quality)
	shift *= TrajectoryModifier(p.Trajectory)
	if p.VulnerabilityFrequency > vulnerabilityThreshold {
		shift += vulnerabilityBonus
	}
	return clampRange(shift, minShift, maxShift)
}

// Interaction is a scored and classified message applied to a relationship.
type Interaction struct {
	UserID  string
	Score   lexicon.ScoreResult
	Glyph   glyph.Glyph
	Empathy float64 // empathy growth; values below MinEmpathy are raised to it
	At      time.Time
}

// Update applies an interaction to a relationship, keeping the last
// DefaultHistoryWindow history entries. A nil prev is first contact.
func Update(prev *RelationshipState, in Interaction) *RelationshipState {
	return UpdateWithWindow(prev, in, DefaultHistoryWindow)
}

// UpdateWithWindow is Update with an explicit history window. prev is never
// modified; the returned state is a new value.
func UpdateWithWindow(prev *RelationshipState, in Interaction, window int) *RelationshipState {
	if window <= 0 {
		window = DefaultHistoryWindow
	}
	at := in.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	empathy := clampRange(in.Empathy, MinEmpathy, 1)

	var history []HistoryEntry
	if prev != nil {
		history = prev.History
	}
	patterns := AnalyzePatterns(history, in.Score.Matched)
	shift := TrustShift(in.Score.Intensity, in.Glyph, patterns)

	entry := HistoryEntry{
		Timestamp:     at,
		Glyph:         in.Glyph,
		Tags:          append([]string{}, in.Score.Matched...),
		EmpathyGrowth: empathy,
		TrustShift:    shift,
		Quality:       patterns.Quality,
	}

	if prev == nil {
		entry.Quality = QualityInitial
		return &RelationshipState{
			UserID:            in.UserID,
			TrustLevel:        clamp(max(InitialTrust, shift)),
			RelationshipDepth: clamp(empathy * 0.1),
			InteractionCount:  1,
			History:           []HistoryEntry{entry},
			Patterns:          patterns,
			LastEvolution:     at,
		}
	}

	next := prev.Clone()
	if next.UserID == "" {
		next.UserID = in.UserID
	}
	next.TrustLevel = clamp(clamp(prev.TrustLevel) + shift)
	next.RelationshipDepth = clamp(clamp(prev.RelationshipDepth) + empathy*0.1)
	next.InteractionCount++
	next.History = append(next.History, entry)
	if len(next.History) > window {
		next.History = append([]HistoryEntry(nil), next.History[len(next.History)-window:]...)
	}
	next.Patterns = patterns
	next.LastEvolution = at
	return next
}

// DecayScore applies daily decay for idle relationships.
// decayRate is typically 0.01, days is the number of days since the last interaction.
func DecayScore(currentScore float64, decayRate float64, days int) float64 {
	score := currentScore
	for i := 0; i < days; i++ {
		score *= (1.0 - decayRate)
	}
	return clamp(score)
}

func clamp(score float64) float64 {
	return clampRange(score, 0.0, 1.0)
}

func clampRange(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
