package trust

import (
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
)

// DefaultHistoryWindow is the number of history entries kept per relationship.
const DefaultHistoryWindow = 50

// Quality classifies recent interaction depth.
type Quality string

const (
	QualityInitial    Quality = "initial_contact"
	QualityDeveloping Quality = "developing"
	QualityDeep       Quality = "deep_connection"
	QualityMeaningful Quality = "meaningful_engagement"
	QualitySurface    Quality = "surface_level"
)

// Trajectory is the direction of recent trust shifts.
type Trajectory string

const (
	TrajectoryGrowing   Trajectory = "growing"
	TrajectoryStable    Trajectory = "stable"
	TrajectoryDeclining Trajectory = "declining"
)

// HistoryEntry records one interaction's effect on a relationship.
type HistoryEntry struct {
	Timestamp     time.Time   `json:"timestamp"`
	Glyph         glyph.Glyph `json:"glyph"`
	Tags          []string    `json:"tags"` // matched lexicon phrases
	EmpathyGrowth float64     `json:"empathy_growth"`
	TrustShift    float64     `json:"trust_shift"`
	Quality       Quality     `json:"interaction_quality"`
}

// RelationshipState is the running per-user record.
type RelationshipState struct {
	UserID            string         `json:"user_id"`
	TrustLevel        float64        `json:"trust_level"`        // 0..1
	RelationshipDepth float64        `json:"relationship_depth"` // 0..1
	InteractionCount  int            `json:"interaction_count"`
	History           []HistoryEntry `json:"interaction_history"`
	Patterns          Patterns       `json:"patterns"`
	LastEvolution     time.Time      `json:"last_evolution"`
}

// Clone returns a deep copy.
func (s *RelationshipState) Clone() *RelationshipState {
	if s == nil {
		return nil
	}
	out := *s
	out.History = make([]HistoryEntry, len(s.History))
	for i, h := range s.History {
		h.Tags = append([]string(nil), h.Tags...)
		out.History[i] = h
	}
	out.Patterns.ResonancePatterns = append([]string(nil), s.Patterns.ResonancePatterns...)
	return &out
}
