package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

// Subjects.
const (
	// SubjectMessageReceived carries inbound user messages to score.
	SubjectMessageReceived = "resonance.message.received"
	// SubjectGlyphClassified is published for every scored message.
	SubjectGlyphClassified = "resonance.glyph.classified"
	// SubjectTrustUpdated is published after a relationship is persisted.
	SubjectTrustUpdated = "resonance.trust.updated"
)

// MessageReceived is the inbound event payload.
type MessageReceived struct {
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// GlyphClassified reports the score and glyph of one message.
type GlyphClassified struct {
	InteractionID string      `json:"interaction_id"`
	UserID        string      `json:"user_id"`
	Glyph         glyph.Glyph `json:"glyph"`
	Symbol        string      `json:"symbol"`
	Rule          string      `json:"rule"`
	Valence       float64     `json:"valence"`
	Intensity     float64     `json:"intensity"`
	Matched       []string    `json:"matched_phrases"`
}

// TrustUpdated reports a relationship's scalars after an interaction.
type TrustUpdated struct {
	InteractionID     string           `json:"interaction_id"`
	UserID            string           `json:"user_id"`
	TrustLevel        float64          `json:"trust_level"`
	TrustShift        float64          `json:"trust_shift"`
	RelationshipDepth float64          `json:"relationship_depth"`
	InteractionCount  int              `json:"interaction_count"`
	Quality           trust.Quality    `json:"interaction_quality"`
	Trajectory        trust.Trajectory `json:"trust_trajectory"`
}
