package hermes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
)

func TestMessageReceivedParsing(t *testing.T) {
	raw := `{
		"user_id": "user-001",
		"text": "I miss you",
		"timestamp": "2026-05-01T10:00:00Z"
	}`

	var msg MessageReceived
	err := json.Unmarshal([]byte(raw), &msg)
	if err != nil {
		t.Fatalf("failed to parse MessageReceived: %v", err)
	}

	if msg.UserID != "user-001" {
		t.Errorf("expected user_id 'user-001', got '%s'", msg.UserID)
	}
	if msg.Text != "I miss you" {
		t.Errorf("expected text 'I miss you', got '%s'", msg.Text)
	}
	if !msg.Timestamp.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", msg.Timestamp)
	}
}

func TestGlyphClassifiedEncoding(t *testing.T) {
	ev := GlyphClassified{
		InteractionID: "int-1",
		UserID:        "user-001",
		Glyph:         glyph.GentleAche,
		Symbol:        glyph.GentleAche.Symbol(),
		Rule:          "gentle_ache",
		Valence:       -0.5,
		Intensity:     0.7,
		Matched:       []string{"miss"},
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if raw["glyph"] != "gentle_ache" {
		t.Errorf("expected glyph encoded by name, got %v", raw["glyph"])
	}
	if raw["symbol"] != "🜂" {
		t.Errorf("expected symbol 🜂, got %v", raw["symbol"])
	}

	var decoded GlyphClassified
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if decoded.Glyph != glyph.GentleAche {
		t.Errorf("expected gentle_ache, got %v", decoded.Glyph)
	}
}

func TestSubjects(t *testing.T) {
	for _, s := range []string{SubjectMessageReceived, SubjectGlyphClassified, SubjectTrustUpdated} {
		if len(s) < len("resonance.") || s[:len("resonance.")] != "resonance." {
			t.Errorf("subject %q outside the resonance namespace", s)
		}
	}
}
