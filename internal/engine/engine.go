// Package engine runs the resonance pipeline: score a message, classify it,
// fold it into the sender's relationship state, persist, and publish.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/hermes"
	"github.com/MikeSquared-Agency/resonance/internal/insight"
	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
	"github.com/MikeSquared-Agency/resonance/internal/store"
	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

// ErrEmptyUser is returned when an interaction has no user ID.
var ErrEmptyUser = errors.New("user id is required")

// Publisher is satisfied by *hermes.Client.
type Publisher interface {
	Publish(subject string, data any) error
}

// Evaluation is the stateless part of the pipeline.
type Evaluation struct {
	Score  lexicon.ScoreResult `json:"score"`
	Glyph  glyph.Glyph         `json:"glyph"`
	Symbol string              `json:"symbol"`
	Rule   string              `json:"rule"`
}

// Result is the outcome of one processed interaction.
type Result struct {
	InteractionID uuid.UUID `json:"interaction_id"`
	Evaluation
	Empathy    float64                  `json:"empathy_growth"`
	TrustShift float64                  `json:"trust_shift"`
	Insights   insight.Insights         `json:"insights"`
	State      *trust.RelationshipState `json:"relationship"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithHistoryWindow overrides the per-relationship history cap.
func WithHistoryWindow(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.window = n
		}
	}
}

// WithDecayRate decays trust for every whole idle day before applying a new
// interaction. 0 disables decay.
func WithDecayRate(rate float64) Option {
	return func(e *Engine) {
		if rate > 0 && rate < 1 {
			e.decayRate = rate
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is safe for concurrent use. Interactions for the same user are
// applied one at a time; different users proceed in parallel.
type Engine struct {
	lex       *lexicon.Lexicon
	store     store.Store
	pub       Publisher
	logger    *slog.Logger
	window    int
	decayRate float64
	now       func() time.Time
	locks     *keyedMutex

	processed atomic.Int64
	failed    atomic.Int64
}

// New builds an Engine. pub may be nil, in which case nothing is published.
func New(lex *lexicon.Lexicon, s store.Store, pub Publisher, logger *slog.Logger, opts ...Option) *Engine {
	if lex == nil {
		lex = lexicon.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		lex:    lex,
		store:  s,
		pub:    pub,
		logger: logger,
		window: trust.DefaultHistoryWindow,
		now:    func() time.Time { return time.Now().UTC() },
		locks:  newKeyedMutex(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate scores and classifies text without touching any relationship.
func (e *Engine) Evaluate(text string) Evaluation {
	score := e.lex.Score(text)
	g, rule := glyph.Explain(score.Valence, score.Intensity)
	return Evaluation{Score: score, Glyph: g, Symbol: g.Symbol(), Rule: rule}
}

// Process runs the full pipeline for a message received now.
func (e *Engine) Process(ctx context.Context, userID, text string) (*Result, error) {
	return e.ProcessAt(ctx, userID, text, time.Time{})
}

// ProcessAt is Process with an explicit interaction time; a zero at means now.
func (e *Engine) ProcessAt(ctx context.Context, userID, text string, at time.Time) (*Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUser
	}
	if at.IsZero() {
		at = e.now()
	}

	ev := e.Evaluate(text)
	insights := insight.Analyze(text, ev.Score.Intensity)

	res, err := e.applyLocked(ctx, userID, text, at, ev, insights)
	if err != nil {
		e.failed.Add(1)
		return nil, err
	}
	e.processed.Add(1)

	e.publish(res)
	return res, nil
}

// applyLocked runs apply under the user's lock, releasing it even if a
// store backend panics.
func (e *Engine) applyLocked(ctx context.Context, userID, text string, at time.Time, ev Evaluation, insights insight.Insights) (*Result, error) {
	unlock := e.locks.Lock(userID)
	defer unlock()
	return e.apply(ctx, userID, text, at, ev, insights)
}

// apply must run under the user's lock.
func (e *Engine) apply(ctx context.Context, userID, text string, at time.Time, ev Evaluation, insights insight.Insights) (*Result, error) {
	prev, err := e.store.GetRelationship(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		prev = nil
	} else if err != nil {
		return nil, fmt.Errorf("load relationship %s: %w", userID, err)
	}

	if prev != nil && e.decayRate > 0 && !prev.LastEvolution.IsZero() {
		if days := int(at.Sub(prev.LastEvolution).Hours() / 24); days > 0 {
			prev.TrustLevel = trust.DecayScore(prev.TrustLevel, e.decayRate, days)
		}
	}

	empathy := trust.EmpathyGrowth(text, ev.Score, insights.Complexity, prev)
	next := trust.UpdateWithWindow(prev, trust.Interaction{
		UserID:  userID,
		Score:   ev.Score,
		Glyph:   ev.Glyph,
		Empathy: empathy,
		At:      at,
	}, e.window)
	shift := next.History[len(next.History)-1].TrustShift

	if err := e.store.PutRelationship(ctx, next); err != nil {
		return nil, fmt.Errorf("save relationship %s: %w", userID, err)
	}

	res := &Result{
		InteractionID: uuid.New(),
		Evaluation:    ev,
		Empathy:       empathy,
		TrustShift:    shift,
		Insights:      insights,
		State:         next,
	}

	exp := store.Experience{
		ID:         res.InteractionID,
		UserID:     userID,
		Timestamp:  at,
		Glyph:      ev.Glyph,
		Valence:    ev.Score.Valence,
		Intensity:  ev.Score.Intensity,
		TrustShift: shift,
		Matched:    ev.Score.Matched,
		Insights:   insights,
	}
	if err := e.store.AppendExperience(ctx, exp); err != nil {
		e.logger.Warn("failed to append experience", "user_id", userID, "error", err)
	}

	e.logger.Debug("interaction applied",
		"user_id", userID,
		"glyph", ev.Glyph.String(),
		"rule", ev.Rule,
		"trust_shift", shift,
		"trust_level", next.TrustLevel,
	)
	return res, nil
}

func (e *Engine) publish(res *Result) {
	if e.pub == nil {
		return
	}
	id := res.InteractionID.String()
	if err := e.pub.Publish(hermes.SubjectGlyphClassified, hermes.GlyphClassified{
		InteractionID: id,
		UserID:        res.State.UserID,
		Glyph:         res.Glyph,
		Symbol:        res.Symbol,
		Rule:          res.Rule,
		Valence:       res.Score.Valence,
		Intensity:     res.Score.Intensity,
		Matched:       res.Score.Matched,
	}); err != nil {
		e.logger.Error("failed to publish glyph classified", "error", err)
	}
	if err := e.pub.Publish(hermes.SubjectTrustUpdated, hermes.TrustUpdated{
		InteractionID:     id,
		UserID:            res.State.UserID,
		TrustLevel:        res.State.TrustLevel,
		TrustShift:        res.TrustShift,
		RelationshipDepth: res.State.RelationshipDepth,
		InteractionCount:  res.State.InteractionCount,
		Quality:           res.State.Patterns.Quality,
		Trajectory:        res.State.Patterns.Trajectory,
	}); err != nil {
		e.logger.Error("failed to publish trust updated", "error", err)
	}
}

// HandleMessage is the NATS handler for resonance.message.received.
func (e *Engine) HandleMessage(subject string, data []byte) {
	var msg hermes.MessageReceived
	if err := json.Unmarshal(data, &msg); err != nil {
		e.logger.Error("failed to parse message event", "subject", subject, "error", err)
		return
	}
	if strings.TrimSpace(msg.UserID) == "" {
		e.logger.Warn("message event without user_id", "subject", subject)
		return
	}

	res, err := e.ProcessAt(context.Background(), msg.UserID, msg.Text, msg.Timestamp)
	if err != nil {
		e.logger.Error("failed to process message", "user_id", msg.UserID, "error", err)
		return
	}
	e.logger.Info("message processed",
		"user_id", msg.UserID,
		"glyph", res.Glyph.String(),
		"trust_level", res.State.TrustLevel,
	)
}

// Relationship returns the stored state for a user.
func (e *Engine) Relationship(ctx context.Context, userID string) (*trust.RelationshipState, error) {
	return e.store.GetRelationship(ctx, userID)
}

// Users returns the IDs of every user with a stored relationship.
func (e *Engine) Users(ctx context.Context) ([]string, error) {
	return e.store.ListRelationships(ctx)
}

// Experiences returns the newest experiences for a user.
func (e *Engine) Experiences(ctx context.Context, userID string, limit int) ([]store.Experience, error) {
	return e.store.ListExperiences(ctx, userID, limit)
}

// Stats are running counters since the engine started.
type Stats struct {
	Processed int64  `json:"processed"`
	Failed    int64  `json:"failed"`
	Booster   string `json:"booster_mode"`
	Window    int    `json:"history_window"`
}

func (e *Engine) Stats() Stats {
	return Stats{
		Processed: e.processed.Load(),
		Failed:    e.failed.Load(),
		Booster:   string(e.lex.Mode()),
		Window:    e.window,
	}
}
