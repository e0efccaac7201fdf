// Package store persists relationship state and the experience log.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/insight"
	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

// ErrNotFound is returned when no relationship exists for a user.
var ErrNotFound = errors.New("not found")

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Store is implemented by every backend.
type Store interface {
	// GetRelationship returns ErrNotFound for an unknown user.
	GetRelationship(ctx context.Context, userID string) (*trust.RelationshipState, error)
	PutRelationship(ctx context.Context, state *trust.RelationshipState) error
	ListRelationships(ctx context.Context) ([]string, error)

	AppendExperience(ctx context.Context, exp Experience) error
	// ListExperiences returns up to limit experiences for a user, newest first.
	ListExperiences(ctx context.Context, userID string, limit int) ([]Experience, error)

	Close() error
}

// Experience is the log record of one processed interaction.
type Experience struct {
	ID         uuid.UUID        `json:"id"`
	UserID     string           `json:"user_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Glyph      glyph.Glyph      `json:"glyph"`
	Valence    float64          `json:"valence"`
	Intensity  float64          `json:"intensity"`
	TrustShift float64          `json:"trust_shift"`
	Matched    []string         `json:"matched_phrases"`
	Insights   insight.Insights `json:"insights"`
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	DatabaseURL string
	RedisURL    string
	// ExperienceCap bounds the per-user experience list in redis and memory. 0 = unbounded.
	ExperienceCap int
}

// Open connects to the configured backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemory(opts.ExperienceCap), nil
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires DATABASE_URL")
		}
		pg, err := NewPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires REDIS_URL")
		}
		return NewRedisFromURL(ctx, opts.RedisURL, opts.ExperienceCap)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
