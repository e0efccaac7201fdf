package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores relationships and experiences in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS relationships (
	user_id            TEXT PRIMARY KEY,
	trust_level        DOUBLE PRECISION NOT NULL,
	relationship_depth DOUBLE PRECISION NOT NULL,
	interaction_count  INTEGER NOT NULL,
	history            JSONB NOT NULL DEFAULT '[]',
	patterns           JSONB NOT NULL DEFAULT '{}',
	last_evolution     TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS experiences (
	id          UUID PRIMARY KEY,
	user_id     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	glyph       TEXT NOT NULL,
	valence     DOUBLE PRECISION NOT NULL,
	intensity   DOUBLE PRECISION NOT NULL,
	trust_shift DOUBLE PRECISION NOT NULL,
	matched     TEXT[] NOT NULL DEFAULT '{}',
	insights    JSONB NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS experiences_user_created_idx ON experiences (user_id, created_at DESC);
`

// Migrate creates the tables if they do not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

var _ Store = (*Postgres)(nil)
