package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

// GetRelationship fetches the relationship state for a user.
func (s *Postgres) GetRelationship(ctx context.Context, userID string) (*trust.RelationshipState, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, trust_level, relationship_depth, interaction_count, history, patterns, last_evolution
		FROM relationships
		WHERE user_id = $1`,
		userID,
	)

	var (
		st                trust.RelationshipState
		history, patterns []byte
	)
	err := row.Scan(&st.UserID, &st.TrustLevel, &st.RelationshipDepth, &st.InteractionCount, &history, &patterns, &st.LastEvolution)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	if err := json.Unmarshal(history, &st.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	if err := json.Unmarshal(patterns, &st.Patterns); err != nil {
		return nil, fmt.Errorf("decode patterns: %w", err)
	}
	return &st, nil
}

// PutRelationship creates or replaces the relationship state for a user.
func (s *Postgres) PutRelationship(ctx context.Context, st *trust.RelationshipState) error {
	history, err := json.Marshal(st.History)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	patterns, err := json.Marshal(st.Patterns)
	if err != nil {
		return fmt.Errorf("encode patterns: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO relationships (user_id, trust_level, relationship_depth, interaction_count, history, patterns, last_evolution, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id)
		DO UPDATE SET
			trust_level = $2,
			relationship_depth = $3,
			interaction_count = $4,
			history = $5,
			patterns = $6,
			last_evolution = $7,
			updated_at = now()`,
		st.UserID, st.TrustLevel, st.RelationshipDepth, st.InteractionCount, history, patterns, st.LastEvolution,
	)
	if err != nil {
		return fmt.Errorf("upsert relationship: %w", err)
	}
	return nil
}

// ListRelationships returns every known user ID in order.
func (s *Postgres) ListRelationships(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM relationships ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan relationships: %w", err)
	}
	return ids, nil
}
