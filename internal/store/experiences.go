package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
)

// AppendExperience inserts an experience, assigning an ID when it has none.
func (s *Postgres) AppendExperience(ctx context.Context, exp Experience) error {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	insights, err := json.Marshal(exp.Insights)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	matched := exp.Matched
	if matched == nil {
		matched = []string{}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO experiences (id, user_id, created_at, glyph, valence, intensity, trust_shift, matched, insights)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		exp.ID, exp.UserID, exp.Timestamp, exp.Glyph.String(), exp.Valence, exp.Intensity, exp.TrustShift, matched, insights,
	)
	if err != nil {
		return fmt.Errorf("insert experience: %w", err)
	}
	return nil
}

// ListExperiences returns the newest experiences for a user.
func (s *Postgres) ListExperiences(ctx context.Context, userID string, limit int) ([]Experience, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, created_at, glyph, valence, intensity, trust_shift, matched, insights
		FROM experiences
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	var out []Experience
	for rows.Next() {
		var (
			exp      Experience
			g        string
			insights []byte
		)
		if err := rows.Scan(&exp.ID, &exp.UserID, &exp.Timestamp, &g, &exp.Valence, &exp.Intensity, &exp.TrustShift, &exp.Matched, &insights); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		if exp.Glyph, err = glyph.Parse(g); err != nil {
			return nil, fmt.Errorf("experience %s: %w", exp.ID, err)
		}
		if err := json.Unmarshal(insights, &exp.Insights); err != nil {
			return nil, fmt.Errorf("decode insights: %w", err)
		}
		out = append(out, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experiences: %w", err)
	}
	return out, nil
}
