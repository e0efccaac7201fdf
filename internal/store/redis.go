package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

const defaultRedisPrefix = "resonance"

// Redis stores relationship state as JSON values and experiences as capped lists.
// Keys are "{prefix}:rel:{user}", "{prefix}:exp:{user}" and the "{prefix}:users" set.
type Redis struct {
	client *redis.Client
	prefix string
	cap    int
}

// NewRedis wraps an existing client. experienceCap bounds each user's
// experience list; 0 keeps everything.
func NewRedis(client *redis.Client, experienceCap int) *Redis {
	return &Redis{client: client, prefix: defaultRedisPrefix, cap: experienceCap}
}

// NewRedisFromURL parses a redis:// URL, connects and pings.
func NewRedisFromURL(ctx context.Context, url string, experienceCap int) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedis(client, experienceCap), nil
}

func (r *Redis) relKey(userID string) string { return fmt.Sprintf("%s:rel:%s", r.prefix, userID) }
func (r *Redis) expKey(userID string) string { return fmt.Sprintf("%s:exp:%s", r.prefix, userID) }
func (r *Redis) usersKey() string            { return r.prefix + ":users" }

func (r *Redis) GetRelationship(ctx context.Context, userID string) (*trust.RelationshipState, error) {
	val, err := r.client.Get(ctx, r.relKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get relationship: %w", err)
	}
	var st trust.RelationshipState
	if err := json.Unmarshal(val, &st); err != nil {
		return nil, fmt.Errorf("decode relationship: %w", err)
	}
	return &st, nil
}

func (r *Redis) PutRelationship(ctx context.Context, st *trust.RelationshipState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode relationship: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.relKey(st.UserID), data, 0)
		p.SAdd(ctx, r.usersKey(), st.UserID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("put relationship: %w", err)
	}
	return nil
}

func (r *Redis) ListRelationships(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.usersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *Redis) AppendExperience(ctx context.Context, exp Experience) error {
	if exp.ID == uuid.Nil {
		exp.ID = uuid.New()
	}
	data, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("encode experience: %w", err)
	}
	key := r.expKey(exp.UserID)
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, data)
		if r.cap > 0 {
			p.LTrim(ctx, key, int64(-r.cap), -1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append experience: %w", err)
	}
	return nil
}

func (r *Redis) ListExperiences(ctx context.Context, userID string, limit int) ([]Experience, error) {
	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	items, err := r.client.LRange(ctx, r.expKey(userID), start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	out := make([]Experience, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		var exp Experience
		if err := json.Unmarshal([]byte(items[i]), &exp); err != nil {
			return nil, fmt.Errorf("decode experience: %w", err)
		}
		out = append(out, exp)
	}
	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

var _ Store = (*Redis)(nil)
