package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MikeSquared-Agency/resonance/internal/glyph"
	"github.com/MikeSquared-Agency/resonance/internal/insight"
	"github.com/MikeSquared-Agency/resonance/internal/lexicon"
	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

func sampleState(userID string) *trust.RelationshipState {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	st := trust.Update(nil, trust.Interaction{
		UserID:  userID,
		Score:   lexicon.ScoreResult{Valence: -0.5, Intensity: 0.7, Matched: []string{"miss", "ache"}, MatchCount: 2},
		Glyph:   glyph.GentleAche,
		Empathy: 0.5,
		At:      at,
	})
	return trust.Update(st, trust.Interaction{
		UserID:  userID,
		Score:   lexicon.ScoreResult{Valence: 0.6, Intensity: 0.4, Matched: []string{"good"}, MatchCount: 1},
		Glyph:   glyph.GrowthNurture,
		Empathy: 0.3,
		At:      at.Add(time.Minute),
	})
}

// testStore runs the behavior every backend must share.
func testStore(t *testing.T, s Store, userID string) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.GetRelationship(ctx, userID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRelationship(unknown) err = %v, want ErrNotFound", err)
	}

	want := sampleState(userID)
	if err := s.PutRelationship(ctx, want); err != nil {
		t.Fatalf("PutRelationship: %v", err)
	}
	got, err := s.GetRelationship(ctx, userID)
	if err != nil {
		t.Fatalf("GetRelationship: %v", err)
	}
	if got.UserID != userID || got.InteractionCount != 2 {
		t.Errorf("got user=%q count=%d", got.UserID, got.InteractionCount)
	}
	if got.TrustLevel != want.TrustLevel || got.RelationshipDepth != want.RelationshipDepth {
		t.Errorf("scalars = %f/%f, want %f/%f", got.TrustLevel, got.RelationshipDepth, want.TrustLevel, want.RelationshipDepth)
	}
	if len(got.History) != 2 {
		t.Fatalf("history len = %d, want 2", len(got.History))
	}
	if got.History[0].Glyph != glyph.GentleAche || got.History[1].Glyph != glyph.GrowthNurture {
		t.Errorf("history glyphs = %v, %v", got.History[0].Glyph, got.History[1].Glyph)
	}
	if !got.LastEvolution.Equal(want.LastEvolution) {
		t.Errorf("LastEvolution = %v, want %v", got.LastEvolution, want.LastEvolution)
	}

	// Upsert replaces.
	next := trust.Update(got, trust.Interaction{UserID: userID, Glyph: glyph.SparkWonder, Empathy: 0.2, At: want.LastEvolution.Add(time.Minute)})
	if err := s.PutRelationship(ctx, next); err != nil {
		t.Fatalf("PutRelationship (update): %v", err)
	}
	got, err = s.GetRelationship(ctx, userID)
	if err != nil {
		t.Fatalf("GetRelationship after update: %v", err)
	}
	if got.InteractionCount != 3 || len(got.History) != 3 {
		t.Errorf("after update count=%d history=%d, want 3/3", got.InteractionCount, len(got.History))
	}

	ids, err := s.ListRelationships(ctx)
	if err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
	found := false
	for _, id := range ids {
		if id == userID {
			found = true
		}
	}
	if !found {
		t.Errorf("ListRelationships = %v, missing %q", ids, userID)
	}

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		exp := Experience{
			ID:         uuid.New(),
			UserID:     userID,
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
			Glyph:      glyph.Classify(0.6, 0.4),
			Valence:    0.6,
			Intensity:  0.4,
			TrustShift: 0.05,
			Matched:    []string{"good"},
			Insights:   insight.Analyze("good", 0.4),
		}
		if err := s.AppendExperience(ctx, exp); err != nil {
			t.Fatalf("AppendExperience %d: %v", i, err)
		}
	}
	exps, err := s.ListExperiences(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListExperiences: %v", err)
	}
	if len(exps) != 2 {
		t.Fatalf("ListExperiences len = %d, want 2", len(exps))
	}
	if !exps[0].Timestamp.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("newest experience at %v, want %v", exps[0].Timestamp, base.Add(2*time.Minute))
	}
	if exps[0].Glyph != glyph.GrowthNurture {
		t.Errorf("experience glyph = %v, want growth_nurture", exps[0].Glyph)
	}
	if exps[0].Insights.Preference != insight.PreferenceConcise {
		t.Errorf("experience insights = %+v", exps[0].Insights)
	}
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory(0), "memory-user")
}

func TestMemory_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)
	st := sampleState("u1")
	if err := m.PutRelationship(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.History[0].Tags[0] = "mutated"
	st.TrustLevel = 0.99

	got, _ := m.GetRelationship(ctx, "u1")
	if got.History[0].Tags[0] != "miss" || got.TrustLevel == 0.99 {
		t.Error("stored state shares memory with the caller")
	}
}

func TestMemory_ExperienceCap(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	for i := 0; i < 5; i++ {
		_ = m.AppendExperience(ctx, Experience{UserID: "u1", Valence: float64(i)})
	}
	exps, _ := m.ListExperiences(ctx, "u1", 0)
	if len(exps) != 2 || exps[0].Valence != 4 || exps[1].Valence != 3 {
		t.Errorf("experiences = %+v, want the last two newest first", exps)
	}
}

func newTestRedis(t *testing.T, experienceCap int) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedis(client, experienceCap)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestRedis(t *testing.T) {
	r, mr := newTestRedis(t, 0)
	testStore(t, r, "redis-user")

	if !mr.Exists("resonance:rel:redis-user") {
		t.Error("relationship key not written")
	}
	if ok, _ := mr.SIsMember("resonance:users", "redis-user"); !ok {
		t.Error("user not added to index set")
	}
}

func TestRedis_ExperienceCap(t *testing.T) {
	r, mr := newTestRedis(t, 2)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := r.AppendExperience(ctx, Experience{UserID: "u1", Glyph: glyph.SparkWonder, Valence: float64(i)}); err != nil {
			t.Fatalf("AppendExperience: %v", err)
		}
	}
	list, err := mr.List("resonance:exp:u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len = %d, want 2", len(list))
	}
	exps, err := r.ListExperiences(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("ListExperiences: %v", err)
	}
	if exps[0].Valence != 4 || exps[1].Valence != 3 {
		t.Errorf("experiences = %+v, want the last two newest first", exps)
	}
	if exps[0].ID == uuid.Nil {
		t.Error("experience ID not assigned")
	}
}

func TestRedis_CorruptValue(t *testing.T) {
	r, mr := newTestRedis(t, 0)
	if err := mr.Set("resonance:rel:bad", "{not json"); err != nil {
		t.Fatal(err)
	}
	_, err := r.GetRelationship(context.Background(), "bad")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want decode error", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{})
	if err != nil {
		t.Fatalf("Open(default): %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("default backend = %T, want *Memory", s)
	}

	mr := miniredis.RunT(t)
	s, err = Open(ctx, Options{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
	if err != nil {
		t.Fatalf("Open(redis): %v", err)
	}
	if _, ok := s.(*Redis); !ok {
		t.Errorf("redis backend = %T, want *Redis", s)
	}
	s.Close()

	for _, opts := range []Options{
		{Backend: BackendPostgres},
		{Backend: BackendRedis},
		{Backend: "sqlite"},
	} {
		if _, err := Open(ctx, opts); err == nil {
			t.Errorf("Open(%+v) should fail", opts)
		}
	}
}
