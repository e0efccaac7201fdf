package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MikeSquared-Agency/resonance/internal/trust"
)

// Memory is an in-process Store. States are cloned on the way in and out so
// callers never share history slices with the store.
type Memory struct {
	mu            sync.RWMutex
	relationships map[string]*trust.RelationshipState
	experiences   map[string][]Experience
	cap           int
}

func NewMemory(experienceCap int) *Memory {
	return &Memory{
		relationships: make(map[string]*trust.RelationshipState),
		experiences:   make(map[string][]Experience),
		cap:           experienceCap,
	}
}

func (m *Memory) GetRelationship(_ context.Context, userID string) (*trust.RelationshipState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.relationships[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *Memory) PutRelationship(_ context.Context, state *trust.RelationshipState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.relationships[state.UserID] = state.Clone()
	return nil
}

func (m *Memory) ListRelationships(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.relationships))
	for id := range m.relationships {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Memory) AppendExperience(_ context.Context, exp Experience) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp.Matched = append([]string{}, exp.Matched...)
	list := append(m.experiences[exp.UserID], exp)
	if m.cap > 0 && len(list) > m.cap {
		list = append([]Experience(nil), list[len(list)-m.cap:]...)
	}
	m.experiences[exp.UserID] = list
	return nil
}

func (m *Memory) ListExperiences(_ context.Context, userID string, limit int) ([]Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.experiences[userID]
	n := len(list)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Experience, 0, n)
	for i := len(list) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
