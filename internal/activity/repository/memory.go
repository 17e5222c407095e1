package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/fitlog/fitlog/backend/go-services/internal/activity"
)

// MemoryRepo keeps activities in process memory. Used by tests and by the
// "memory" store backend for local development.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]activity.Activity
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]activity.Activity)}
}

func (m *MemoryRepo) Insert(_ context.Context, a *activity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; ok {
		return ErrDuplicate
	}
	m.store[a.ID] = *a
	return nil
}

func (m *MemoryRepo) ListByUser(_ context.Context, userID string) ([]*activity.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*activity.Activity{}
	for _, a := range m.store {
		if a.UserID == userID {
			a := a
			out = append(out, &a)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryRepo) Query(_ context.Context, f activity.Filter) ([]*activity.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*activity.Activity{}
	for _, a := range m.store {
		if f.Matches(&a) {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (m *MemoryRepo) Get(_ context.Context, id, userID string) (*activity.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok || a.UserID != userID {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryRepo) Replace(_ context.Context, a *activity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[a.ID]
	if !ok || cur.UserID != a.UserID {
		return ErrNotFound
	}
	m.store[a.ID] = *a
	return nil
}

func (m *MemoryRepo) Delete(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok || a.UserID != userID {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *MemoryRepo) Ping(context.Context) error { return nil }

// sortNewestFirst orders by timestamp descending; ties fall back to id so
// listings are stable between calls.
func sortNewestFirst(list []*activity.Activity) {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Timestamp != list[j].Timestamp {
			return list[i].Timestamp > list[j].Timestamp
		}
		return list[i].ID < list[j].ID
	})
}
