package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is an in-process Cache guarded by a read/write mutex.
type Memory[V any] struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry[V]
	now     func() time.Time
}

// NewMemory returns an empty in-process cache.
func NewMemory[V any]() *Memory[V] {
	return &Memory[V]{
		entries: make(map[string]memoryEntry[V]),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Memory[V]) WithClock(now func() time.Time) *Memory[V] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// Get implements Cache.
func (m *Memory[V]) Get(_ context.Context, key string) (V, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	now := m.now()
	m.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.expired(now) {
		m.mu.Lock()
		// A concurrent Put may have replaced the entry since the read.
		if cur, still := m.entries[key]; still && cur.expired(m.now()) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

// Put implements Cache.
func (m *Memory[V]) Put(_ context.Context, key string, v V, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry[V]{value: v}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
}

// Invalidate implements Cache.
func (m *Memory[V]) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Clear implements Cache.
func (m *Memory[V]) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry[V])
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
