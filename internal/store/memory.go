package store

import (
	"context"
	"sync"
	"time"

	"xwitter/internal/core"
)

type entry struct {
	post      core.PostDetails
	expiresAt time.Time
}

// Memory keeps post details in process. Entries older than the TTL are
// treated as missing and dropped by Sweep.
type Memory struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: map[string]entry{},
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (core.PostDetails, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.expired(e) {
		return core.PostDetails{}, false, nil
	}
	return e.post, true, nil
}

func (m *Memory) Put(_ context.Context, key string, post core.PostDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{post: post, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *Memory) Size(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries), nil
}

// Sweep drops expired entries and returns how many were removed.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

func (m *Memory) expired(e entry) bool {
	return m.ttl > 0 && !m.now().Before(e.expiresAt)
}
