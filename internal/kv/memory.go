package kv

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store used by tests and local development.
// All operations hold one mutex, so GetDel is naturally atomic.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) key(ns Namespace, key string) string {
	return string(ns) + ":" + key
}

func (m *Memory) Set(_ context.Context, ns Namespace, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.key(ns, key)] = entry{
		value:     value,
		expiresAt: m.now().Add(ttl),
	}
	return nil
}

func (m *Memory) Get(_ context.Context, ns Namespace, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[m.key(ns, key)]
	if !ok || m.now().After(e.expiresAt) {
		delete(m.entries, m.key(ns, key))
		return "", ErrNotFound
	}
	return e.value, nil
}

func (m *Memory) GetDel(_ context.Context, ns Namespace, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.key(ns, key)
	e, ok := m.entries[k]
	delete(m.entries, k)
	if !ok || m.now().After(e.expiresAt) {
		return "", ErrNotFound
	}
	return e.value, nil
}
