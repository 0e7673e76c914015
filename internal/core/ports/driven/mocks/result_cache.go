package mocks

import (
	"context"
	"sync"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// MockResultCache is a mock implementation of ResultCache for testing.
// It counts hits, misses, and invalidations.
type MockResultCache struct {
	mu            sync.Mutex
	entries       map[driven.CacheKey]*driven.CacheEntry
	version       int64
	Hits          int
	Misses        int
	Sets          int
	Invalidations int
}

// NewMockResultCache creates a new MockResultCache
func NewMockResultCache() *MockResultCache {
	return &MockResultCache{
		entries: make(map[driven.CacheKey]*driven.CacheEntry),
	}
}

func (m *MockResultCache) Get(ctx context.Context, key driven.CacheKey) (*driven.CacheEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		m.Misses++
		return nil, domain.ErrNotFound
	}
	m.Hits++
	value := make([]byte, len(entry.Value))
	copy(value, entry.Value)
	return &driven.CacheEntry{Key: entry.Key, Value: value, Version: entry.Version}, nil
}

func (m *MockResultCache) Set(ctx context.Context, key driven.CacheKey, value []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	m.version++
	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = &driven.CacheEntry{Key: key, Value: stored, Version: m.version}
	return m.version, nil
}

func (m *MockResultCache) Invalidate(ctx context.Context, key driven.CacheKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Invalidations++
	delete(m.entries, key)
	return nil
}

func (m *MockResultCache) Ping(ctx context.Context) error {
	return nil
}

// Has reports whether an entry exists for key
func (m *MockResultCache) Has(key driven.CacheKey) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
