package memory

import (
	"context"
	"sync"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*Cache)(nil)

// Cache is a process-local ResultCache. The version counter increases on
// every write, so any observer holding an entry can detect that a newer
// write happened.
type Cache struct {
	mu      sync.RWMutex
	entries map[driven.CacheKey]*driven.CacheEntry
	version int64
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[driven.CacheKey]*driven.CacheEntry),
	}
}

// Get returns the entry for key, or domain.ErrNotFound when absent. The
// returned bytes are a copy; callers cannot mutate the stored value.
func (c *Cache) Get(ctx context.Context, key driven.CacheKey) (*driven.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}

	value := make([]byte, len(entry.Value))
	copy(value, entry.Value)
	return &driven.CacheEntry{Key: entry.Key, Value: value, Version: entry.Version}, nil
}

// Set stores value under key and returns the new version.
func (c *Cache) Set(ctx context.Context, key driven.CacheKey, value []byte) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version++
	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = &driven.CacheEntry{Key: key, Value: stored, Version: c.version}
	return c.version, nil
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(ctx context.Context, key driven.CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Ping always succeeds for the in-memory cache.
func (c *Cache) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
