package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ResultCache = (*Cache)(nil)

const (
	cachePrefix     = "docrouter:cache:"
	cacheVersionKey = "docrouter:cache:version"
)

// Cache is a Redis-backed ResultCache for deployments where several client
// processes share one organization and must observe each other's
// invalidations. Versions come from a shared Redis counter so they stay
// monotone across processes.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithTTL bounds how long entries live without a write. Zero means no expiry.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// NewCache creates a Redis-backed cache.
func NewCache(client *redis.Client, opts ...CacheOption) *Cache {
	c := &Cache{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// storedEntry is the wire form of a cache entry
type storedEntry struct {
	Value   []byte `json:"value"`
	Version int64  `json:"version"`
}

func redisKey(key driven.CacheKey) string {
	return fmt.Sprintf("%s%s:%s:%s", cachePrefix, key.OrgID, key.Kind, key.ResourceID)
}

// Get returns the entry for key, or domain.ErrNotFound when absent.
func (c *Cache) Get(ctx context.Context, key driven.CacheKey) (*driven.CacheEntry, error) {
	data, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var stored storedEntry
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}

	return &driven.CacheEntry{Key: key, Value: stored.Value, Version: stored.Version}, nil
}

// Set stores value under key and returns the new version.
func (c *Cache) Set(ctx context.Context, key driven.CacheKey, value []byte) (int64, error) {
	version, err := c.client.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return 0, fmt.Errorf("cache version: %w", err)
	}

	data, err := json.Marshal(storedEntry{Value: value, Version: version})
	if err != nil {
		return 0, fmt.Errorf("cache encode: %w", err)
	}

	if err := c.client.Set(ctx, redisKey(key), data, c.ttl).Err(); err != nil {
		return 0, fmt.Errorf("cache set: %w", err)
	}
	return version, nil
}

// Invalidate removes the entry for key.
func (c *Cache) Invalidate(ctx context.Context, key driven.CacheKey) error {
	if err := c.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Ping checks the Redis backend is healthy.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
