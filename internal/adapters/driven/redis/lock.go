package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RunLock = (*RunLock)(nil)

const lockPrefix = "docrouter:lock:"

// RunLock implements driven.RunLock with Redis SETNX and a TTL. Each instance
// carries a unique owner ID so one process cannot release a lock another
// process holds.
type RunLock struct {
	client  *redis.Client
	ownerID string
}

// NewRunLock creates a Redis-backed run lock.
func NewRunLock(client *redis.Client) *RunLock {
	hostname, _ := os.Hostname()
	return &RunLock{
		client:  client,
		ownerID: fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), uuid.NewString()),
	}
}

// Acquire attempts to take the named lock for ttl. Returns false when another
// holder has it.
func (l *RunLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	acquired, err := l.client.SetNX(ctx, lockPrefix+name, l.ownerID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return acquired, nil
}

// releaseScript deletes the lock only when this instance owns it, so an
// expired-and-reacquired lock is never released out from under its new owner.
var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Release frees the named lock if held by this instance. Safe to call when
// the lock expired or was never held.
func (l *RunLock) Release(ctx context.Context, name string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{lockPrefix + name}, l.ownerID).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %s: %w", name, err)
	}
	return nil
}

// Ping checks the Redis backend is healthy.
func (l *RunLock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// OwnerID returns this instance's unique lock owner identifier.
func (l *RunLock) OwnerID() string {
	return l.ownerID
}
