package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return mr, client, func() {
		client.Close()
		mr.Close()
	}
}

func TestNewRunLock(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewRunLock(client)
	if lock.OwnerID() == "" {
		t.Error("expected non-empty owner ID")
	}
}

func TestRunLock_OwnerID_Unique(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock1 := NewRunLock(client)
	lock2 := NewRunLock(client)

	if lock1.OwnerID() == lock2.OwnerID() {
		t.Errorf("expected unique owner IDs, got same: %s", lock1.OwnerID())
	}
}

func TestRunLock_Acquire(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewRunLock(client)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire a free lock")
	}
}

func TestRunLock_Acquire_HeldByOther(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	holder := NewRunLock(client)
	contender := NewRunLock(client)
	ctx := context.Background()

	if acquired, _ := holder.Acquire(ctx, "extract:doc-1:prev-1", time.Minute); !acquired {
		t.Fatal("holder should acquire")
	}

	acquired, err := contender.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acquired {
		t.Error("contender must not acquire a held lock")
	}
}

func TestRunLock_Release(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewRunLock(client)
	ctx := context.Background()

	lock.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if err := lock.Release(ctx, "extract:doc-1:prev-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acquired, _ := lock.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if !acquired {
		t.Error("expected the lock to be free after release")
	}
}

func TestRunLock_Release_NotOwner(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	holder := NewRunLock(client)
	other := NewRunLock(client)
	ctx := context.Background()

	holder.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if err := other.Release(ctx, "extract:doc-1:prev-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acquired, _ := other.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if acquired {
		t.Error("a non-owner release must not free the lock")
	}
}

func TestRunLock_Release_NeverHeld(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewRunLock(client)
	if err := lock.Release(context.Background(), "extract:ghost:prev"); err != nil {
		t.Fatalf("releasing an unheld lock should be a no-op, got %v", err)
	}
}

func TestRunLock_TTLExpiry(t *testing.T) {
	mr, client, cleanup := setupTestRedis(t)
	defer cleanup()

	holder := NewRunLock(client)
	contender := NewRunLock(client)
	ctx := context.Background()

	holder.Acquire(ctx, "extract:doc-1:prev-1", time.Second)
	mr.FastForward(2 * time.Second)

	acquired, err := contender.Acquire(ctx, "extract:doc-1:prev-1", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acquired {
		t.Error("expected the lock to expire after its TTL")
	}
}

func TestRunLock_Ping(t *testing.T) {
	_, client, cleanup := setupTestRedis(t)
	defer cleanup()

	lock := NewRunLock(client)
	if err := lock.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
