package driven

import (
	"context"
	"time"
)

// RunLock guards extraction runs across client processes. The in-process
// mutex already guarantees at most one job per key within a client; a RunLock
// extends that guarantee to deployments where several processes share one
// organization. Optional: services treat a nil RunLock as "in-process only".
type RunLock interface {
	// Acquire attempts to take the named lock for ttl. Returns false when
	// another holder has it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release frees the named lock if held by this instance. Safe to call
	// when the lock expired or was never held.
	Release(ctx context.Context, name string) error

	// Ping checks the lock backend is reachable.
	Ping(ctx context.Context) error
}
