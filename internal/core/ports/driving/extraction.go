package driving

import (
	"context"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// ExtractionService orchestrates asynchronous LLM extraction runs.
//
// The service holds no timers. Callers drive polling cadence by calling
// GetResult repeatedly; each call performs at most one status query. The
// service never gives up on a running job by itself.
type ExtractionService interface {
	// Run starts an extraction for (documentID, promptRevID). When a job for
	// the key is already pending or running, the existing job's handle is
	// returned and no new run is started. Run on a terminal key clears the
	// old record and starts fresh.
	Run(ctx context.Context, documentID, promptRevID string) (*domain.JobHandle, error)

	// GetResult returns the job for the key. Terminal results are returned
	// from cache without a network call. Non-terminal jobs are polled once.
	// A key that was never run and has no cached result yields
	// domain.ErrNotStarted.
	GetResult(ctx context.Context, documentID, promptRevID string) (*domain.ExtractionJob, error)

	// Invalidate drops any cached terminal result for the key, forcing the
	// next Run or GetResult to go back to the server.
	Invalidate(ctx context.Context, documentID, promptRevID string) error
}
