package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Poller drives a set of extraction jobs to their terminal state by calling
// GetResult on a fixed cadence. The orchestrator itself holds no timers; this
// is the explicit, caller-started loop that supplies them. Transient failures
// are logged and retried on the next tick; anything else aborts the wait.
type Poller struct {
	extractions driving.ExtractionService
	logger      *slog.Logger
	interval    time.Duration
	concurrency int
}

// PollerConfig holds configuration for the Poller.
type PollerConfig struct {
	Extractions driving.ExtractionService
	Logger      *slog.Logger
	Interval    time.Duration // time between ticks, default 2s
	Concurrency int           // concurrent polls per tick, default 4
}

// NewPoller creates a new Poller.
func NewPoller(cfg PollerConfig) *Poller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &Poller{
		extractions: cfg.Extractions,
		logger:      logger,
		interval:    interval,
		concurrency: concurrency,
	}
}

// Await blocks until every key is terminal or ctx is cancelled, and returns
// the terminal job per key. The poller itself never gives up on a running
// job; callers bound the wait through ctx.
func (p *Poller) Await(ctx context.Context, keys []domain.ExtractionKey) (map[domain.ExtractionKey]*domain.ExtractionJob, error) {
	results := make(map[domain.ExtractionKey]*domain.ExtractionJob, len(keys))
	var mu sync.Mutex

	pending := make([]domain.ExtractionKey, len(keys))
	copy(pending, keys)

	for len(pending) > 0 {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(p.concurrency)

		var still []domain.ExtractionKey
		for _, key := range pending {
			eg.Go(func() error {
				job, err := p.extractions.GetResult(gctx, key.DocumentID, key.PromptRevID)
				if err != nil {
					if errors.Is(err, domain.ErrTransient) {
						p.logger.Warn("poll failed, will retry",
							"document_id", key.DocumentID,
							"prompt_revid", key.PromptRevID,
							"error", err,
						)
						mu.Lock()
						still = append(still, key)
						mu.Unlock()
						return nil
					}
					return err
				}

				mu.Lock()
				if job.Status.Terminal() {
					results[key] = job
				} else {
					still = append(still, key)
				}
				mu.Unlock()
				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return nil, err
		}
		pending = still

		if len(pending) == 0 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.interval):
		}
	}

	return results, nil
}
