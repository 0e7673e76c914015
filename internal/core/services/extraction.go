package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Ensure extractionService implements ExtractionService
var _ driving.ExtractionService = (*extractionService)(nil)

// extractionService orchestrates LLM extraction runs. It keeps a per-key job
// table behind one mutex; the "is a job already in flight" check and the
// claim of the key happen inside that critical section, so concurrent Run
// calls on the same key can never start two jobs. The service itself holds no
// timers: GetResult performs at most one poll per call and cadence belongs to
// the caller.
type extractionService struct {
	transport driven.Transport
	cache     driven.ResultCache
	org       domain.OrgScope
	runLock   driven.RunLock
	lockTTL   time.Duration

	mu sync.Mutex
	// jobs is the per-key state table. started remembers keys that had a run
	// issued, so an invalidated terminal result re-fetches instead of
	// reporting NotStarted. locked tracks run locks this instance holds.
	jobs    map[domain.ExtractionKey]*domain.ExtractionJob
	started map[domain.ExtractionKey]bool
	locked  map[domain.ExtractionKey]bool
}

// ExtractionConfig holds dependencies for the extraction service.
type ExtractionConfig struct {
	Transport driven.Transport
	Cache     driven.ResultCache
	Org       domain.OrgScope

	// RunLock optionally extends the at-most-one-job guarantee across
	// processes. Nil keeps the guarantee in-process only.
	RunLock driven.RunLock

	// LockTTL bounds how long a crashed process can hold a run lock.
	// Defaults to 5 minutes.
	LockTTL time.Duration
}

// NewExtractionService creates a new ExtractionService
func NewExtractionService(cfg ExtractionConfig) driving.ExtractionService {
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}

	return &extractionService{
		transport: cfg.Transport,
		cache:     cfg.Cache,
		org:       cfg.Org,
		runLock:   cfg.RunLock,
		lockTTL:   lockTTL,
		jobs:      make(map[domain.ExtractionKey]*domain.ExtractionJob),
		started:   make(map[domain.ExtractionKey]bool),
		locked:    make(map[domain.ExtractionKey]bool),
	}
}

type runExtractionResponse struct {
	DocumentID  string           `json:"document_id"`
	PromptRevID string           `json:"prompt_revid"`
	Status      domain.JobStatus `json:"status"`
}

type extractionStatusResponse struct {
	Status    domain.JobStatus        `json:"status"`
	LLMResult map[string]domain.Value `json:"llm_result"`
	Error     string                  `json:"error"`
}

// Run starts an extraction for (documentID, promptRevID). A pending or
// running job on the key short-circuits to the existing handle. A terminal
// record is cleared and a fresh job started; failed jobs are never retried
// implicitly, only through an explicit new Run.
func (s *extractionService) Run(ctx context.Context, documentID, promptRevID string) (*domain.JobHandle, error) {
	if documentID == "" || promptRevID == "" {
		return nil, fmt.Errorf("run extraction: %w: missing document or prompt revision", domain.ErrInvalidInput)
	}
	key := domain.ExtractionKey{DocumentID: documentID, PromptRevID: promptRevID}

	s.mu.Lock()
	if job, ok := s.jobs[key]; ok && !job.Status.Terminal() {
		handle := handleOf(job)
		s.mu.Unlock()
		return handle, nil
	}
	// Claim the key before leaving the critical section so a racing Run sees
	// a pending job instead of starting its own.
	job := &domain.ExtractionJob{
		DocumentID:  documentID,
		PromptRevID: promptRevID,
		Status:      domain.JobStatusPending,
	}
	s.jobs[key] = job
	wasStarted := s.started[key]
	s.mu.Unlock()

	if s.runLock != nil {
		acquired, err := s.runLock.Acquire(ctx, runLockName(key), s.lockTTL)
		if err != nil {
			s.abortClaim(key, wasStarted)
			return nil, fmt.Errorf("run extraction %s: %w", key, err)
		}
		if !acquired {
			// Another process is already running this key. Observe its job
			// instead of starting a duplicate.
			s.mu.Lock()
			job.Status = domain.JobStatusRunning
			s.started[key] = true
			s.mu.Unlock()
			return &domain.JobHandle{DocumentID: documentID, PromptRevID: promptRevID, Status: domain.JobStatusRunning}, nil
		}
		s.mu.Lock()
		s.locked[key] = true
		s.mu.Unlock()
	}

	// A fresh run supersedes any cached terminal result for the key.
	if err := s.cache.Invalidate(ctx, s.cacheKey(key)); err != nil {
		s.abortClaim(key, wasStarted)
		s.releaseLock(ctx, key)
		return nil, fmt.Errorf("run extraction %s: %w", key, err)
	}

	path := fmt.Sprintf("/orgs/%s/documents/%s/llm/%s/run", s.org.ID, documentID, promptRevID)

	var resp runExtractionResponse
	if err := s.transport.Do(ctx, "POST", path, nil, &resp); err != nil {
		s.abortClaim(key, wasStarted)
		s.releaseLock(ctx, key)
		return nil, fmt.Errorf("run extraction %s: %w", key, err)
	}

	status := resp.Status
	if status == "" {
		status = domain.JobStatusPending
	}

	s.mu.Lock()
	job.Status = status
	s.started[key] = true
	s.mu.Unlock()

	return &domain.JobHandle{DocumentID: documentID, PromptRevID: promptRevID, Status: status}, nil
}

// GetResult returns the job for the key. Terminal results come from local
// state or the result cache without touching the wire. Non-terminal jobs are
// polled exactly once. Keys that were never run and have no cached result
// yield ErrNotStarted.
func (s *extractionService) GetResult(ctx context.Context, documentID, promptRevID string) (*domain.ExtractionJob, error) {
	key := domain.ExtractionKey{DocumentID: documentID, PromptRevID: promptRevID}

	s.mu.Lock()
	job, known := s.jobs[key]
	if known && job.Status.Terminal() {
		clone := job.Clone()
		s.mu.Unlock()
		return clone, nil
	}
	started := s.started[key]
	s.mu.Unlock()

	if !known {
		entry, err := s.cache.Get(ctx, s.cacheKey(key))
		switch {
		case err == nil:
			var cached domain.ExtractionJob
			if decodeErr := json.Unmarshal(entry.Value, &cached); decodeErr != nil {
				return nil, fmt.Errorf("extraction %s: decode cached result: %w", key, decodeErr)
			}
			s.mu.Lock()
			s.jobs[key] = cached.Clone()
			s.started[key] = true
			s.mu.Unlock()
			return &cached, nil
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("extraction %s: %w", key, err)
		case !started:
			return nil, fmt.Errorf("extraction %s: %w", key, domain.ErrNotStarted)
		}
		// Started but invalidated: fall through and ask the server again.
		s.mu.Lock()
		job = &domain.ExtractionJob{DocumentID: documentID, PromptRevID: promptRevID, Status: domain.JobStatusPending}
		s.jobs[key] = job
		s.mu.Unlock()
	}

	// Single poll, caller-driven cadence.
	path := fmt.Sprintf("/orgs/%s/documents/%s/llm/%s", s.org.ID, documentID, promptRevID)

	var resp extractionStatusResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("poll extraction %s: %w", key, err)
	}

	s.mu.Lock()
	job.Status = resp.Status
	job.Error = resp.Error
	if resp.Status == domain.JobStatusCompleted {
		job.Result = resp.LLMResult
	}
	clone := job.Clone()
	s.mu.Unlock()

	if clone.Status.Terminal() {
		if data, err := json.Marshal(clone); err == nil {
			_, _ = s.cache.Set(ctx, s.cacheKey(key), data)
		}
		s.releaseLock(ctx, key)
	}

	return clone, nil
}

// Invalidate drops the cached terminal result for the key, so the next
// GetResult asks the server again. In-flight jobs are left alone; a caller
// that stops wanting a running job simply stops polling.
func (s *extractionService) Invalidate(ctx context.Context, documentID, promptRevID string) error {
	key := domain.ExtractionKey{DocumentID: documentID, PromptRevID: promptRevID}

	s.mu.Lock()
	if job, ok := s.jobs[key]; ok && job.Status.Terminal() {
		delete(s.jobs, key)
	}
	s.mu.Unlock()

	if err := s.cache.Invalidate(ctx, s.cacheKey(key)); err != nil {
		return fmt.Errorf("invalidate extraction %s: %w", key, err)
	}
	return nil
}

func (s *extractionService) cacheKey(key domain.ExtractionKey) driven.CacheKey {
	return driven.CacheKey{OrgID: s.org.ID, Kind: driven.KindExtraction, ResourceID: key.String()}
}

// abortClaim undoes a claimed key after a failed start.
func (s *extractionService) abortClaim(key domain.ExtractionKey, wasStarted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, key)
	if !wasStarted {
		delete(s.started, key)
	}
}

func (s *extractionService) releaseLock(ctx context.Context, key domain.ExtractionKey) {
	s.mu.Lock()
	held := s.locked[key]
	delete(s.locked, key)
	s.mu.Unlock()

	if held && s.runLock != nil {
		_ = s.runLock.Release(ctx, runLockName(key))
	}
}

func handleOf(job *domain.ExtractionJob) *domain.JobHandle {
	return &domain.JobHandle{
		DocumentID:  job.DocumentID,
		PromptRevID: job.PromptRevID,
		Status:      job.Status,
	}
}

func runLockName(key domain.ExtractionKey) string {
	return "extract:" + key.String()
}
