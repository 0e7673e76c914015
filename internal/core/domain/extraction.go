package domain

// JobStatus represents the current state of an extraction job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Terminal reports whether the status is final. Completed and failed jobs
// never change again; a completed job's result is immutable once set.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ExtractionKey identifies one extraction: a document run against one prompt
// revision. At most one non-terminal job exists per key.
type ExtractionKey struct {
	DocumentID  string `json:"document_id"`
	PromptRevID string `json:"prompt_revid"`
}

func (k ExtractionKey) String() string {
	return k.DocumentID + ":" + k.PromptRevID
}

// ExtractionJob is the state of an LLM extraction run. Result is nil until
// the job completes.
type ExtractionJob struct {
	DocumentID  string           `json:"document_id"`
	PromptRevID string           `json:"prompt_revid"`
	Status      JobStatus        `json:"status"`
	Result      map[string]Value `json:"llm_result,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// Key returns the job's extraction key.
func (j *ExtractionJob) Key() ExtractionKey {
	return ExtractionKey{DocumentID: j.DocumentID, PromptRevID: j.PromptRevID}
}

// Clone returns an independent copy so callers cannot mutate the
// orchestrator's state table through a returned job.
func (j *ExtractionJob) Clone() *ExtractionJob {
	clone := *j
	if j.Result != nil {
		clone.Result = make(map[string]Value, len(j.Result))
		for k, v := range j.Result {
			clone.Result[k] = v
		}
	}
	return &clone
}

// JobHandle is what a run request hands back to the caller. Repeated run
// calls on a non-terminal key return handles for the same job.
type JobHandle struct {
	DocumentID  string    `json:"document_id"`
	PromptRevID string    `json:"prompt_revid"`
	Status      JobStatus `json:"status"`
}
