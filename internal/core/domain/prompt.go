package domain

import "time"

// PromptRevision is an immutable, versioned snapshot of an extraction prompt.
// Extraction runs are keyed by a concrete revision ID, so callers resolve a
// stable PromptID to its latest revision before running.
type PromptRevision struct {
	PromptID    string    `json:"prompt_id"`
	PromptRevID string    `json:"prompt_revid"`
	Version     int       `json:"prompt_version"`
	Content     string    `json:"content"`
	SchemaID    string    `json:"schema_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}

// LatestPromptRevision selects the highest-version revision from a non-empty
// set, with the same ordering rule as schema revisions.
func LatestPromptRevision(revisions []*PromptRevision) (*PromptRevision, error) {
	if len(revisions) == 0 {
		return nil, ErrNotFound
	}
	latest := revisions[0]
	for _, rev := range revisions[1:] {
		if rev.Version > latest.Version ||
			(rev.Version == latest.Version && rev.PromptRevID > latest.PromptRevID) {
			latest = rev
		}
	}
	return latest, nil
}
