package domain

import (
	"sort"
	"time"
)

// SchemaRevision is an immutable, versioned snapshot of an extraction schema.
// Many revisions share one stable SchemaID; the one with the highest Version
// is "latest".
type SchemaRevision struct {
	SchemaID    string    `json:"schema_id"`
	SchemaRevID string    `json:"schema_revid"`
	Version     int       `json:"schema_version"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`

	// ResponseFormat is the OpenAI-style response format holding the JSON
	// schema that extraction results must conform to.
	ResponseFormat map[string]any `json:"response_format"`
}

// JSONSchema returns the bare JSON schema from the response format, or the
// whole response format when it is not wrapped in a json_schema envelope.
func (r *SchemaRevision) JSONSchema() map[string]any {
	if r.ResponseFormat == nil {
		return nil
	}
	wrapper, ok := r.ResponseFormat["json_schema"].(map[string]any)
	if !ok {
		return r.ResponseFormat
	}
	schema, ok := wrapper["schema"].(map[string]any)
	if !ok {
		return r.ResponseFormat
	}
	return schema
}

// FieldNames returns the sorted top-level property names of the revision's
// JSON schema. Used for tabular rendering of results.
func (r *SchemaRevision) FieldNames() []string {
	schema := r.JSONSchema()
	if schema == nil {
		return nil
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LatestRevision selects the revision with the highest version from a
// non-empty set. Selection is deterministic: equal versions (which the
// backend is expected to prevent) fall back to the revision ID, descending.
func LatestRevision(revisions []*SchemaRevision) (*SchemaRevision, error) {
	if len(revisions) == 0 {
		return nil, ErrNotFound
	}
	latest := revisions[0]
	for _, rev := range revisions[1:] {
		if rev.Version > latest.Version ||
			(rev.Version == latest.Version && rev.SchemaRevID > latest.SchemaRevID) {
			latest = rev
		}
	}
	return latest, nil
}
