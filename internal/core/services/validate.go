package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// ValidateResult checks a completed extraction result against the JSON schema
// carried by its schema revision. The job must be completed; validating a
// non-terminal or failed job is an input error.
func ValidateResult(rev *domain.SchemaRevision, job *domain.ExtractionJob) error {
	if job.Status != domain.JobStatusCompleted {
		return fmt.Errorf("validate result: %w: job %s is %s", domain.ErrInvalidInput, job.Key(), job.Status)
	}

	schemaMap := rev.JSONSchema()
	if schemaMap == nil {
		return fmt.Errorf("validate result: %w: revision %s has no response format", domain.ErrInvalidInput, rev.SchemaRevID)
	}

	schemaBytes, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	result := make(map[string]any, len(job.Result))
	for k, v := range job.Result {
		result[k] = v.Interface()
	}

	if err := schema.Validate(result); err != nil {
		return fmt.Errorf("result does not match schema %s: %w", rev.SchemaRevID, err)
	}
	return nil
}
