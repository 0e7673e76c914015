package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

func invoiceRevision() *domain.SchemaRevision {
	return &domain.SchemaRevision{
		SchemaID:    "sch-1",
		SchemaRevID: "srev-1",
		Version:     1,
		ResponseFormat: map[string]any{
			"json_schema": map[string]any{
				"schema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"invoice_number": map[string]any{"type": "string"},
						"total":          map[string]any{"type": "number"},
					},
					"required": []any{"invoice_number", "total"},
				},
			},
		},
	}
}

func completedJob(result map[string]domain.Value) *domain.ExtractionJob {
	return &domain.ExtractionJob{
		DocumentID:  "doc-1",
		PromptRevID: "prev-1",
		Status:      domain.JobStatusCompleted,
		Result:      result,
	}
}

func TestValidateResult(t *testing.T) {
	job := completedJob(map[string]domain.Value{
		"invoice_number": {Kind: domain.KindString, Str: "INV-42"},
		"total":          {Kind: domain.KindNumber, Num: 117.5},
	})

	require.NoError(t, ValidateResult(invoiceRevision(), job))
}

func TestValidateResult_MissingRequiredField(t *testing.T) {
	job := completedJob(map[string]domain.Value{
		"invoice_number": {Kind: domain.KindString, Str: "INV-42"},
	})

	err := ValidateResult(invoiceRevision(), job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "srev-1")
}

func TestValidateResult_WrongType(t *testing.T) {
	job := completedJob(map[string]domain.Value{
		"invoice_number": {Kind: domain.KindString, Str: "INV-42"},
		"total":          {Kind: domain.KindString, Str: "a lot"},
	})

	require.Error(t, ValidateResult(invoiceRevision(), job))
}

func TestValidateResult_NonTerminalJob(t *testing.T) {
	job := &domain.ExtractionJob{
		DocumentID:  "doc-1",
		PromptRevID: "prev-1",
		Status:      domain.JobStatusRunning,
	}

	err := ValidateResult(invoiceRevision(), job)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidateResult_NoResponseFormat(t *testing.T) {
	rev := &domain.SchemaRevision{SchemaID: "sch-1", SchemaRevID: "srev-1", Version: 1}
	job := completedJob(nil)

	err := ValidateResult(rev, job)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
