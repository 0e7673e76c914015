package docrouter

import (
	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/services"
)

// Aliases so callers use the domain types without reaching into internal
// packages.
type (
	Document         = domain.Document
	DocumentContent  = domain.DocumentContent
	DocumentUpload   = domain.DocumentUpload
	UploadedDocument = domain.UploadedDocument
	DocumentUpdate   = domain.DocumentUpdate
	DocumentList     = domain.DocumentList
	ListOptions      = domain.ListOptions
	DocumentState    = domain.DocumentState
	FileType         = domain.FileType

	SchemaRevision = domain.SchemaRevision
	PromptRevision = domain.PromptRevision
	Tag            = domain.Tag

	ExtractionKey = domain.ExtractionKey
	ExtractionJob = domain.ExtractionJob
	JobHandle     = domain.JobHandle
	JobStatus     = domain.JobStatus

	Value     = domain.Value
	ValueKind = domain.ValueKind

	HTTPError = domain.HTTPError
)

// Document lifecycle states
const (
	DocumentStateUploading  = domain.DocumentStateUploading
	DocumentStateProcessing = domain.DocumentStateProcessing
	DocumentStateReady      = domain.DocumentStateReady
	DocumentStateError      = domain.DocumentStateError
)

// Content variants
const (
	FileTypeOriginal = domain.FileTypeOriginal
	FileTypePDF      = domain.FileTypePDF
)

// Extraction job states
const (
	JobStatusPending   = domain.JobStatusPending
	JobStatusRunning   = domain.JobStatusRunning
	JobStatusCompleted = domain.JobStatusCompleted
	JobStatusFailed    = domain.JobStatusFailed
)

// Value kinds
const (
	KindNull   = domain.KindNull
	KindString = domain.KindString
	KindNumber = domain.KindNumber
	KindBool   = domain.KindBool
	KindArray  = domain.KindArray
	KindObject = domain.KindObject
)

// Failure taxonomy. Every error leaving the client matches exactly one of
// these under errors.Is.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrInvalidInput = domain.ErrInvalidInput
	ErrUnauthorized = domain.ErrUnauthorized
	ErrForbidden    = domain.ErrForbidden
	ErrConflict     = domain.ErrConflict
	ErrTransient    = domain.ErrTransient
	ErrNotStarted   = domain.ErrNotStarted
	ErrTokenExpired = domain.ErrTokenExpired
	ErrTokenInvalid = domain.ErrTokenInvalid
)

// ValidateResult checks a completed extraction result against the JSON
// schema of its schema revision.
func ValidateResult(rev *SchemaRevision, job *ExtractionJob) error {
	return services.ValidateResult(rev, job)
}
