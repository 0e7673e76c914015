package driving

import (
	"context"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// DocumentService provides access to an organization's documents.
type DocumentService interface {
	// List returns one offset window of the organization's documents.
	// TotalCount on the result reflects the full matching set.
	List(ctx context.Context, opts domain.ListOptions) (*domain.DocumentList, error)

	// Upload submits documents for ingestion. Entries succeed or fail
	// independently server-side; the returned slice enumerates only the
	// accepted entries, so callers detect partial failure by comparing
	// lengths.
	Upload(ctx context.Context, docs []domain.DocumentUpload) ([]domain.UploadedDocument, error)

	// Get fetches a document's metadata and the requested content variant.
	// An empty fileType means domain.FileTypeOriginal.
	Get(ctx context.Context, documentID string, fileType domain.FileType) (*domain.DocumentContent, error)

	// Update applies a partial update and returns the updated metadata.
	Update(ctx context.Context, documentID string, update domain.DocumentUpdate) (*domain.Document, error)

	// Delete removes a document. Deleting an absent document surfaces
	// domain.ErrNotFound, which callers may treat as success.
	Delete(ctx context.Context, documentID string) error
}
