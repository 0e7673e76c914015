package driving

import (
	"context"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// SchemaService resolves stable schema identifiers to concrete revisions.
type SchemaService interface {
	// ListRevisions returns every revision sharing schemaID.
	ListRevisions(ctx context.Context, schemaID string) ([]*domain.SchemaRevision, error)

	// ResolveLatest returns the revision with the highest version, or
	// domain.ErrNotFound when no revisions exist. Pure selection over the
	// fetched set; transient transport failures propagate unretried.
	ResolveLatest(ctx context.Context, schemaID string) (*domain.SchemaRevision, error)

	// GetRevision fetches one revision by its unique revision ID. Revisions
	// are immutable, so results are cached.
	GetRevision(ctx context.Context, schemaRevID string) (*domain.SchemaRevision, error)
}

// PromptService resolves stable prompt identifiers to concrete revisions.
// Extraction runs take a revision ID, never a stable ID.
type PromptService interface {
	// ListRevisions returns every revision sharing promptID.
	ListRevisions(ctx context.Context, promptID string) ([]*domain.PromptRevision, error)

	// ResolveLatest returns the revision with the highest version, or
	// domain.ErrNotFound when no revisions exist.
	ResolveLatest(ctx context.Context, promptID string) (*domain.PromptRevision, error)
}
