package driving

import (
	"context"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// TagService manages the organization's document tags.
type TagService interface {
	// List returns all tags for the organization.
	List(ctx context.Context) ([]*domain.Tag, error)

	// Create adds a tag and returns it with its server-assigned ID.
	Create(ctx context.Context, name, color string) (*domain.Tag, error)

	// Delete removes a tag. Documents keep their other tags.
	Delete(ctx context.Context, tagID string) error
}
