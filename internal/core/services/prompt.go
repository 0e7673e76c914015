package services

import (
	"context"
	"fmt"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Ensure promptService implements PromptService
var _ driving.PromptService = (*promptService)(nil)

// promptService implements the PromptService interface
type promptService struct {
	transport driven.Transport
	org       domain.OrgScope
}

// NewPromptService creates a new PromptService
func NewPromptService(transport driven.Transport, org domain.OrgScope) driving.PromptService {
	return &promptService{
		transport: transport,
		org:       org,
	}
}

type listPromptRevisionsResponse struct {
	Prompts []*domain.PromptRevision `json:"prompts"`
}

// ListRevisions returns every revision sharing promptID.
func (s *promptService) ListRevisions(ctx context.Context, promptID string) ([]*domain.PromptRevision, error) {
	path := fmt.Sprintf("/orgs/%s/prompts/%s/versions", s.org.ID, promptID)

	var resp listPromptRevisionsResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list prompt revisions %s: %w", promptID, err)
	}

	for _, rev := range resp.Prompts {
		if rev.PromptID == "" {
			rev.PromptID = promptID
		}
	}

	return resp.Prompts, nil
}

// ResolveLatest selects the revision with the highest version, with the same
// resolution rule as schemas.
func (s *promptService) ResolveLatest(ctx context.Context, promptID string) (*domain.PromptRevision, error) {
	revisions, err := s.ListRevisions(ctx, promptID)
	if err != nil {
		return nil, err
	}

	latest, err := domain.LatestPromptRevision(revisions)
	if err != nil {
		return nil, fmt.Errorf("resolve latest revision of %s: %w", promptID, err)
	}
	return latest, nil
}
