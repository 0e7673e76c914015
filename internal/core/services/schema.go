package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Ensure schemaService implements SchemaService
var _ driving.SchemaService = (*schemaService)(nil)

// schemaService implements the SchemaService interface
type schemaService struct {
	transport driven.Transport
	cache     driven.ResultCache
	org       domain.OrgScope
}

// NewSchemaService creates a new SchemaService
func NewSchemaService(transport driven.Transport, cache driven.ResultCache, org domain.OrgScope) driving.SchemaService {
	return &schemaService{
		transport: transport,
		cache:     cache,
		org:       org,
	}
}

type listSchemaRevisionsResponse struct {
	Schemas []*domain.SchemaRevision `json:"schemas"`
}

// ListRevisions returns every revision sharing schemaID. The listing is never
// cached: publishing a new revision must be visible to the next resolve.
func (s *schemaService) ListRevisions(ctx context.Context, schemaID string) ([]*domain.SchemaRevision, error) {
	path := fmt.Sprintf("/orgs/%s/schemas/%s/versions", s.org.ID, schemaID)

	var resp listSchemaRevisionsResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list schema revisions %s: %w", schemaID, err)
	}

	// The stable ID is implied by the path, not repeated per element.
	for _, rev := range resp.Schemas {
		if rev.SchemaID == "" {
			rev.SchemaID = schemaID
		}
	}

	return resp.Schemas, nil
}

// ResolveLatest fetches all revisions of schemaID and selects the one with
// the highest version. An empty revision set yields domain.ErrNotFound;
// transient transport failures propagate to the caller unretried.
func (s *schemaService) ResolveLatest(ctx context.Context, schemaID string) (*domain.SchemaRevision, error) {
	revisions, err := s.ListRevisions(ctx, schemaID)
	if err != nil {
		return nil, err
	}

	latest, err := domain.LatestRevision(revisions)
	if err != nil {
		return nil, fmt.Errorf("resolve latest revision of %s: %w", schemaID, err)
	}
	return latest, nil
}

// GetRevision fetches one revision by its unique ID. Revisions are immutable,
// so a cached copy is always current.
func (s *schemaService) GetRevision(ctx context.Context, schemaRevID string) (*domain.SchemaRevision, error) {
	key := driven.CacheKey{OrgID: s.org.ID, Kind: driven.KindSchemaRevision, ResourceID: schemaRevID}
	if entry, err := s.cache.Get(ctx, key); err == nil {
		var cached domain.SchemaRevision
		if err := json.Unmarshal(entry.Value, &cached); err == nil {
			return &cached, nil
		}
	}

	path := fmt.Sprintf("/orgs/%s/schemas/revisions/%s", s.org.ID, schemaRevID)

	var rev domain.SchemaRevision
	if err := s.transport.Do(ctx, "GET", path, nil, &rev); err != nil {
		return nil, fmt.Errorf("get schema revision %s: %w", schemaRevID, err)
	}

	if data, err := json.Marshal(&rev); err == nil {
		_, _ = s.cache.Set(ctx, key, data)
	}

	return &rev, nil
}
