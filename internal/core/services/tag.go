package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Ensure tagService implements TagService
var _ driving.TagService = (*tagService)(nil)

// tagService implements the TagService interface
type tagService struct {
	transport driven.Transport
	cache     driven.ResultCache
	org       domain.OrgScope
}

// NewTagService creates a new TagService
func NewTagService(transport driven.Transport, cache driven.ResultCache, org domain.OrgScope) driving.TagService {
	return &tagService{
		transport: transport,
		cache:     cache,
		org:       org,
	}
}

type listTagsResponse struct {
	Tags []*domain.Tag `json:"tags"`
}

type createTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// List returns all tags for the organization, from cache when available.
// Create and Delete drop the cached listing.
func (s *tagService) List(ctx context.Context) ([]*domain.Tag, error) {
	key := s.cacheKey()
	if entry, err := s.cache.Get(ctx, key); err == nil {
		var cached []*domain.Tag
		if err := json.Unmarshal(entry.Value, &cached); err == nil {
			return cached, nil
		}
	}

	path := fmt.Sprintf("/orgs/%s/tags", s.org.ID)

	var resp listTagsResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	if data, err := json.Marshal(resp.Tags); err == nil {
		_, _ = s.cache.Set(ctx, key, data)
	}

	return resp.Tags, nil
}

// Create adds a tag and invalidates the cached listing before returning.
func (s *tagService) Create(ctx context.Context, name, color string) (*domain.Tag, error) {
	if name == "" {
		return nil, fmt.Errorf("create tag: %w: empty name", domain.ErrInvalidInput)
	}

	path := fmt.Sprintf("/orgs/%s/tags", s.org.ID)

	var tag domain.Tag
	if err := s.transport.Do(ctx, "POST", path, createTagRequest{Name: name, Color: color}, &tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}

	if err := s.cache.Invalidate(ctx, s.cacheKey()); err != nil {
		return nil, fmt.Errorf("invalidate tag list: %w", err)
	}

	return &tag, nil
}

// Delete removes a tag and invalidates the cached listing before returning.
func (s *tagService) Delete(ctx context.Context, tagID string) error {
	path := fmt.Sprintf("/orgs/%s/tags/%s", s.org.ID, tagID)

	if err := s.transport.Do(ctx, "DELETE", path, nil, nil); err != nil {
		return fmt.Errorf("delete tag %s: %w", tagID, err)
	}

	if err := s.cache.Invalidate(ctx, s.cacheKey()); err != nil {
		return fmt.Errorf("invalidate tag list: %w", err)
	}

	return nil
}

func (s *tagService) cacheKey() driven.CacheKey {
	return driven.CacheKey{OrgID: s.org.ID, Kind: driven.KindTagList, ResourceID: "all"}
}
