package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	transport driven.Transport
	cache     driven.ResultCache
	org       domain.OrgScope
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(transport driven.Transport, cache driven.ResultCache, org domain.OrgScope) driving.DocumentService {
	return &documentService{
		transport: transport,
		cache:     cache,
		org:       org,
	}
}

type listDocumentsResponse struct {
	Documents  []*domain.Document `json:"documents"`
	TotalCount int                `json:"total_count"`
	Skip       int                `json:"skip"`
}

type uploadDocumentsRequest struct {
	Documents []domain.DocumentUpload `json:"documents"`
}

type uploadDocumentsResponse struct {
	UploadedDocuments []domain.UploadedDocument `json:"uploaded_documents"`
}

type getDocumentResponse struct {
	Metadata *domain.Document `json:"metadata"`
	Content  []byte           `json:"content"`
}

type updateDocumentRequest struct {
	Name   *string   `json:"document_name,omitempty"`
	TagIDs *[]string `json:"tag_ids,omitempty"`
}

// List returns one offset window of documents. The tag filter and the window
// are applied server-side; TotalCount always reflects the full matching set.
// Listings are not cached: any window would go stale invisibly as soon as the
// server ingests a document.
func (s *documentService) List(ctx context.Context, opts domain.ListOptions) (*domain.DocumentList, error) {
	path := fmt.Sprintf("/orgs/%s/documents", s.org.ID)

	q := url.Values{}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if len(opts.TagIDs) > 0 {
		q.Set("tag_ids", strings.Join(opts.TagIDs, ","))
	}
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var resp listDocumentsResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return &domain.DocumentList{
		Documents:  resp.Documents,
		TotalCount: resp.TotalCount,
		Skip:       resp.Skip,
	}, nil
}

// Upload submits documents for ingestion. The server accepts or rejects each
// entry independently and enumerates only the accepted ones; nothing is
// rolled back on partial failure. Callers compare the returned slice against
// the request length to detect rejected entries.
func (s *documentService) Upload(ctx context.Context, docs []domain.DocumentUpload) ([]domain.UploadedDocument, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("upload documents: %w: empty batch", domain.ErrInvalidInput)
	}
	for _, doc := range docs {
		if doc.Name == "" {
			return nil, fmt.Errorf("upload documents: %w: entry without a name", domain.ErrInvalidInput)
		}
	}

	path := fmt.Sprintf("/orgs/%s/documents", s.org.ID)

	var resp uploadDocumentsResponse
	if err := s.transport.Do(ctx, "POST", path, uploadDocumentsRequest{Documents: docs}, &resp); err != nil {
		return nil, fmt.Errorf("upload documents: %w", err)
	}

	return resp.UploadedDocuments, nil
}

// Get fetches a document's metadata and the requested content variant. A hit
// on the result cache is returned without a network call; entries are dropped
// by Update and Delete so reads after a mutation always refetch.
func (s *documentService) Get(ctx context.Context, documentID string, fileType domain.FileType) (*domain.DocumentContent, error) {
	if fileType == "" {
		fileType = domain.FileTypeOriginal
	}

	key := s.cacheKey(documentID)
	if entry, err := s.cache.Get(ctx, key); err == nil {
		var cached domain.DocumentContent
		if err := json.Unmarshal(entry.Value, &cached); err == nil && cached.FileType == fileType {
			return &cached, nil
		}
	}

	path := fmt.Sprintf("/orgs/%s/documents/%s?file_type=%s", s.org.ID, documentID, fileType)

	var resp getDocumentResponse
	if err := s.transport.Do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}

	content := &domain.DocumentContent{
		Metadata: resp.Metadata,
		FileType: fileType,
		Content:  resp.Content,
	}

	if data, err := json.Marshal(content); err == nil {
		_, _ = s.cache.Set(ctx, key, data)
	}

	return content, nil
}

// Update applies a partial update: nil fields are left unchanged, a non-nil
// empty TagIDs clears the tags. The document's cache entry is invalidated
// before returning.
func (s *documentService) Update(ctx context.Context, documentID string, update domain.DocumentUpdate) (*domain.Document, error) {
	if update.Name == nil && update.TagIDs == nil {
		return nil, fmt.Errorf("update document %s: %w: no fields to update", documentID, domain.ErrInvalidInput)
	}

	path := fmt.Sprintf("/orgs/%s/documents/%s", s.org.ID, documentID)

	var updated domain.Document
	req := updateDocumentRequest{Name: update.Name, TagIDs: update.TagIDs}
	if err := s.transport.Do(ctx, "PATCH", path, req, &updated); err != nil {
		return nil, fmt.Errorf("update document %s: %w", documentID, err)
	}

	if err := s.cache.Invalidate(ctx, s.cacheKey(documentID)); err != nil {
		return nil, fmt.Errorf("invalidate document %s: %w", documentID, err)
	}

	return &updated, nil
}

// Delete removes a document. A 404 surfaces as domain.ErrNotFound so callers
// can treat repeated deletes as success. The cache entry is dropped even on
// NotFound: the server no longer has the document either way.
func (s *documentService) Delete(ctx context.Context, documentID string) error {
	path := fmt.Sprintf("/orgs/%s/documents/%s", s.org.ID, documentID)

	err := s.transport.Do(ctx, "DELETE", path, nil, nil)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}

	if cacheErr := s.cache.Invalidate(ctx, s.cacheKey(documentID)); cacheErr != nil {
		return fmt.Errorf("invalidate document %s: %w", documentID, cacheErr)
	}

	if err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return nil
}

func (s *documentService) cacheKey(documentID string) driven.CacheKey {
	return driven.CacheKey{OrgID: s.org.ID, Kind: driven.KindDocument, ResourceID: documentID}
}
