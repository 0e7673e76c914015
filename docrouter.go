// Package docrouter is a Go client for the DocRouter document and extraction
// platform. A Client is scoped to one organization; all documents, schemas,
// prompts, tags, and extraction jobs it touches belong to that tenant.
//
// The client hides retry classification, schema versioning, and async job
// completion behind typed services. It never retries on its own and it never
// polls on its own: failures carry a taxonomy the caller can branch on, and
// job completion is observed by caller-driven polling (or the worker.Poller
// convenience loop).
package docrouter

import (
	"fmt"

	"github.com/analytiq-hub/docrouter-go/internal/adapters/driven/cache/memory"
	"github.com/analytiq-hub/docrouter-go/internal/adapters/driven/httpapi"
	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driving"
	"github.com/analytiq-hub/docrouter-go/internal/core/services"
)

// Client is an organization-scoped DocRouter API client. Construct it with
// NewClient; the zero value is not usable.
type Client struct {
	org         domain.OrgScope
	cache       driven.ResultCache
	documents   driving.DocumentService
	schemas     driving.SchemaService
	prompts     driving.PromptService
	tags        driving.TagService
	extractions driving.ExtractionService
}

// NewClient creates a client for one organization. tokens supplies the
// org-bound bearer credential for every call; it is required, never optional,
// so credentials cannot end up as ambient process state.
func NewClient(baseURL, orgID string, tokens TokenProvider, opts ...Option) (*Client, error) {
	org := domain.OrgScope{ID: orgID}
	if err := org.Validate(); err != nil {
		return nil, fmt.Errorf("docrouter: missing organization id: %w", err)
	}
	if tokens == nil {
		return nil, fmt.Errorf("docrouter: nil token provider: %w", domain.ErrInvalidInput)
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var cache driven.ResultCache = cfg.cache
	if cache == nil {
		cache = memory.NewCache()
	}

	transport := cfg.transport
	if transport == nil {
		transport = httpapi.NewTransport(baseURL, org, tokens, cfg.transportOpts...)
	}

	return &Client{
		org:       org,
		cache:     cache,
		documents: services.NewDocumentService(transport, cache, org),
		schemas:   services.NewSchemaService(transport, cache, org),
		prompts:   services.NewPromptService(transport, org),
		tags:      services.NewTagService(transport, cache, org),
		extractions: services.NewExtractionService(services.ExtractionConfig{
			Transport: transport,
			Cache:     cache,
			Org:       org,
			RunLock:   cfg.runLock,
			LockTTL:   cfg.lockTTL,
		}),
	}, nil
}

// Org returns the client's organization scope ID.
func (c *Client) Org() string {
	return c.org.ID
}

// Documents returns the document service.
func (c *Client) Documents() driving.DocumentService {
	return c.documents
}

// Schemas returns the schema revision service.
func (c *Client) Schemas() driving.SchemaService {
	return c.schemas
}

// Prompts returns the prompt revision service.
func (c *Client) Prompts() driving.PromptService {
	return c.prompts
}

// Tags returns the tag service.
func (c *Client) Tags() driving.TagService {
	return c.tags
}

// Extractions returns the extraction job service.
func (c *Client) Extractions() driving.ExtractionService {
	return c.extractions
}
