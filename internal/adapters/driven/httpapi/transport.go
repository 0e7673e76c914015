package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.Transport = (*Transport)(nil)

// Transport performs authenticated DocRouter API calls. Every request carries
// the bearer credential from the injected TokenProvider and the organization
// scope header. Non-2xx responses become *domain.HTTPError; nothing is
// retried here, retry policy belongs to callers.
type Transport struct {
	baseURL    string
	org        domain.OrgScope
	tokens     driven.TokenProvider
	httpClient *http.Client
}

// Option configures a Transport
type Option func(*Transport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		t.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.httpClient.Timeout = d
	}
}

// NewTransport creates a transport scoped to one organization.
func NewTransport(baseURL string, org domain.OrgScope, tokens driven.TokenProvider, opts ...Option) *Transport {
	t := &Transport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		org:        org,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// apiErrorBody is the backend's error envelope
type apiErrorBody struct {
	Detail string `json:"detail"`
}

// Do performs one request and decodes the JSON response into out when out is
// non-nil. Network-level failures are reported as retryable HTTPError with a
// zero status code.
func (t *Transport) Do(ctx context.Context, method, path string, body, out any) error {
	token, err := t.tokens.GetAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("get access token: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Org-Id", t.org.ID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return &domain.HTTPError{Message: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.HTTPError{Message: "read response: " + err.Error(), Retryable: true}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
			Retryable:  retryable(resp.StatusCode),
		}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// retryable reports whether a status indicates a transient server fault.
// Only 502/503/504 qualify; everything else fails fast.
func retryable(statusCode int) bool {
	switch statusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// errorMessage extracts the backend's detail field, falling back to the raw
// body.
func errorMessage(body []byte) string {
	var envelope apiErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		return envelope.Detail
	}
	return string(body)
}
