package driven

import "context"

// Transport performs authenticated, organization-scoped API calls.
// Implementations attach the bearer credential and the org header, classify
// non-2xx responses as *domain.HTTPError, and never retry; retry policy
// belongs to callers so immediate-fail semantics stay available.
type Transport interface {
	// Do issues one request. A non-nil body is sent as JSON; a non-nil out
	// receives the decoded JSON response.
	Do(ctx context.Context, method, path string, body, out any) error
}
