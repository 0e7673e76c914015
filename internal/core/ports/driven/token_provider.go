package driven

import "context"

// TokenProvider supplies the organization-bound bearer credential for API
// calls. It is injected into the transport so credentials are never embedded
// in client state.
type TokenProvider interface {
	// GetAccessToken returns a token valid for the client's organization.
	GetAccessToken(ctx context.Context) (string, error)

	// IsValid reports whether the credential can still be used.
	IsValid(ctx context.Context) bool
}
