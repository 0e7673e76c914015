package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the credential is missing or invalid
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the credential lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrConflict indicates a concurrent mutation lost a race
	ErrConflict = errors.New("conflict")

	// ErrTransient indicates a retryable network or server fault
	ErrTransient = errors.New("transient failure")

	// ErrNotStarted indicates an extraction was queried before any run
	ErrNotStarted = errors.New("extraction not started")

	// ErrTokenExpired indicates the bearer token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the bearer token is malformed or bound to
	// another organization
	ErrTokenInvalid = errors.New("token invalid")
)

// HTTPError is the typed failure produced by the transport for non-2xx
// responses and network-level faults. Retryable is true only for 502/503/504
// and transport failures that never reached the server.
type HTTPError struct {
	StatusCode int
	Message    string
	Retryable  bool
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the wire status onto the domain taxonomy so callers can match
// with errors.Is(err, domain.ErrNotFound) instead of inspecting status codes.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.Retryable:
		return ErrTransient
	case e.StatusCode == 401:
		return ErrUnauthorized
	case e.StatusCode == 403:
		return ErrForbidden
	case e.StatusCode == 404:
		return ErrNotFound
	case e.StatusCode == 409:
		return ErrConflict
	case e.StatusCode == 400 || e.StatusCode == 422:
		return ErrInvalidInput
	}
	return nil
}
