package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 404, Message: "document not found"}
	if got := err.Error(); got != "api error 404: document not found" {
		t.Errorf("unexpected message: %s", got)
	}

	netErr := &HTTPError{Message: "connection refused", Retryable: true}
	if got := netErr.Error(); got != "request failed: connection refused" {
		t.Errorf("unexpected message: %s", got)
	}
}

func TestHTTPError_Taxonomy(t *testing.T) {
	tests := []struct {
		name      string
		err       *HTTPError
		sentinel  error
	}{
		{"unauthorized", &HTTPError{StatusCode: 401}, ErrUnauthorized},
		{"forbidden", &HTTPError{StatusCode: 403}, ErrForbidden},
		{"not found", &HTTPError{StatusCode: 404}, ErrNotFound},
		{"conflict", &HTTPError{StatusCode: 409}, ErrConflict},
		{"bad request", &HTTPError{StatusCode: 400}, ErrInvalidInput},
		{"unprocessable", &HTTPError{StatusCode: 422}, ErrInvalidInput},
		{"bad gateway", &HTTPError{StatusCode: 502, Retryable: true}, ErrTransient},
		{"unavailable", &HTTPError{StatusCode: 503, Retryable: true}, ErrTransient},
		{"gateway timeout", &HTTPError{StatusCode: 504, Retryable: true}, ErrTransient},
		{"network failure", &HTTPError{Retryable: true}, ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected %v to match %v", tt.err, tt.sentinel)
			}
		})
	}
}

func TestHTTPError_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("delete document abc: %w", &HTTPError{StatusCode: 404, Message: "gone"})
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped HTTPError should still match ErrNotFound")
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatal("expected to recover *HTTPError")
	}
	if httpErr.StatusCode != 404 {
		t.Errorf("expected status 404, got %d", httpErr.StatusCode)
	}
}

func TestHTTPError_ServerErrorNotRetryable(t *testing.T) {
	// A plain 500 is not classified as transient: only 502/503/504 and
	// network-level failures are.
	err := &HTTPError{StatusCode: 500, Message: "boom"}
	if errors.Is(err, ErrTransient) {
		t.Error("500 should not match ErrTransient")
	}
}
