package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
)

// signToken builds a signed HS256 token. The provider never verifies the
// signature, so any secret works for tests.
func signToken(t *testing.T, orgID string, expiresAt *time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user-1"}
	if orgID != "" {
		claims["org_id"] = orgID
	}
	if expiresAt != nil {
		claims["exp"] = expiresAt.Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestStaticTokenProvider(t *testing.T) {
	p := NewStaticTokenProvider("api-key-1")

	token, err := p.GetAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "api-key-1" {
		t.Errorf("expected api-key-1, got %q", token)
	}
	if !p.IsValid(context.Background()) {
		t.Error("expected configured provider to be valid")
	}
}

func TestStaticTokenProvider_Empty(t *testing.T) {
	p := NewStaticTokenProvider("")

	_, err := p.GetAccessToken(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if p.IsValid(context.Background()) {
		t.Error("expected empty provider to be invalid")
	}
}

func TestJWTTokenProvider(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := signToken(t, "org-1", &exp)

	p, err := NewJWTTokenProvider(raw, "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := p.GetAccessToken(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != raw {
		t.Error("expected the raw token back")
	}
	if !p.IsValid(context.Background()) {
		t.Error("expected unexpired token to be valid")
	}
}

func TestJWTTokenProvider_Expired(t *testing.T) {
	exp := time.Now().Add(-time.Minute)
	raw := signToken(t, "org-1", &exp)

	p, err := NewJWTTokenProvider(raw, "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = p.GetAccessToken(context.Background())
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if p.IsValid(context.Background()) {
		t.Error("expected expired token to be invalid")
	}
}

func TestJWTTokenProvider_WrongOrg(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	raw := signToken(t, "org-other", &exp)

	_, err := NewJWTTokenProvider(raw, "org-1")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for a foreign-org token, got %v", err)
	}
}

func TestJWTTokenProvider_NoOrgClaim(t *testing.T) {
	// Tokens without an org binding are accepted; the backend still enforces
	// scope on every call.
	raw := signToken(t, "", nil)

	p, err := NewJWTTokenProvider(raw, "org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsValid(context.Background()) {
		t.Error("expected token without exp to be valid")
	}
}

func TestJWTTokenProvider_Garbage(t *testing.T) {
	_, err := NewJWTTokenProvider("not-a-jwt", "org-1")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
