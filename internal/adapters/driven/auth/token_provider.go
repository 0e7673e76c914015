package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/analytiq-hub/docrouter-go/internal/core/domain"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.TokenProvider = (*StaticTokenProvider)(nil)
	_ driven.TokenProvider = (*JWTTokenProvider)(nil)
)

// StaticTokenProvider serves a fixed API token. Used for long-lived
// organization API keys that carry no readable claims.
type StaticTokenProvider struct {
	token string
}

// NewStaticTokenProvider creates a provider for a static token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

func (p *StaticTokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("no token configured: %w", domain.ErrUnauthorized)
	}
	return p.token, nil
}

func (p *StaticTokenProvider) IsValid(ctx context.Context) bool {
	return p.token != ""
}

// orgClaims are the claims of an organization-bound bearer token
type orgClaims struct {
	OrgID string `json:"org_id"`
	jwt.RegisteredClaims
}

// JWTTokenProvider serves a JWT bearer token and rejects it client-side when
// it has expired or is bound to a different organization, saving a round trip
// that would come back 401. Signature verification stays with the server; the
// client never holds the signing secret.
type JWTTokenProvider struct {
	token  string
	claims *orgClaims
}

// NewJWTTokenProvider parses the token's claims and checks it is bound to
// orgID. The token is not signature-verified here.
func NewJWTTokenProvider(token, orgID string) (*JWTTokenProvider, error) {
	claims := &orgClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}

	if claims.OrgID != "" && claims.OrgID != orgID {
		return nil, fmt.Errorf("%w: token bound to organization %s", domain.ErrTokenInvalid, claims.OrgID)
	}

	return &JWTTokenProvider{token: token, claims: claims}, nil
}

func (p *JWTTokenProvider) GetAccessToken(ctx context.Context) (string, error) {
	if p.expired() {
		return "", fmt.Errorf("%w: expired at %s", domain.ErrTokenExpired, p.claims.ExpiresAt)
	}
	return p.token, nil
}

func (p *JWTTokenProvider) IsValid(ctx context.Context) bool {
	return !p.expired()
}

func (p *JWTTokenProvider) expired() bool {
	if p.claims.ExpiresAt == nil {
		return false
	}
	return p.claims.ExpiresAt.Before(time.Now())
}
