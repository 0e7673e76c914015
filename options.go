package docrouter

import (
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/analytiq-hub/docrouter-go/internal/adapters/driven/auth"
	rediscache "github.com/analytiq-hub/docrouter-go/internal/adapters/driven/cache/redis"
	"github.com/analytiq-hub/docrouter-go/internal/adapters/driven/httpapi"
	redislock "github.com/analytiq-hub/docrouter-go/internal/adapters/driven/redis"
	"github.com/analytiq-hub/docrouter-go/internal/core/ports/driven"
)

// TokenProvider supplies the organization-bound bearer credential.
type TokenProvider = driven.TokenProvider

// ResultCache memoizes fetched results; see driven.ResultCache.
type ResultCache = driven.ResultCache

// RunLock extends the at-most-one-job guarantee across processes.
type RunLock = driven.RunLock

type clientConfig struct {
	transport     driven.Transport
	transportOpts []httpapi.Option
	cache         driven.ResultCache
	runLock       driven.RunLock
	lockTTL       time.Duration
}

// Option configures a Client
type Option func(*clientConfig)

// WithHTTPClient sets a custom HTTP client for the transport.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.transportOpts = append(cfg.transportOpts, httpapi.WithHTTPClient(c))
	}
}

// WithTimeout sets the transport's HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.transportOpts = append(cfg.transportOpts, httpapi.WithTimeout(d))
	}
}

// WithCache replaces the default in-memory result cache.
func WithCache(cache ResultCache) Option {
	return func(cfg *clientConfig) {
		cfg.cache = cache
	}
}

// WithRunLock guards extraction runs across processes.
func WithRunLock(lock RunLock) Option {
	return func(cfg *clientConfig) {
		cfg.runLock = lock
	}
}

// WithLockTTL bounds how long a crashed process can hold a run lock.
func WithLockTTL(ttl time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.lockTTL = ttl
	}
}

// WithRedis wires both the shared result cache and the cross-process run
// lock to one Redis instance. Use this when several client processes serve
// the same organization.
func WithRedis(client *goredis.Client) Option {
	return func(cfg *clientConfig) {
		cfg.cache = rediscache.NewCache(client)
		cfg.runLock = redislock.NewRunLock(client)
	}
}

// withTransport injects a transport directly. Test hook.
func withTransport(t driven.Transport) Option {
	return func(cfg *clientConfig) {
		cfg.transport = t
	}
}

// NewStaticTokenProvider returns a TokenProvider serving a fixed API token.
func NewStaticTokenProvider(token string) TokenProvider {
	return auth.NewStaticTokenProvider(token)
}

// NewJWTTokenProvider returns a TokenProvider that parses the token's claims
// and rejects it client-side once expired or when bound to another
// organization.
func NewJWTTokenProvider(token, orgID string) (TokenProvider, error) {
	return auth.NewJWTTokenProvider(token, orgID)
}
