package driven

import "context"

// ResultKind partitions the cache key space by resource type
type ResultKind string

const (
	KindDocument       ResultKind = "document"
	KindSchemaRevision ResultKind = "schema_revision"
	KindTagList        ResultKind = "tag_list"
	KindExtraction     ResultKind = "extraction"
)

// CacheKey addresses one cached value. Organization ID is part of the key so
// entries never leak across tenant boundaries.
type CacheKey struct {
	OrgID      string
	Kind       ResultKind
	ResourceID string
}

// CacheEntry is a cached value with its write version. Versions increase
// monotonically across writes.
type CacheEntry struct {
	Key     CacheKey
	Value   []byte
	Version int64
}

// ResultCache memoizes fetched results. Services invalidate an entry before
// returning from any successful mutation on the same key, so a read that
// follows a mutation always observes fresh data.
type ResultCache interface {
	// Get returns the entry for key, or domain.ErrNotFound when absent.
	Get(ctx context.Context, key CacheKey) (*CacheEntry, error)

	// Set stores value under key and returns the new version.
	Set(ctx context.Context, key CacheKey, value []byte) (int64, error)

	// Invalidate removes the entry for key. Removing an absent entry is not
	// an error.
	Invalidate(ctx context.Context, key CacheKey) error

	// Ping checks the cache backend is reachable.
	Ping(ctx context.Context) error
}
