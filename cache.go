package webarticle

import (
	"context"
	"strings"
	"time"
)

// Cache key prefixes. Keys are opaque to Cache implementations; the prefix
// only records what kind of content a key stores.
const (
	CacheKindText   = "text"
	CacheKindRaw    = "raw"
	CacheKindRobots = "robots"
)

// CacheKey builds the cache key for content of the given kind at url.
func CacheKey(kind, url string) string {
	return kind + ":" + url
}

// CacheKind returns the kind prefix of a key built by CacheKey.
func CacheKind(key string) string {
	kind, _, ok := strings.Cut(key, ":")
	if !ok {
		return ""
	}
	return kind
}

// CacheEntry is a stored cache value.
type CacheEntry struct {
	Content string
	ModTime time.Time
}

// Stale reports whether the entry is older than ttl at now.
// A zero ttl never goes stale.
func (e *CacheEntry) Stale(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(e.ModTime) > ttl
}

// Cache stores fetched and extracted content between runs.
type Cache interface {
	// Get returns the entry stored under key.
	// Returns ENOTFOUND if nothing is stored.
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores content under key, replacing any previous value.
	Set(ctx context.Context, key, content string) error
}

// CachePurger removes stale entries from a Cache.
type CachePurger interface {
	// Purge deletes entries of kind written before cutoff and returns the
	// number removed. An empty kind matches every entry.
	Purge(ctx context.Context, kind string, cutoff time.Time) (int64, error)
}
