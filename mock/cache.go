package mock

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/webarticle"
)

var _ webarticle.Cache = (*Cache)(nil)

// Cache is a mock implementation of webarticle.Cache.
type Cache struct {
	GetFn func(ctx context.Context, key string) (*webarticle.CacheEntry, error)
	SetFn func(ctx context.Context, key, content string) error
}

func (c *Cache) Get(ctx context.Context, key string) (*webarticle.CacheEntry, error) {
	return c.GetFn(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key, content string) error {
	return c.SetFn(ctx, key, content)
}

// MemoryCache is an in-memory webarticle.Cache for tests that need a
// working cache rather than scripted responses.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]webarticle.CacheEntry

	// Now returns the time stamped on new entries. Defaults to time.Now.
	Now func() time.Time
}

var _ webarticle.Cache = (*MemoryCache)(nil)

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]webarticle.CacheEntry), Now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (*webarticle.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, webarticle.Errorf(webarticle.ENOTFOUND, "cache entry %q not found", key)
	}
	return &e, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = webarticle.CacheEntry{Content: content, ModTime: c.Now()}
	return nil
}
