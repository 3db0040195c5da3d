package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webarticle"
)

// Ensure LoggingExtractor implements webarticle.Extractor.
var _ webarticle.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   webarticle.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next webarticle.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs input and output sizes.
func (e *LoggingExtractor) Extract(html string) (res *webarticle.ExtractResult, err error) {
	defer func(begin time.Time) {
		var n int
		if res != nil {
			n = len(res.Text)
		}
		e.logger.Info("extract",
			"bytes", len(html),
			"chars", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingCache implements webarticle.Cache.
var _ webarticle.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with debug logging.
type LoggingCache struct {
	next   webarticle.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next webarticle.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs hits and misses.
func (c *LoggingCache) Get(ctx context.Context, key string) (entry *webarticle.CacheEntry, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache get",
			"key", key,
			"hit", entry != nil,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Get(ctx, key)
}

// Set delegates to the wrapped cache and logs the write.
func (c *LoggingCache) Set(ctx context.Context, key, content string) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache set",
			"key", key,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Set(ctx, key, content)
}
