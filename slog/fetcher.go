// Package slog provides log/slog decorators for webarticle services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webarticle"
)

// Ensure LoggingFetcher implements webarticle.Fetcher.
var _ webarticle.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   webarticle.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next webarticle.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (res *webarticle.Resource, err error) {
	defer func(begin time.Time) {
		var n int
		var contentType string
		if res != nil {
			n, contentType = len(res.Body), res.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", n,
			"contentType", contentType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingRobotsChecker implements webarticle.RobotsChecker.
var _ webarticle.RobotsChecker = (*LoggingRobotsChecker)(nil)

// LoggingRobotsChecker wraps a RobotsChecker with logging.
type LoggingRobotsChecker struct {
	next   webarticle.RobotsChecker
	logger *slog.Logger
}

// NewLoggingRobotsChecker creates a new LoggingRobotsChecker.
func NewLoggingRobotsChecker(next webarticle.RobotsChecker, logger *slog.Logger) *LoggingRobotsChecker {
	return &LoggingRobotsChecker{next: next, logger: logger}
}

// Allowed delegates to the wrapped checker and logs the decision.
func (r *LoggingRobotsChecker) Allowed(ctx context.Context, url, userAgent string) (allowed bool, err error) {
	defer func(begin time.Time) {
		r.logger.Info("robots",
			"url", url,
			"userAgent", userAgent,
			"allowed", allowed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Allowed(ctx, url, userAgent)
}
