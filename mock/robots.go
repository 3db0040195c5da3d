package mock

import (
	"context"

	"github.com/fwojciec/webarticle"
)

var _ webarticle.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of webarticle.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url, userAgent string) (bool, error)
}

func (r *RobotsChecker) Allowed(ctx context.Context, url, userAgent string) (bool, error) {
	return r.AllowedFn(ctx, url, userAgent)
}

var _ webarticle.SitemapReader = (*SitemapReader)(nil)

// SitemapReader is a mock implementation of webarticle.SitemapReader.
type SitemapReader struct {
	URLsFn func(ctx context.Context, sitemapURL string) ([]string, error)
}

func (s *SitemapReader) URLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.URLsFn(ctx, sitemapURL)
}
