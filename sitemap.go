package webarticle

import "context"

// SitemapReader lists the page URLs published in an XML sitemap.
type SitemapReader interface {
	// URLs returns the <loc> entries of the sitemap at sitemapURL,
	// following sitemap indexes.
	URLs(ctx context.Context, sitemapURL string) ([]string, error)
}
