package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/webarticle"
)

// Ensure SitemapReader implements webarticle.SitemapReader at compile time.
var _ webarticle.SitemapReader = (*SitemapReader)(nil)

// SitemapReader reads XML sitemaps and sitemap indexes.
type SitemapReader struct {
	client    *http.Client
	userAgent string
}

// NewSitemapReader creates a new SitemapReader.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapReader(client *http.Client, userAgent string) *SitemapReader {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	if userAgent == "" {
		userAgent = webarticle.DefaultUserAgent()
	}
	return &SitemapReader{client: client, userAgent: userAgent}
}

// URLs returns the page URLs listed in the sitemap at sitemapURL in
// document order. Sitemap indexes are followed; each sitemap is read once.
func (s *SitemapReader) URLs(ctx context.Context, sitemapURL string) ([]string, error) {
	return s.read(ctx, sitemapURL, make(map[string]bool))
}

func (s *SitemapReader) read(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, webarticle.Errorf(webarticle.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, webarticle.Errorf(webarticle.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, loc := range locs(root, "sitemap") {
			child, err := s.read(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, child...)
		}
		return urls, nil
	}
	return locs(root, "url"), nil
}

// locs returns the trimmed <loc> text of each child element named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapReader) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}
