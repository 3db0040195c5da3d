// Package http provides net/http implementations of webarticle.Fetcher,
// webarticle.RobotsChecker and webarticle.SitemapReader.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/webarticle"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 5 * time.Second

// MaxBodySize caps how much of a response body is read.
const MaxBodySize = 16 << 20

// Ensure Fetcher implements webarticle.Fetcher at compile time.
var _ webarticle.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw pages over HTTP. It does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	mimeTypes []string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (5s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to webarticle.DefaultUserAgent().
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMIMETypes restricts fetching to the given media types. Resources of
// any other type are rejected with EUNSUPPORTED.
func WithMIMETypes(types ...string) Option {
	return func(f *Fetcher) {
		for _, t := range types {
			if t = strings.TrimSpace(strings.ToLower(t)); t != "" {
				f.mimeTypes = append(f.mimeTypes, t)
			}
		}
	}
}

// WithClient sets the underlying HTTP client. Its Timeout is overwritten
// by the configured timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: webarticle.DefaultUserAgent(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the resource at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*webarticle.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, webarticle.Errorf(webarticle.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, webarticle.Errorf(webarticle.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, webarticle.Errorf(webarticle.EFORBIDDEN, "HTTP %d for %s", resp.StatusCode, rawURL)
	default:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	contentType := resp.Header.Get("Content-Type")
	if err := f.checkMIMEType(resp.Request.URL, contentType); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, err
	}

	return &webarticle.Resource{
		URL:         resp.Request.URL.String(),
		ContentType: contentType,
		Body:        body,
	}, nil
}

// checkMIMEType guesses the media type from the URL's extension first and
// falls back to the Content-Type header.
func (f *Fetcher) checkMIMEType(u *url.URL, contentType string) error {
	if len(f.mimeTypes) == 0 {
		return nil
	}
	mt := mediaType(mime.TypeByExtension(path.Ext(u.Path)))
	if mt == "" {
		mt = mediaType(contentType)
	}
	if !slices.Contains(f.mimeTypes, mt) {
		return webarticle.Errorf(webarticle.EUNSUPPORTED, "MIME type %q of %s is not one of %s", mt, u, strings.Join(f.mimeTypes, ", "))
	}
	return nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// mediaType strips parameters from a Content-Type value.
func mediaType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
