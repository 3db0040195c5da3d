package fs

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fwojciec/webarticle"
)

// Ensure Fetcher implements webarticle.Fetcher at compile time.
var _ webarticle.Fetcher = (*Fetcher)(nil)

// Fetcher reads local HTML files, given as a path or a file:// URL.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// IsLocal reports whether target names a local file rather than a remote URL.
func IsLocal(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return true
	}
	// Single-letter schemes are Windows drive letters.
	return u.Scheme == "" || u.Scheme == "file" || len(u.Scheme) == 1
}

func (f *Fetcher) Fetch(ctx context.Context, target string) (*webarticle.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := target
	if u, err := url.Parse(target); err == nil && u.Scheme == "file" {
		path = u.Path
	}

	body, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, webarticle.Errorf(webarticle.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return &webarticle.Resource{
		URL:         target,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
