package webarticle

import "context"

// Resource is the raw content retrieved for a URL or local file.
type Resource struct {
	// URL is the final location after redirects.
	URL string

	// ContentType is the media type including parameters, as reported by
	// the server or guessed from the file extension.
	ContentType string

	// Body is the undecoded payload.
	Body []byte
}

// Fetcher retrieves raw resources.
type Fetcher interface {
	// Fetch retrieves the resource at url.
	// Returns EUNSUPPORTED when the resource's MIME type is not allowed.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Resource, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
