package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/webarticle"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*webarticle.Resource, error)

// LogFunc is the signature for a logging function.
type LogFunc func(url string, attempt int, err error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Permanent reports whether err will not go away on retry: unsupported
// MIME types, forbidden or missing resources and invalid input.
func Permanent(err error) bool {
	switch webarticle.ErrorCode(err) {
	case webarticle.EUNSUPPORTED, webarticle.EFORBIDDEN, webarticle.ENOTFOUND, webarticle.EINVALID:
		return true
	}
	return false
}

// FetchWithRetry attempts to fetch a URL with exponential backoff retry logic.
// It retries up to len(delays) times, waiting delays[i] before retry i.
// Permanent errors are returned immediately. The logger, if provided, is
// called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*webarticle.Resource, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := fetch(ctx, url)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if Permanent(err) || attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger(url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
