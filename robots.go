package webarticle

import "context"

// RobotsChecker decides whether a URL may be fetched under the site's
// robots.txt rules.
type RobotsChecker interface {
	Allowed(ctx context.Context, url, userAgent string) (bool, error)
}
