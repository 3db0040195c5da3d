package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/webarticle"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTTL is how long a cached robots.txt stays fresh.
const DefaultRobotsTTL = 7 * 24 * time.Hour

// Ensure RobotsChecker implements webarticle.RobotsChecker at compile time.
var _ webarticle.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker evaluates URLs against the robots.txt of their host.
// Parsed rules are kept per host for the lifetime of the checker and,
// when a Cache is configured, persisted across runs.
// RobotsChecker is safe for concurrent use.
type RobotsChecker struct {
	client *http.Client
	cache  webarticle.Cache
	ttl    time.Duration
	now    func() time.Time

	mu    sync.Mutex
	rules map[string]*robotstxt.RobotsData
}

// RobotsOption configures a RobotsChecker.
type RobotsOption func(*RobotsChecker)

// WithRobotsClient sets the HTTP client used to download robots.txt.
func WithRobotsClient(c *http.Client) RobotsOption {
	return func(r *RobotsChecker) {
		r.client = c
	}
}

// WithRobotsCache persists downloaded robots.txt files in c.
func WithRobotsCache(c webarticle.Cache) RobotsOption {
	return func(r *RobotsChecker) {
		r.cache = c
	}
}

// WithRobotsTTL sets how long cached robots.txt files are trusted.
// Defaults to DefaultRobotsTTL.
func WithRobotsTTL(d time.Duration) RobotsOption {
	return func(r *RobotsChecker) {
		r.ttl = d
	}
}

// WithClock sets the time source used for cache freshness.
func WithClock(now func() time.Time) RobotsOption {
	return func(r *RobotsChecker) {
		r.now = now
	}
}

// NewRobotsChecker creates a new RobotsChecker.
func NewRobotsChecker(opts ...RobotsOption) *RobotsChecker {
	r := &RobotsChecker{
		client: &http.Client{Timeout: DefaultFetchTimeout},
		ttl:    DefaultRobotsTTL,
		now:    time.Now,
		rules:  make(map[string]*robotstxt.RobotsData),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allowed reports whether userAgent may fetch rawURL.
func (r *RobotsChecker) Allowed(ctx context.Context, rawURL, userAgent string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false, webarticle.Errorf(webarticle.EINVALID, "invalid URL %q", rawURL)
	}
	robotsURL := (&url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/robots.txt"}).String()

	rules, err := r.load(ctx, robotsURL, userAgent)
	if err != nil {
		return false, err
	}

	p := u.EscapedPath()
	if p == "" {
		p = "/"
	}
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return rules.TestAgent(p, userAgent), nil
}

func (r *RobotsChecker) load(ctx context.Context, robotsURL, userAgent string) (*robotstxt.RobotsData, error) {
	r.mu.Lock()
	rules, ok := r.rules[robotsURL]
	r.mu.Unlock()
	if ok {
		return rules, nil
	}

	key := webarticle.CacheKey(webarticle.CacheKindRobots, robotsURL)
	if r.cache != nil {
		entry, err := r.cache.Get(ctx, key)
		switch {
		case err == nil && !entry.Stale(r.now(), r.ttl):
			if rules, err := robotstxt.FromString(entry.Content); err == nil {
				return r.remember(robotsURL, rules), nil
			}
		case err != nil && webarticle.ErrorCode(err) != webarticle.ENOTFOUND:
			return nil, err
		}
	}

	status, body, err := r.download(ctx, robotsURL, userAgent)
	if err != nil {
		return nil, err
	}
	rules, err = parseRobots(status, body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", robotsURL, err)
	}
	if r.cache != nil && status >= 200 && status < 300 {
		if err := r.cache.Set(ctx, key, string(body)); err != nil {
			return nil, err
		}
	}
	return r.remember(robotsURL, rules), nil
}

func (r *RobotsChecker) remember(robotsURL string, rules *robotstxt.RobotsData) *robotstxt.RobotsData {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[robotsURL] = rules
	return rules
}

func (r *RobotsChecker) download(ctx context.Context, robotsURL, userAgent string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// parseRobots applies the classic status rules: 401 and 403 deny
// everything, any other error status allows everything.
func parseRobots(status int, body []byte) (*robotstxt.RobotsData, error) {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return robotstxt.FromString("User-agent: *\nDisallow: /\n")
	case status >= 400:
		return robotstxt.FromString("")
	}
	return robotstxt.FromBytes(body)
}
