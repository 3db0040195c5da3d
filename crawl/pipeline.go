// Package crawl orchestrates article extraction: cache lookups, robots.txt
// checks, fetching with retry and rate limiting, decoding, filtering,
// tidying and text extraction, for a single URL or a batch of them.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/cluster"
)

// Article is the outcome of extracting one URL.
type Article struct {
	// URL is the requested URL or file name.
	URL string

	// Title is the normalized document title. Empty for cached results.
	Title string

	// Text is the normalized main text, or the tidied HTML in raw mode.
	// Empty when the resource's MIME type was not allowed.
	Text string

	// Encoding is the name of the character encoding the page was
	// decoded with. Empty for cached results.
	Encoding string

	// ContentHash is the xxhash of Text in hex.
	ContentHash string

	// Cached reports whether Text came from the cache.
	Cached bool
}

// Pipeline extracts articles from URLs. Fetcher, Decoder and Extractor are
// required; every other collaborator is optional and skipped when nil.
type Pipeline struct {
	Fetcher   webarticle.Fetcher
	Decoder   webarticle.Decoder
	Extractor webarticle.Extractor
	Tidier    webarticle.Tidier
	Filter    webarticle.Filter
	Cache     webarticle.Cache
	Robots    webarticle.RobotsChecker
	Limiter   webarticle.DomainLimiter
	Logger    *slog.Logger

	// UserAgent is checked against robots.txt rules.
	UserAgent string

	// Encoding forces the character encoding instead of detecting it.
	Encoding string

	// Raw returns the filtered and tidied HTML instead of extracted text.
	// The text cache is neither read nor written in raw mode.
	Raw bool

	// RetryDelays overrides DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Extract runs the full extraction flow for target, a URL or local file.
//
// Returns EFORBIDDEN when robots.txt denies access. A resource whose MIME
// type is not allowed yields an Article with empty Text and no error.
func (p *Pipeline) Extract(ctx context.Context, target string) (*Article, error) {
	logger := p.logger()
	textKey := webarticle.CacheKey(webarticle.CacheKindText, target)

	if p.Cache != nil && !p.Raw {
		entry, err := p.Cache.Get(ctx, textKey)
		switch {
		case err == nil && entry.Content != "":
			return &Article{
				URL:         target,
				Text:        entry.Content,
				ContentHash: ComputeHash(entry.Content),
				Cached:      true,
			}, nil
		case err != nil && webarticle.ErrorCode(err) != webarticle.ENOTFOUND:
			return nil, fmt.Errorf("reading cache: %w", err)
		}
	}

	host, remote := remoteHost(target)
	if remote && p.Robots != nil {
		allowed, err := p.Robots.Allowed(ctx, target, p.UserAgent)
		if err != nil {
			logger.Warn("robots.txt unavailable, assuming allowed", "url", target, "err", err)
		} else if !allowed {
			return nil, webarticle.Errorf(webarticle.EFORBIDDEN, "request denied by robots.txt: %s", target)
		}
	}

	res, err := p.fetch(ctx, target, host, remote)
	if webarticle.ErrorCode(err) == webarticle.EUNSUPPORTED {
		logger.Info("skipping resource", "url", target, "reason", webarticle.ErrorMessage(err))
		return &Article{URL: target}, nil
	} else if err != nil {
		return nil, err
	}

	html, encoding, err := p.Decoder.Decode(res.Body, res.ContentType, p.Encoding)
	if err != nil {
		return nil, err
	}
	logger.Debug("decoded", "url", target, "encoding", encoding, "chars", len(html))

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, webarticle.CacheKey(webarticle.CacheKindRaw, target), html); err != nil {
			return nil, fmt.Errorf("writing raw cache: %w", err)
		}
	}

	if p.Filter != nil {
		html = p.Filter(html)
	}
	if p.Tidier != nil {
		if html, err = p.Tidier.Tidy(html); err != nil {
			return nil, fmt.Errorf("tidying %s: %w", target, err)
		}
	}

	if p.Raw {
		return &Article{
			URL:         target,
			Text:        html,
			Encoding:    encoding,
			ContentHash: ComputeHash(html),
		}, nil
	}

	result, err := p.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", target, err)
	}
	text := cluster.Normalize(result.Text)

	if p.Cache != nil {
		if err := p.Cache.Set(ctx, textKey, text); err != nil {
			return nil, fmt.Errorf("writing text cache: %w", err)
		}
	}

	return &Article{
		URL:         target,
		Title:       cluster.Normalize(result.Title),
		Text:        text,
		Encoding:    encoding,
		ContentHash: ComputeHash(text),
	}, nil
}

func (p *Pipeline) fetch(ctx context.Context, target, host string, remote bool) (*webarticle.Resource, error) {
	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	fetch := func(ctx context.Context, u string) (*webarticle.Resource, error) {
		if remote && p.Limiter != nil {
			if err := p.Limiter.Wait(ctx, host); err != nil {
				return nil, err
			}
		}
		return p.Fetcher.Fetch(ctx, u)
	}
	logger := p.logger()
	retry := func(u string, attempt int, err error) {
		logger.Info("retry", "url", u, "attempt", attempt, "err", err)
	}
	return FetchWithRetry(ctx, target, fetch, retry, delays)
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.Logger
}

// remoteHost returns the host of an http or https URL. Anything else is
// treated as a local file.
func remoteHost(target string) (string, bool) {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", false
	}
	return u.Hostname(), true
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
