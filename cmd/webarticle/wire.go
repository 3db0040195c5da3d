package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/chardet"
	"github.com/fwojciec/webarticle/cluster"
	"github.com/fwojciec/webarticle/crawl"
	"github.com/fwojciec/webarticle/fs"
	"github.com/fwojciec/webarticle/gohtml"
	wahttp "github.com/fwojciec/webarticle/http"
	"github.com/fwojciec/webarticle/readability"
	"github.com/fwojciec/webarticle/rod"
	waslog "github.com/fwojciec/webarticle/slog"
	"github.com/fwojciec/webarticle/sqlite"
	"github.com/fwojciec/webarticle/trafilatura"
)

// BuildPipeline wires the real collaborators selected by flags.
func BuildPipeline(deps *Dependencies, flags FetchFlags) (*crawl.Pipeline, func() error, error) {
	userAgent := flags.UserAgent
	if userAgent == "" {
		userAgent = webarticle.DefaultUserAgent()
	}

	var filter webarticle.Filter
	if flags.Filters != "" {
		f, err := deps.Filters.Chain(flags.Filters)
		if err != nil {
			return nil, nil, err
		}
		filter = f
	}

	extractor, err := NewExtractor(flags.Extractor, flags.Blur, deps.Logger)
	if err != nil {
		return nil, nil, err
	}

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var cache webarticle.Cache
	if flags.Cache {
		c, closeCache, err := OpenCache(flags.CacheFlags)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closeCache)
		cache = waslog.NewLoggingCache(c, deps.Logger)
	}

	var remote webarticle.Fetcher
	if flags.Render {
		f, err := rod.NewFetcher(rod.WithTimeout(flags.Timeout))
		if err != nil {
			_ = closeAll()
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		remote = f
	} else {
		remote = wahttp.NewFetcher(
			wahttp.WithTimeout(flags.Timeout),
			wahttp.WithUserAgent(userAgent),
			wahttp.WithMIMETypes(flags.OnlyMIMETypes...),
		)
	}
	fetcher := waslog.NewLoggingFetcher(&fetchMux{local: fs.NewFetcher(), remote: remote}, deps.Logger)
	closers = append(closers, fetcher.Close)

	p := &crawl.Pipeline{
		Fetcher:   fetcher,
		Decoder:   chardet.NewDecoder(),
		Extractor: extractor,
		Tidier:    gohtml.NewTidier(gohtml.WithIndent(flags.Raw)),
		Filter:    filter,
		Cache:     cache,
		Logger:    deps.Logger,
		UserAgent: userAgent,
		Encoding:  flags.Encoding,
		Raw:       flags.Raw,
	}

	if !flags.IgnoreRobotstxt {
		opts := []wahttp.RobotsOption{
			wahttp.WithRobotsClient(&http.Client{Timeout: flags.Timeout}),
		}
		if cache != nil {
			opts = append(opts, wahttp.WithRobotsCache(cache))
		}
		p.Robots = waslog.NewLoggingRobotsChecker(wahttp.NewRobotsChecker(opts...), deps.Logger)
	}

	return p, closeAll, nil
}

// NewExtractor returns the extractor called name, logging through logger.
func NewExtractor(name string, blur int, logger *slog.Logger) (webarticle.Extractor, error) {
	var ext webarticle.Extractor
	switch name {
	case "", "cluster":
		if blur < 0 {
			return nil, webarticle.Errorf(webarticle.EINVALID, "blur must not be negative, got %d", blur)
		}
		ext = cluster.NewExtractor(cluster.WithBlur(blur), cluster.WithLogger(logger))
	case "readability":
		ext = readability.NewExtractor()
	case "trafilatura":
		ext = trafilatura.NewExtractor()
	default:
		return nil, webarticle.Errorf(webarticle.EINVALID, "unknown extractor %q", name)
	}
	return waslog.NewLoggingExtractor(ext, logger), nil
}

// OpenCache opens the SQLite cache when CacheDB is set and the directory
// cache otherwise.
func OpenCache(flags CacheFlags) (webarticle.Cache, func() error, error) {
	if flags.CacheDB != "" {
		db := sqlite.NewDB(flags.CacheDB)
		if err := db.Open(); err != nil {
			return nil, nil, fmt.Errorf("failed to open cache database at %q: %w", flags.CacheDB, err)
		}
		return sqlite.NewCache(db), db.Close, nil
	}
	return fs.NewCache(flags.CacheDir), func() error { return nil }, nil
}

// fetchMux sends local file names to one fetcher and URLs to another.
type fetchMux struct {
	local  webarticle.Fetcher
	remote webarticle.Fetcher
}

func (m *fetchMux) Fetch(ctx context.Context, target string) (*webarticle.Resource, error) {
	if fs.IsLocal(target) {
		return m.local.Fetch(ctx, target)
	}
	return m.remote.Fetch(ctx, target)
}

func (m *fetchMux) Close() error {
	return errors.Join(m.local.Close(), m.remote.Close())
}
