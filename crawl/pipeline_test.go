package crawl_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/cluster"
	"github.com/fwojciec/webarticle/crawl"
	"github.com/fwojciec/webarticle/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleHTML keeps the body text deeper than the default blur, so it
// clusters apart from the title.
const articleHTML = `<html><head><title>Greeting</title></head><body><article><div><section><div><p>Hello world, this is the article.</p></div></section></div></article><footer><p>Copyright 2020</p></footer></body></html>`

func htmlFetcher(body string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*webarticle.Resource, error) {
			return &webarticle.Resource{URL: url, ContentType: "text/html", Body: []byte(body)}, nil
		},
	}
}

func utf8Decoder() *mock.Decoder {
	return &mock.Decoder{
		DecodeFn: func(body []byte, _, _ string) (string, string, error) {
			return string(body), "utf-8", nil
		},
	}
}

func newPipeline(t *testing.T, body string) *crawl.Pipeline {
	t.Helper()

	return &crawl.Pipeline{
		Fetcher:     htmlFetcher(body),
		Decoder:     utf8Decoder(),
		Extractor:   cluster.NewExtractor(),
		RetryDelays: []time.Duration{0},
	}
}

func TestPipeline_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main text and title", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)

		article, err := p.Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Hello world, this is the article.", article.Text)
		assert.Equal(t, "Greeting", article.Title)
		assert.Equal(t, "utf-8", article.Encoding)
		assert.Equal(t, crawl.ComputeHash("Hello world, this is the article."), article.ContentHash)
		assert.False(t, article.Cached)
	})

	t.Run("stores raw and text in cache and serves later calls from it", func(t *testing.T) {
		t.Parallel()

		// Given a pipeline with a cache
		p := newPipeline(t, articleHTML)
		var fetches atomic.Int32
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*webarticle.Resource, error) {
				fetches.Add(1)
				return htmlFetcher(articleHTML).Fetch(ctx, url)
			},
		}
		cache := mock.NewMemoryCache()
		p.Cache = cache
		ctx := context.Background()

		// When the same URL is extracted twice
		_, err := p.Extract(ctx, "https://example.com/a")
		require.NoError(t, err)
		article, err := p.Extract(ctx, "https://example.com/a")
		require.NoError(t, err)

		// Then the second call is served from cache
		assert.Equal(t, int32(1), fetches.Load())
		assert.True(t, article.Cached)
		assert.Equal(t, "Hello world, this is the article.", article.Text)

		raw, err := cache.Get(ctx, webarticle.CacheKey(webarticle.CacheKindRaw, "https://example.com/a"))
		require.NoError(t, err)
		assert.Equal(t, articleHTML, raw.Content)
	})

	t.Run("returns EFORBIDDEN when robots.txt denies access", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.UserAgent = "bot/1.0"
		var gotAgent string
		p.Robots = &mock.RobotsChecker{
			AllowedFn: func(_ context.Context, _, ua string) (bool, error) {
				gotAgent = ua
				return false, nil
			},
		}

		_, err := p.Extract(context.Background(), "https://example.com/private")

		assert.Equal(t, webarticle.EFORBIDDEN, webarticle.ErrorCode(err))
		assert.Equal(t, "bot/1.0", gotAgent)
	})

	t.Run("proceeds when robots.txt cannot be read", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Robots = &mock.RobotsChecker{
			AllowedFn: func(context.Context, string, string) (bool, error) {
				return false, errors.New("dial tcp: connection refused")
			},
		}

		article, err := p.Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "Hello world, this is the article.", article.Text)
	})

	t.Run("skips robots and rate limiting for local files", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Robots = &mock.RobotsChecker{
			AllowedFn: func(context.Context, string, string) (bool, error) {
				t.Fatal("robots checked for local file")
				return false, nil
			},
		}
		p.Limiter = &mock.DomainLimiter{
			WaitFn: func(context.Context, string) error {
				t.Fatal("rate limited local file")
				return nil
			},
		}

		article, err := p.Extract(context.Background(), "testdata/page.html")

		require.NoError(t, err)
		assert.Equal(t, "Hello world, this is the article.", article.Text)
	})

	t.Run("returns cache read errors other than not found", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Cache = &mock.Cache{
			GetFn: func(_ context.Context, _ string) (*webarticle.CacheEntry, error) {
				return nil, errors.New("disk gone")
			},
		}

		_, err := p.Extract(context.Background(), "https://example.com/a")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading cache")
	})

	t.Run("returns raw cache write errors", func(t *testing.T) {
		t.Parallel()

		// Given a cache that misses and then refuses writes
		var keys []string
		p := newPipeline(t, articleHTML)
		p.Cache = &mock.Cache{
			GetFn: func(_ context.Context, key string) (*webarticle.CacheEntry, error) {
				return nil, webarticle.Errorf(webarticle.ENOTFOUND, "no entry %q", key)
			},
			SetFn: func(_ context.Context, key, _ string) error {
				keys = append(keys, key)
				return errors.New("read-only")
			},
		}

		// When extracting
		_, err := p.Extract(context.Background(), "https://example.com/a")

		// Then the raw write is attempted and its failure returned
		require.Error(t, err)
		assert.Contains(t, err.Error(), "writing raw cache")
		assert.Equal(t, []string{"raw:https://example.com/a"}, keys)
	})

	t.Run("waits on the domain limiter with the host", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		var domain string
		p.Limiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, d string) error {
				domain = d
				return nil
			},
		}

		_, err := p.Extract(context.Background(), "https://example.com:8443/a")

		require.NoError(t, err)
		assert.Equal(t, "example.com", domain)
	})

	t.Run("unsupported MIME type yields empty article", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (*webarticle.Resource, error) {
				return nil, webarticle.Errorf(webarticle.EUNSUPPORTED, "MIME type image/png not allowed")
			},
		}

		article, err := p.Extract(context.Background(), "https://example.com/logo.png")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/logo.png", article.URL)
		assert.Empty(t, article.Text)
	})

	t.Run("raw mode returns filtered and tidied HTML", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, "<p>Hi&#nbsp</p>")
		p.Raw = true
		p.Filter = webarticle.RemoveEntities
		p.Tidier = &mock.Tidier{
			TidyFn: func(html string) (string, error) {
				return "<html>" + html + "</html>", nil
			},
		}

		article, err := p.Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "<html><p>Hi</p></html>", article.Text)
	})

	t.Run("passes forced encoding to the decoder", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Encoding = "latin1"
		var label string
		p.Decoder = &mock.Decoder{
			DecodeFn: func(body []byte, _, l string) (string, string, error) {
				label = l
				return string(body), "windows-1252", nil
			},
		}

		article, err := p.Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "latin1", label)
		assert.Equal(t, "windows-1252", article.Encoding)
	})

	t.Run("normalizes extractor output", func(t *testing.T) {
		t.Parallel()

		p := newPipeline(t, articleHTML)
		p.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*webarticle.ExtractResult, error) {
				return &webarticle.ExtractResult{Title: " A title ", Text: "one ... two -- three"}, nil
			},
		}

		article, err := p.Extract(context.Background(), "https://example.com/a")

		require.NoError(t, err)
		assert.Equal(t, "A title", article.Title)
		assert.Equal(t, "one two three", article.Text)
	})
}
