package crawl

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/webarticle/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs extracted at once.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate is the acceptable false positive rate for
// duplicate URL and content detection.
const dedupeFalsePositiveRate = 0.001

// ExtractFunc extracts one article. Pipeline.Extract satisfies it.
type ExtractFunc func(ctx context.Context, url string) (*Article, error)

// BatchResult is the outcome of one URL in a batch.
type BatchResult struct {
	// Position is the index of URL in the input.
	Position int
	URL      string
	Article  *Article
	Err      error

	// Duplicate reports that Article.Text equals the text of an earlier
	// result in the batch.
	Duplicate bool
}

// Batch extracts many URLs concurrently.
type Batch struct {
	Extract     ExtractFunc
	Concurrency int
}

// Run extracts urls and calls fn once per distinct URL, in input order, as
// soon as the result and all earlier ones are ready. Repeated URLs are
// skipped. Per-URL failures are reported on the result; Run only returns
// an error when ctx is canceled.
func (b *Batch) Run(ctx context.Context, urls []string, fn func(BatchResult)) error {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	seenURLs := bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)
	seenText := bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)

	type job struct {
		result BatchResult
		slot   chan BatchResult
	}
	var jobs []job
	for i, u := range urls {
		if seenURLs.Seen(u) {
			continue
		}
		jobs = append(jobs, job{
			result: BatchResult{Position: i, URL: u},
			slot:   make(chan BatchResult, 1),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, j := range jobs {
			g.Go(func() error {
				r := j.result
				r.Article, r.Err = b.Extract(gctx, r.URL)
				j.slot <- r
				return nil
			})
		}
	}()

	for _, j := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result := <-j.slot:
			if result.Err == nil && result.Article != nil && result.Article.Text != "" {
				result.Duplicate = seenText.SeenHash(xxhash.Sum64String(result.Article.Text))
			}
			fn(result)
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
