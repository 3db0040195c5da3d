package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/crawl"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls := slices.Clone(c.URLs)
	if c.Sitemap != "" {
		listed, err := deps.Sitemaps.URLs(deps.Ctx, c.Sitemap)
		if err != nil {
			return fmt.Errorf("reading sitemap: %w", err)
		}
		urls = append(urls, listed...)
	}
	if len(urls) == 0 {
		return webarticle.Errorf(webarticle.EINVALID, "no URLs given; pass URLs or --sitemap")
	}

	p, closePipeline, err := deps.BuildPipeline(c.FetchFlags)
	if err != nil {
		return err
	}
	defer closePipeline()
	p.Limiter = crawl.NewDomainLimiter(c.RPS)

	b := &crawl.Batch{
		Extract:     p.Extract,
		Concurrency: c.Concurrency,
	}

	var done, failed int
	err = b.Run(deps.Ctx, urls, func(r crawl.BatchResult) {
		done++
		switch {
		case r.Err != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, errorText(r.Err))
		case r.Duplicate:
			fmt.Fprintf(deps.Stderr, "skipped: %s: same text as an earlier page\n", r.URL)
		default:
			fmt.Fprintf(deps.Stdout, "# %s\n", r.URL)
			if c.Title {
				fmt.Fprintln(deps.Stdout, r.Article.Title)
			}
			fmt.Fprintln(deps.Stdout, r.Article.Text)
		}
	})
	if err != nil {
		return err
	}

	deps.Logger.Info("batch finished", "pages", done, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed", failed, done)
	}
	return nil
}
