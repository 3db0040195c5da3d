package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/webarticle/cluster"
	"github.com/fwojciec/webarticle/crawl"
	"github.com/fwojciec/webarticle/gohtml"
)

// compareExtractors are run by the compare command, in output order.
var compareExtractors = []string{"cluster", "readability", "trafilatura"}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	var expected string
	if c.Expected != "" {
		b, err := os.ReadFile(c.Expected)
		if err != nil {
			return fmt.Errorf("reading expected text: %w", err)
		}
		expected = cluster.Normalize(string(b))
	}

	flags := c.FetchFlags
	flags.Raw = true
	p, closePipeline, err := deps.BuildPipeline(flags)
	if err != nil {
		return err
	}
	defer closePipeline()
	p.Tidier = gohtml.NewTidier(gohtml.WithIndent(false))

	page, err := p.Extract(deps.Ctx, c.URL)
	if err != nil {
		return err
	}
	if page.Text == "" {
		fmt.Fprintln(deps.Stdout, "No content to compare.")
		return nil
	}

	for _, name := range compareExtractors {
		ext, err := NewExtractor(name, c.Blur, deps.Logger)
		if err != nil {
			return err
		}
		res, err := ext.Extract(page.Text)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%-12s error: %s\n", name, errorText(err))
			continue
		}
		text := cluster.Normalize(res.Text)
		if expected == "" {
			fmt.Fprintf(deps.Stdout, "%-12s %7d chars\n", name, len([]rune(text)))
			continue
		}
		fmt.Fprintf(deps.Stdout, "%-12s %7d chars  similarity %.3f\n", name, len([]rune(text)), Jaccard(text, expected))
	}

	if c.ProbeRender && !c.Render {
		return c.probeRender(deps, flags, page.Text)
	}
	return nil
}

// probeRender fetches the page again through a browser and reports
// whether the cluster extractor finds substantially more text there.
func (c *CompareCmd) probeRender(deps *Dependencies, flags FetchFlags, staticHTML string) error {
	flags.Render = true
	flags.Cache = false
	p, closePipeline, err := deps.BuildPipeline(flags)
	if err != nil {
		return err
	}
	defer closePipeline()
	p.Tidier = gohtml.NewTidier(gohtml.WithIndent(false))

	page, err := p.Extract(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	ext, err := NewExtractor("cluster", c.Blur, deps.Logger)
	if err != nil {
		return err
	}
	answer := "no"
	if crawl.RenderingAddsText(staticHTML, page.Text, ext) {
		answer = "yes"
	}
	fmt.Fprintf(deps.Stdout, "rendering adds text: %s\n", answer)
	return nil
}

// Jaccard returns the Jaccard similarity of the lower-cased word sets of
// a and b. Two empty texts are identical.
func Jaccard(a, b string) float64 {
	setA, setB := wordSet(a), wordSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	var common int
	for w := range setA {
		if setB[w] {
			common++
		}
	}
	return float64(common) / float64(len(setA)+len(setB)-common)
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
