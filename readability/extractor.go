// Package readability adapts github.com/go-shiori/go-readability to
// webarticle.Extractor.
package readability

import (
	"strings"

	"github.com/fwojciec/webarticle"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements webarticle.Extractor at compile time.
var _ webarticle.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes HTML and returns the article text with whitespace
// collapsed to single spaces.
func (e *Extractor) Extract(rawHTML string) (*webarticle.ExtractResult, error) {
	if rawHTML == "" {
		return nil, webarticle.Errorf(webarticle.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &webarticle.ExtractResult{
		Title: strings.TrimSpace(article.Title),
		Text:  strings.Join(strings.Fields(article.TextContent), " "),
	}, nil
}
