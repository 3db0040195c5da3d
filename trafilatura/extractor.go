// Package trafilatura adapts github.com/markusmobius/go-trafilatura to
// webarticle.Extractor.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/webarticle"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements webarticle.Extractor at compile time.
var _ webarticle.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor with fallback extraction enabled.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
			ExcludeTables:  false,
		},
	}
}

// Extract processes HTML and returns the main content as plain text.
func (e *Extractor) Extract(rawHTML string) (*webarticle.ExtractResult, error) {
	if rawHTML == "" {
		return nil, webarticle.Errorf(webarticle.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	return &webarticle.ExtractResult{
		Title: strings.TrimSpace(result.Metadata.Title),
		Text:  strings.Join(strings.Fields(result.ContentText), " "),
	}, nil
}
