// Package cluster implements main-content extraction by DOM-depth text
// clustering. Text runs are grouped by a blurred structural path and the
// group with the most text is returned as the article. No tree is built;
// the document is consumed as a stream of tokenizer events.
package cluster

import (
	"log/slog"
	"strings"

	"github.com/fwojciec/webarticle"
)

// Ensure Extractor implements webarticle.Extractor at compile time.
var _ webarticle.Extractor = (*Extractor)(nil)

// Extractor extracts the main text of a document by clustering text runs.
// Each call uses fresh state, so an Extractor is safe for concurrent use.
type Extractor struct {
	blur   int
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBlur sets the number of path levels grouped together.
// Defaults to DefaultBlur.
func WithBlur(n int) Option {
	return func(e *Extractor) {
		e.blur = n
	}
}

// WithLogger sets a logger receiving per-document clustering stats at
// debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		blur:   DefaultBlur,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the document title and main text of rawHTML. Malformed
// or empty input yields a possibly empty result, never an error; only a
// negative blur is rejected.
func (e *Extractor) Extract(rawHTML string) (*webarticle.ExtractResult, error) {
	agg, err := NewAggregator(e.blur)
	if err != nil {
		return nil, err
	}

	var title titleCapture
	for ev := range Events(strings.NewReader(rawHTML)) {
		title.handle(ev)
		agg.Handle(ev)
	}

	text := agg.Plaintext()
	st := agg.Stats()
	e.logger.Debug("cluster",
		"runs", st.Runs,
		"buckets", st.Buckets,
		"ignored", st.IgnoredRegions,
		"footerClasses", st.FooterClasses,
		"chars", len(text),
	)

	return &webarticle.ExtractResult{
		Title: Normalize(title.String()),
		Text:  text,
	}, nil
}

// ExtractMainText returns the main text of html, grouping text runs that
// share all but the last blur path elements. Returns EINVALID for a
// negative blur.
func ExtractMainText(html string, blur int) (string, error) {
	res, err := NewExtractor(WithBlur(blur)).Extract(html)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// titleCapture collects the text of the first <title> element.
type titleCapture struct {
	b      strings.Builder
	inside bool
	done   bool
}

func (c *titleCapture) handle(ev Event) {
	if c.done {
		return
	}
	switch {
	case ev.Kind == EventTagOpen && ev.Tag == "title":
		c.inside = true
	case ev.Kind == EventTagClose && ev.Tag == "title":
		c.done = c.inside
		c.inside = false
	case c.inside && ev.Kind == EventText:
		c.b.WriteString(ev.Data)
	case c.inside && ev.Kind == EventCharRef:
		c.b.WriteString(decodeName(ev.Data))
	}
}

func (c *titleCapture) String() string {
	return c.b.String()
}
