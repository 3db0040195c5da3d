// Package gohtml implements webarticle.Tidier with golang.org/x/net/html
// and github.com/yosssi/gohtml.
package gohtml

import (
	"bytes"
	"strings"

	"github.com/fwojciec/webarticle"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Ensure Tidier implements webarticle.Tidier at compile time.
var _ webarticle.Tidier = (*Tidier)(nil)

// Tidier repairs markup by parsing it into a tree and rendering it back.
// Unclosed elements are closed, stray end tags dropped and implied
// html/head/body elements added. The output is indented by gohtml.
type Tidier struct {
	indent bool
}

// Option configures a Tidier.
type Option func(*Tidier)

// WithIndent controls whether the rendered document is indented.
// Defaults to true.
func WithIndent(indent bool) Option {
	return func(t *Tidier) {
		t.indent = indent
	}
}

// NewTidier creates a new Tidier.
func NewTidier(opts ...Option) *Tidier {
	t := &Tidier{indent: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tidier) Tidy(s string) (string, error) {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	if !t.indent {
		return buf.String(), nil
	}
	return gohtml.Format(buf.String()), nil
}
