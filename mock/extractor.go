package mock

import "github.com/fwojciec/webarticle"

var _ webarticle.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webarticle.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webarticle.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webarticle.ExtractResult, error) {
	return e.ExtractFn(html)
}
