package mock

import "github.com/fwojciec/webarticle"

var _ webarticle.Decoder = (*Decoder)(nil)

// Decoder is a mock implementation of webarticle.Decoder.
type Decoder struct {
	DecodeFn func(body []byte, contentType, label string) (string, string, error)
}

func (d *Decoder) Decode(body []byte, contentType, label string) (string, string, error) {
	return d.DecodeFn(body, contentType, label)
}

var _ webarticle.Tidier = (*Tidier)(nil)

// Tidier is a mock implementation of webarticle.Tidier.
type Tidier struct {
	TidyFn func(html string) (string, error)
}

func (t *Tidier) Tidy(html string) (string, error) {
	return t.TidyFn(html)
}
