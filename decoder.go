package webarticle

// Decoder turns a raw payload into Unicode text.
type Decoder interface {
	// Decode converts body to a UTF-8 string. When label is not empty it
	// names the encoding to use and detection is skipped; an unknown label
	// returns EINVALID. The returned encoding is the canonical name of the
	// encoding that was applied.
	Decode(body []byte, contentType, label string) (text string, encoding string, err error)
}

// Tidier repairs malformed markup into a well-formed document.
type Tidier interface {
	Tidy(html string) (string, error)
}
