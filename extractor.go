package webarticle

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the document title, empty when the page has none.
	Title string

	// Text is the main content as plain text with no embedded markup.
	// Navigation, footers, scripts and copyright notices are removed.
	Text string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
type Extractor interface {
	// Extract processes decoded HTML and returns the main content.
	// Malformed markup degrades the result rather than failing.
	Extract(html string) (*ExtractResult, error)
}
