package crawl

import "github.com/fwojciec/webarticle"

// RenderingAddsText compares the text extracted from statically fetched
// HTML with the text extracted after browser rendering. It reports true
// when the rendered text is more than 50% longer, or when either
// extraction fails.
func RenderingAddsText(staticHTML, renderedHTML string, extractor webarticle.Extractor) bool {
	static, err := extractor.Extract(staticHTML)
	if err != nil {
		return true
	}

	rendered, err := extractor.Extract(renderedHTML)
	if err != nil {
		return true
	}

	staticLen := len([]rune(static.Text))
	renderedLen := len([]rune(rendered.Text))

	if staticLen == 0 && renderedLen > 0 {
		return true
	}

	return float64(renderedLen) > float64(staticLen)*1.5
}
