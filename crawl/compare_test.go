package crawl_test

import (
	"testing"

	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/crawl"
	"github.com/fwojciec/webarticle/mock"
	"github.com/stretchr/testify/assert"
)

func TestRenderingAddsText(t *testing.T) {
	t.Parallel()

	t.Run("returns true when rendered text is more than 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				// Return different lengths based on input
				if html == "static-html" {
					return &webarticle.ExtractResult{
						Text: "short content", // 13 chars
					}, nil
				}
				return &webarticle.ExtractResult{
					Text: "much longer text from the rendered page which is bigger", // >50% longer
				}, nil
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when rendered text is >50% longer")
	})

	t.Run("returns false when text lengths are similar", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				if html == "static-html" {
					return &webarticle.ExtractResult{
						Text: "some content here", // 17 chars
					}, nil
				}
				return &webarticle.ExtractResult{
					Text: "similar size text", // 17 chars (equal)
				}, nil
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.False(t, result, "should return false when text is similar length")
	})

	t.Run("returns false when rendered text is only 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				if html == "static-html" {
					return &webarticle.ExtractResult{
						Text: "0123456789", // 10 chars
					}, nil
				}
				return &webarticle.ExtractResult{
					Text: "012345678901234", // 15 chars (exactly 50% longer)
				}, nil
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.False(t, result, "should return false when rendered text is exactly 50% longer (boundary)")
	})

	t.Run("returns true when static extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				if html == "static-html" {
					return nil, webarticle.Errorf(webarticle.EINTERNAL, "extraction failed")
				}
				return &webarticle.ExtractResult{
					Text: "rendered text",
				}, nil
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when static extraction fails")
	})

	t.Run("returns true when rendered extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				if html == "static-html" {
					return &webarticle.ExtractResult{
						Text: "static text",
					}, nil
				}
				return nil, webarticle.Errorf(webarticle.EINTERNAL, "extraction failed")
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when rendered extraction fails")
	})

	t.Run("returns true when static text is empty", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*webarticle.ExtractResult, error) {
				if html == "static-html" {
					return &webarticle.ExtractResult{
						Text: "", // Empty
					}, nil
				}
				return &webarticle.ExtractResult{
					Text: "rendered has text",
				}, nil
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when static text is empty but rendered has text")
	})

	t.Run("returns true when both extractions fail", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*webarticle.ExtractResult, error) {
				return nil, webarticle.Errorf(webarticle.EINTERNAL, "extraction failed")
			},
		}

		result := crawl.RenderingAddsText("static-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when both extractions fail")
	})
}
