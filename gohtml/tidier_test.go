package gohtml_test

import (
	"testing"

	"github.com/fwojciec/webarticle/gohtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTidier_Tidy(t *testing.T) {
	t.Parallel()

	t.Run("closes unbalanced elements", func(t *testing.T) {
		t.Parallel()

		out, err := gohtml.NewTidier(gohtml.WithIndent(false)).Tidy("<div><p>one<p>two")

		require.NoError(t, err)
		assert.Equal(t, "<html><head></head><body><div><p>one</p><p>two</p></div></body></html>", out)
	})

	t.Run("drops stray end tags", func(t *testing.T) {
		t.Parallel()

		out, err := gohtml.NewTidier(gohtml.WithIndent(false)).Tidy("<p>text</span></p>")

		require.NoError(t, err)
		assert.Equal(t, "<html><head></head><body><p>text</p></body></html>", out)
	})

	t.Run("indents by default", func(t *testing.T) {
		t.Parallel()

		out, err := gohtml.NewTidier().Tidy("<div><p>text</p></div>")

		require.NoError(t, err)
		assert.Contains(t, out, "\n")
		assert.Contains(t, out, "text")
		assert.Contains(t, out, "</div>")
	})
}
