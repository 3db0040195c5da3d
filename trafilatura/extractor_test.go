package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/webarticle"
	"github.com/fwojciec/webarticle/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements webarticle.Extractor at compile time.
var _ webarticle.Extractor = (*trafilatura.Extractor)(nil)

const newsArticle = `<!DOCTYPE html>
<html>
<head>
<title>City council approves new bike lanes | The Daily Ledger</title>
<meta property="og:title" content="City council approves new bike lanes">
<meta name="author" content="Dana Reyes">
</head>
<body>
<header>
<nav class="site-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/local">Local</a></li>
<li><a href="/sports">Sports</a></li>
</ul>
</nav>
</header>
<main>
<article>
<h1>City council approves new bike lanes</h1>
<p class="byline">By Dana Reyes</p>
<p>The city council voted seven to two on Tuesday to build protected bike lanes along the length of Harbor Street.</p>
<p>Construction is expected to start in the spring and to take about eighteen months, according to the transportation department.</p>
<p>Residents who spoke at the meeting were divided, with several shop owners worried about the loss of parking spaces.</p>
</article>
<aside class="related">
<h3>Related stories</h3>
<ul><li><a href="/a">Bus fares rise again</a></li></ul>
</aside>
</main>
<footer>
<p>Copyright 2024 The Daily Ledger</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(newsArticle)

		require.NoError(t, err)
		assert.Contains(t, result.Title, "City council approves new bike lanes")
	})

	t.Run("extracts article paragraphs", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(newsArticle)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "voted seven to two on Tuesday")
		assert.Contains(t, result.Text, "about eighteen months")
		assert.Contains(t, result.Text, "loss of parking spaces")
	})

	t.Run("drops the footer", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(newsArticle)

		require.NoError(t, err)
		assert.NotContains(t, result.Text, "Copyright 2024 The Daily Ledger")
	})

	t.Run("returns plain text with collapsed whitespace", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(newsArticle)

		require.NoError(t, err)
		assert.NotContains(t, result.Text, "<p>")
		assert.NotContains(t, result.Text, "\n")
		assert.NotContains(t, result.Text, "  ")
	})

	t.Run("extracts a blog post behind a cookie banner", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Notes from a week of sourdough</title></head>
<body>
<div class="cookie-banner">We use cookies to improve your experience. Accept all?</div>
<div class="post">
<h1>Notes from a week of sourdough</h1>
<p>My starter finally doubled on the fourth day, after I moved the jar to the top of the fridge where it stays warm.</p>
<p>The first loaf was dense, but the second one had an open crumb and a crust that crackled as it cooled on the rack.</p>
<blockquote>Feed it twice a day and be patient.</blockquote>
</div>
<div class="share">
<a href="#">Share on social</a>
<a href="#">Email this post</a>
</div>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "starter finally doubled")
		assert.Contains(t, result.Text, "open crumb")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, webarticle.EINVALID, webarticle.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Simple content")
	})
}
