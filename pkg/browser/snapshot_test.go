package browser

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title>Bodysuits | Example Store</title>
<meta name="description" content="Shop bodysuits and lingerie.">
<style>.hidden { display: none; }</style>
<script>window.dataLayer = [];</script>
</head>
<body onload="init()">
<!-- promo banner -->
<div class="product-grid-item-column" data-product-id="42">
  <a class="product-grid-item" href="/products/emerson-bodysuit">
    <span class="product-grid-item__title" style="color:red">Emerson Bodysuit</span>
  </a>
</div>
<form action="/cart/add" method="post">
  <input name="customer[email]" type="email" placeholder="Email">
  <button id="AddToCart" type="submit">Add to cart</button>
</form>
</body>
</html>`

func TestCleanPage(t *testing.T) {
	snapshot, err := CleanPage(samplePage, 0)
	require.NoError(t, err)

	assert.Equal(t, "Bodysuits | Example Store", snapshot.Title)
	assert.Equal(t, "Shop bodysuits and lingerie.", snapshot.Description)
	assert.False(t, snapshot.Truncated)

	// Noise is stripped
	assert.NotContains(t, snapshot.HTML, "script")
	assert.NotContains(t, snapshot.HTML, "dataLayer")
	assert.NotContains(t, snapshot.HTML, "display: none")
	assert.NotContains(t, snapshot.HTML, "promo banner")

	// Locator-relevant attributes survive
	assert.Contains(t, snapshot.HTML, `class="product-grid-item__title"`)
	assert.Contains(t, snapshot.HTML, `data-product-id="42"`)
	assert.Contains(t, snapshot.HTML, `name="customer[email]"`)
	assert.Contains(t, snapshot.HTML, `id="AddToCart"`)
	assert.Contains(t, snapshot.HTML, `href="/products/emerson-bodysuit"`)
	assert.Contains(t, snapshot.HTML, "Emerson Bodysuit")

	// Presentation attributes do not
	assert.NotContains(t, snapshot.HTML, "style=")
	assert.NotContains(t, snapshot.HTML, "onload")
}

func TestCleanPage_Truncation(t *testing.T) {
	page := "<html><body><p>" + strings.Repeat("lingerie ", 1000) + "</p></body></html>"

	snapshot, err := CleanPage(page, 100)
	require.NoError(t, err)
	assert.True(t, snapshot.Truncated)
	assert.LessOrEqual(t, len(snapshot.HTML), 200)
}

func TestCleanPage_TruncatesOnRuneBoundary(t *testing.T) {
	// Product copy carries accented characters; the cut must not split
	// one in half. Sweeping the budget guarantees some cut lands inside
	// a two-byte rune.
	page := "<html><body><p>" + strings.Repeat("é", 500) + "</p></body></html>"

	for maxLength := 30; maxLength <= 60; maxLength++ {
		snapshot, err := CleanPage(page, maxLength)
		require.NoError(t, err)
		assert.True(t, snapshot.Truncated, "maxLength %d", maxLength)
		assert.True(t, utf8.ValidString(snapshot.HTML), "maxLength %d", maxLength)
	}
}

func TestCleanPage_MalformedHTML(t *testing.T) {
	// html.Parse repairs rather than rejects bad markup
	snapshot, err := CleanPage("<div><span>unclosed", 0)
	require.NoError(t, err)
	assert.Contains(t, snapshot.HTML, "unclosed")
}

func TestSnapshotRender(t *testing.T) {
	snapshot := &PageSnapshot{
		Title:       "Checkout",
		Description: "Secure checkout",
		HTML:        "<div>content</div>",
		Truncated:   true,
	}

	rendered := snapshot.Render()
	assert.Contains(t, rendered, "<!-- title: Checkout -->")
	assert.Contains(t, rendered, "<!-- description: Secure checkout -->")
	assert.Contains(t, rendered, "<!-- snapshot truncated -->")
	assert.Contains(t, rendered, "<div>content</div>")
}
