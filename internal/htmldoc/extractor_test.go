package htmldoc

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBase(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)

	return u
}

func TestExtractBasicFields(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
	<title>  Running Shoes  Guide </title>
	<meta name="description" content="The complete guide to running shoes.">
	<meta property="og:title" content="Running Shoes Guide">
	<meta property="og:description" content="Everything about running shoes.">
	<meta property="og:image" content="https://example.com/cover.webp">
</head>
<body>
	<h1>Running Shoes</h1>
	<h2>Choosing a pair</h2>
	<h3>Cushioning</h3>
	<p>Start with your gait. A good pair of running shoes lasts 500 miles.</p>
	<p>Second paragraph.</p>
</body>
</html>`

	doc, err := Extract(page, mustBase(t, "https://example.com/guide"))
	require.NoError(t, err)

	assert.Equal(t, "Running Shoes Guide", doc.Title)
	assert.Equal(t, "The complete guide to running shoes.", doc.MetaDescription)
	assert.Equal(t, "Running Shoes Guide", doc.OpenGraph["og:title"])
	assert.Equal(t, "Everything about running shoes.", doc.OpenGraph["og:description"])
	assert.Equal(t, "https://example.com/cover.webp", doc.OpenGraph["og:image"])

	require.Len(t, doc.Headings, 3)
	assert.Equal(t, Heading{Level: 1, Text: "Running Shoes"}, doc.Headings[0])
	assert.Equal(t, Heading{Level: 2, Text: "Choosing a pair"}, doc.Headings[1])
	assert.Equal(t, Heading{Level: 3, Text: "Cushioning"}, doc.Headings[2])

	assert.Equal(t, "Start with your gait. A good pair of running shoes lasts 500 miles.", doc.FirstParagraph)
	assert.Contains(t, doc.BodyText, "Start with your gait")
	assert.Positive(t, doc.WordCount)
}

func TestExtractClassifiesImageFormats(t *testing.T) {
	page := `<html><body>
	<img src="/a.webp" alt="a">
	<img src="/b.avif" alt="b">
	<img src="/icon.svg" alt="">
	<img src="/c.jp2">
	<img src="/old.jpg?w=200" alt="old">
	<img src="/older.PNG" alt="older">
	<img src="/mystery" alt="m">
	<img src="">
</body></html>`

	doc, err := Extract(page, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	// the src-less image is dropped entirely
	require.Len(t, doc.Images, 7)

	assert.Equal(t, FormatNextGen, doc.Images[0].Format)
	assert.Equal(t, FormatNextGen, doc.Images[1].Format)
	assert.Equal(t, FormatNextGen, doc.Images[2].Format)
	assert.Equal(t, FormatNextGen, doc.Images[3].Format)
	assert.Equal(t, FormatLegacy, doc.Images[4].Format)
	assert.Equal(t, FormatLegacy, doc.Images[5].Format)
	assert.Equal(t, FormatUnknown, doc.Images[6].Format)

	assert.Equal(t, "a", doc.Images[0].Alt)
	assert.Empty(t, doc.Images[2].Alt)
}

func TestExtractFiltersDangerousLinks(t *testing.T) {
	page := `<html><body>
	<a href="/about">About</a>
	<a href="https://example.com/contact">Contact</a>
	<a href="https://blog.example.com/post">Blog</a>
	<a href="https://other.org/page">Elsewhere</a>
	<a href="javascript:alert(1)">Evil</a>
	<a href="DATA:text/html,x">Evil2</a>
	<a href="vbscript:msgbox(1)">Evil3</a>
</body></html>`

	doc, err := Extract(page, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	require.Len(t, doc.Links, 4)
	assert.True(t, doc.Links[0].Internal)
	assert.True(t, doc.Links[1].Internal)
	// subdomain of the same registrable domain counts as internal
	assert.True(t, doc.Links[2].Internal)
	assert.False(t, doc.Links[3].Internal)
}

func TestExtractScriptTextNeverReachesBodyText(t *testing.T) {
	page := `<html><head>
	<style>body { color: red }</style>
	<script>var secretMarker = "SCRIPTONLY";</script>
	<script type="application/ld+json">{"@type":"Article"}</script>
</head><body>
	<p>Visible words here.</p>
	<noscript>no script fallback</noscript>
</body></html>`

	doc, err := Extract(page, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	assert.NotContains(t, doc.BodyText, "SCRIPTONLY")
	assert.NotContains(t, doc.BodyText, "color: red")
	assert.NotContains(t, doc.BodyText, "no script fallback")
	assert.Contains(t, doc.BodyText, "Visible words here.")

	require.Len(t, doc.ScriptBlocks, 2)
	assert.Contains(t, doc.ScriptBlocks[0].Text, "secretMarker")
	assert.True(t, doc.HasJSONLD())
}

func TestExtractDegradesOnMalformedHTML(t *testing.T) {
	page := `<html><body><h1>Unclosed heading<p>text<img src="x.webp">`

	doc, err := Extract(page, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	require.Len(t, doc.Headings, 1)
	assert.Equal(t, 1, doc.Headings[0].Level)
	assert.Len(t, doc.Images, 1)
}

func TestExtractDropsTagLeftOpenAtEOF(t *testing.T) {
	// HTML5 parsing discards a tag still open when input ends
	page := `<html><body><p>text</p><img src="x.webp"`

	doc, err := Extract(page, mustBase(t, "https://example.com"))
	require.NoError(t, err)

	assert.Empty(t, doc.Images)
	assert.Contains(t, doc.BodyText, "text")
}

func TestExtractEmptyInput(t *testing.T) {
	doc, err := Extract("", mustBase(t, "https://example.com"))
	require.NoError(t, err)

	assert.Empty(t, doc.Title)
	assert.Empty(t, doc.Headings)
	assert.Empty(t, doc.Images)
	assert.Zero(t, doc.WordCount)
	assert.False(t, doc.HasJSONLD())
}
