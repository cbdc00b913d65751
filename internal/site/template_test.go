package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPageEscapesUserText(t *testing.T) {
	out, err := RenderPage(Page{
		SiteTitle: `Tom & "Jerry"`,
		PageTitle: "<script>",
		PageID:    "01-x",
		Content:   "<p>trusted</p>",
	}, Chrome{})
	require.NoError(t, err)

	assert.Contains(t, out, "&lt;script&gt; · Tom &amp; &#34;Jerry&#34;")
	assert.NotContains(t, out, "<script> ·")
	// Trusted inner HTML passes through untouched.
	assert.Contains(t, out, "<p>trusted</p>")
}

func TestRenderPageOptionalMeta(t *testing.T) {
	out, err := RenderPage(Page{SiteTitle: "S", PageID: "home"}, Chrome{})
	require.NoError(t, err)
	assert.NotContains(t, out, `name="description"`)
	assert.NotContains(t, out, `name="author"`)
	assert.NotContains(t, out, `rel="canonical"`)
	assert.NotContains(t, out, `rel="icon"`)

	out, err = RenderPage(Page{
		SiteTitle:   "S",
		PageID:      "home",
		Author:      "A. Writer",
		Description: "About the book",
		Favicon:     "favicon.png",
	}, Chrome{})
	require.NoError(t, err)
	assert.Contains(t, out, `<meta name="description" content="About the book" />`)
	assert.Contains(t, out, `<meta name="author" content="A. Writer" />`)
	assert.Contains(t, out, `<link rel="icon" href="./favicon.png" />`)
}

func TestRenderPageCanonicalAndOpenGraph(t *testing.T) {
	out, err := RenderPage(Page{
		SiteTitle: "S",
		PageTitle: "Ch",
		PageID:    "01-ch",
		BaseURL:   "https://example.com",
		Image:     "assets/cover.jpg",
	}, Chrome{})
	require.NoError(t, err)

	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/01-ch.html" />`)
	assert.Contains(t, out, `<meta property="og:url" content="https://example.com/01-ch.html" />`)
	assert.Contains(t, out, `<meta property="og:image" content="https://example.com/assets/cover.jpg" />`)
	assert.Contains(t, out, `<meta name="twitter:card" content="summary_large_image" />`)
}

func TestRenderPageNoBaseURLNoSocialTags(t *testing.T) {
	out, err := RenderPage(Page{SiteTitle: "S", PageID: "01-ch", Image: "assets/cover.jpg"}, Chrome{})
	require.NoError(t, err)
	assert.NotContains(t, out, "og:")
	assert.NotContains(t, out, "twitter:")
}

func TestRenderPageEmbedsChrome(t *testing.T) {
	out, err := RenderPage(Page{SiteTitle: "S", PageID: "home"}, Chrome{
		CSS: "body{--marker:1}",
		JS:  "/*js-marker*/",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<style>body{--marker:1}</style>")
	assert.Contains(t, out, "<script>/*js-marker*/</script>")
}

func TestRenderPageLanguage(t *testing.T) {
	out, err := RenderPage(Page{SiteTitle: "S", PageID: "home", Language: "sv"}, Chrome{})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `<html lang="sv"`), out[:100])
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "", CanonicalURL("", "home"))
	assert.Equal(t, "https://e.com/", CanonicalURL("https://e.com", "home"))
	assert.Equal(t, "https://e.com/toc.html", CanonicalURL("https://e.com", "toc"))
	assert.Equal(t, "https://e.com/01-x.html", CanonicalURL("https://e.com", "01-x"))
	assert.Equal(t, "https://e.com/404.html", CanonicalURL("https://e.com", "404"))
}

func TestDefaultChromeNonEmpty(t *testing.T) {
	chrome := DefaultChrome()
	assert.NotEmpty(t, chrome.CSS)
	assert.NotEmpty(t, chrome.JS)
}
