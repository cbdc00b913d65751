package site

import (
	_ "embed"
	"fmt"
	"html"
	"strings"
	"text/template"
)

//go:embed assets/book.css
var defaultCSS string

//go:embed assets/book.js
var defaultJS string

// Chrome carries the shared presentation blobs embedded verbatim into every
// page. They are injected rather than read from globals so RenderPage stays
// a pure function.
type Chrome struct {
	CSS string
	JS  string
}

// DefaultChrome returns the stylesheet and behavior script shipped with
// bookbinder.
func DefaultChrome() Chrome {
	return Chrome{CSS: defaultCSS, JS: defaultJS}
}

// Page is the input to RenderPage. Content and Nav are trusted HTML
// produced by the renderer; every other string is escaped before insertion.
type Page struct {
	SiteTitle string
	PageTitle string
	PageID    string
	Content   string
	Nav       string

	Language    string
	Author      string
	Description string
	BaseURL     string // enables canonical + Open Graph + Twitter tags
	Favicon     string // file name at the output root
	Image       string // social preview image, relative href
}

// pageView is the escaped form fed to the template.
type pageView struct {
	Lang        string
	PageID      string
	SiteTitle   string
	PageTitle   string
	FullTitle   string
	Description string
	Author      string
	Canonical   string
	ImageURL    string
	Favicon     string
	CSS         string
	JS          string
	Content     string
	Nav         string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="{{.Lang}}" data-page-id="{{.PageID}}">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.FullTitle}}</title>
{{- if .Description}}
  <meta name="description" content="{{.Description}}" />
{{- end}}
{{- if .Author}}
  <meta name="author" content="{{.Author}}" />
{{- end}}
{{- if .Canonical}}
  <link rel="canonical" href="{{.Canonical}}" />
  <meta property="og:type" content="website" />
  <meta property="og:title" content="{{.FullTitle}}" />
{{- if .Description}}
  <meta property="og:description" content="{{.Description}}" />
{{- end}}
  <meta property="og:url" content="{{.Canonical}}" />
{{- if .ImageURL}}
  <meta property="og:image" content="{{.ImageURL}}" />
  <meta name="twitter:card" content="summary_large_image" />
  <meta name="twitter:image" content="{{.ImageURL}}" />
{{- else}}
  <meta name="twitter:card" content="summary" />
{{- end}}
  <meta name="twitter:title" content="{{.FullTitle}}" />
{{- end}}
{{- if .Favicon}}
  <link rel="icon" href="./{{.Favicon}}" />
{{- end}}
  <link rel="manifest" href="./manifest.json" />
  <style>{{.CSS}}</style>
</head>
<body>
  <header class="sitebar">
    <div class="sitebar-inner">
      <div class="brand"><a href="./index.html">{{.SiteTitle}}</a>
      <span class="brand-where">{{.PageTitle}}</span>
      </div>
      <div class="spacer"></div>
      <div class="navbtns">
        <a class="btn" data-nav="toc" href="./toc.html" title="Table of contents (t)">TOC</a>
        <select id="font-picker" title="Font">
          <option value="serif">Serif</option>
          <option value="sans">Sans</option>
        </select>
        <button type="button" data-action="pageup" title="Page up (PageUp or Shift+Space)">&#9650;</button>
        <button type="button" data-action="pagedown" title="Page down (Space / PageDown)">&#9660;</button>
      </div>
    </div>
  </header>

  <main>
    <article class="reader" data-page-id="{{.PageID}}">
      {{.Content}}
    </article>
    {{.Nav}}
  </main>

  <script>{{.JS}}</script>
</body>
</html>
`))

// RenderPage wraps inner content and navigation into a complete HTML
// document. Deterministic; no file or network access.
func RenderPage(p Page, chrome Chrome) (string, error) {
	fullTitle := p.SiteTitle
	if p.PageTitle != "" {
		fullTitle = p.PageTitle + " · " + p.SiteTitle
	}

	lang := p.Language
	if lang == "" {
		lang = "en"
	}

	view := pageView{
		Lang:        html.EscapeString(lang),
		PageID:      html.EscapeString(p.PageID),
		SiteTitle:   html.EscapeString(p.SiteTitle),
		PageTitle:   html.EscapeString(p.PageTitle),
		FullTitle:   html.EscapeString(fullTitle),
		Description: html.EscapeString(p.Description),
		Author:      html.EscapeString(p.Author),
		Canonical:   html.EscapeString(CanonicalURL(p.BaseURL, p.PageID)),
		Favicon:     html.EscapeString(p.Favicon),
		CSS:         chrome.CSS,
		JS:          chrome.JS,
		Content:     p.Content,
		Nav:         p.Nav,
	}
	if p.BaseURL != "" && p.Image != "" {
		view.ImageURL = html.EscapeString(p.BaseURL + "/" + strings.TrimPrefix(p.Image, "./"))
	}

	var b strings.Builder
	if err := pageTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render page %s: %w", p.PageID, err)
	}
	return b.String(), nil
}

// CanonicalURL computes a page's canonical address: the site root for the
// home page, toc.html for the TOC, and {page-id}.html for everything else.
// Empty when no base URL is configured.
func CanonicalURL(baseURL, pageID string) string {
	if baseURL == "" {
		return ""
	}
	switch pageID {
	case "home":
		return baseURL + "/"
	case "toc":
		return baseURL + "/toc.html"
	default:
		return baseURL + "/" + pageID + ".html"
	}
}
