// Package render converts a chapter source file (HTML, Markdown or plain
// text) into sanitized inner HTML for the page template.
package render

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	xhtml "golang.org/x/net/html"

	"git.home.luguber.info/inful/bookbinder/internal/frontmatter"
)

// Renderer dispatches on a source file's extension and post-processes the
// result. The zero value has no Markdown capability; Markdown chapters then
// fail with ErrMarkdownUnavailable.
type Renderer struct {
	Markdown Markdown
}

// New returns a Renderer with the goldmark Markdown implementation wired in.
func New() *Renderer {
	return &Renderer{Markdown: NewGoldmark()}
}

// Render converts one chapter's raw source into inner page HTML. The
// extension of path selects the conversion; title is injected as an <h1>
// when the converted markup has none of its own.
func (r *Renderer) Render(path, title string, raw []byte) (string, error) {
	var inner string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		inner = ExtractBodyInner(string(raw))
	case ".md", ".markdown":
		_, body, err := frontmatter.Split(raw)
		if err != nil {
			// Malformed front matter renders as content rather than
			// failing the build.
			body = raw
		}
		inner, err = r.RenderMarkdown(body)
		if err != nil {
			return "", err
		}
	default:
		inner = "<pre>" + html.EscapeString(string(raw)) + "</pre>"
	}

	if hasTopHeading(inner) {
		return inner, nil
	}
	return "<h1>" + html.EscapeString(title) + "</h1>\n" + inner, nil
}

// RenderMarkdown converts Markdown via the injected capability.
func (r *Renderer) RenderMarkdown(src []byte) (string, error) {
	if r.Markdown == nil {
		return "", fmt.Errorf("%w: a chapter uses Markdown but no renderer is configured; convert the chapter to HTML or enable the built-in goldmark renderer", ErrMarkdownUnavailable)
	}
	return r.Markdown.Render(src)
}

// ExtractBodyInner returns the markup between the first <body...> tag and
// the last </body> of a full HTML document, so complete documents can be
// embedded in the site chrome. Input without both markers is returned as-is.
// Matching is case-insensitive and positional on purpose: the document is
// not parsed or rewritten.
func ExtractBodyInner(doc string) string {
	lower := strings.ToLower(doc)

	open := -1
	for i := 0; ; {
		idx := strings.Index(lower[i:], "<body")
		if idx < 0 {
			break
		}
		at := i + idx
		after := at + len("<body")
		if after >= len(lower) {
			break
		}
		if c := lower[after]; c == '>' || c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '/' {
			open = at
			break
		}
		i = after
	}
	if open < 0 {
		return strings.TrimSpace(doc)
	}

	start := strings.IndexByte(doc[open:], '>')
	if start < 0 {
		return strings.TrimSpace(doc)
	}
	start += open + 1

	end := strings.LastIndex(lower, "</body")
	if end < start {
		return strings.TrimSpace(doc)
	}

	return strings.TrimSpace(doc[start:end])
}

// hasTopHeading reports whether the markup contains an <h1> element.
// Author-supplied headings are left alone so titles are not duplicated.
func hasTopHeading(fragment string) bool {
	z := xhtml.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return false
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "h1" {
				return true
			}
		}
	}
}
