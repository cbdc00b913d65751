package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrMarkdownUnavailable indicates a chapter needs Markdown rendering but no
// renderer is wired in. This is a hard failure, never a silent downgrade.
var ErrMarkdownUnavailable = errors.New("markdown rendering is not available")

// Markdown converts Markdown source to HTML. It is an injected capability so
// the renderer can be tested without the real implementation, and so the
// unavailable case stays expressible.
type Markdown interface {
	Render(src []byte) (string, error)
}

// Goldmark is the production Markdown implementation. Tables, definition
// lists and smart typography are enabled to match what chapter authors
// expect from an "extras" flavored renderer.
type Goldmark struct {
	md goldmark.Markdown
}

func NewGoldmark() *Goldmark {
	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.DefinitionList,
			extension.Footnote,
			extension.Typographer,
		),
	)}
}

func (g *Goldmark) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
