// Package frontmatter splits an optional leading YAML front matter block
// from a Markdown document.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta holds the front matter fields bookbinder understands. Unknown keys
// are ignored.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var delimiter = []byte("---")

// Split separates a leading front matter block from body content. Documents
// without a front matter fence are returned unchanged with a zero Meta.
// A fence that never closes, or closes over invalid YAML, is reported as an
// error with the original document intact so callers can fall back to
// treating the whole input as content.
func Split(src []byte) (Meta, []byte, error) {
	var meta Meta

	rest, ok := cutDelimiterLine(src)
	if !ok {
		return meta, src, nil
	}

	// Find the closing fence at the start of a line. "..." also terminates
	// a YAML document.
	consumed := 0
	for {
		search := rest[consumed:]
		after, ok := cutDelimiterLine(search)
		if !ok {
			after, ok = cutPrefixLine(search, []byte("..."))
		}
		if ok {
			if err := yaml.Unmarshal(rest[:consumed], &meta); err != nil {
				return Meta{}, src, fmt.Errorf("front matter: %w", err)
			}
			return meta, after, nil
		}
		idx := bytes.IndexByte(search, '\n')
		if idx < 0 {
			return meta, src, fmt.Errorf("front matter: missing closing delimiter")
		}
		consumed += idx + 1
	}
}

// cutDelimiterLine strips a line consisting solely of "---" (plus optional
// trailing whitespace) from the start of b.
func cutDelimiterLine(b []byte) ([]byte, bool) {
	return cutPrefixLine(b, delimiter)
}

func cutPrefixLine(b, prefix []byte) ([]byte, bool) {
	if !bytes.HasPrefix(b, prefix) {
		return nil, false
	}
	rest := b[len(prefix):]
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		if len(bytes.TrimSpace(rest)) == 0 {
			return nil, true
		}
		return nil, false
	}
	if len(bytes.TrimSpace(rest[:idx])) != 0 {
		return nil, false
	}
	return rest[idx+1:], true
}
