// Package book resolves declared chapter entries into concrete Chapter
// records: titles, slugs, output names and modification times.
package book

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/frontmatter"
)

var (
	// ErrMissingSource indicates a declared chapter source file does not exist.
	ErrMissingSource = errors.New("chapter source not found")
	// ErrSlugCollision indicates two chapters resolved to the same output file.
	ErrSlugCollision = errors.New("duplicate chapter slug")
)

// Chapter is one resolved, immutable unit of book content.
type Chapter struct {
	Index       int    // 1-based position in declared order
	Title       string
	Source      string // absolute path to the source file
	Slug        string
	OutName     string // output file name, "<slug>.html"
	LastMod     time.Time
	Description string // from Markdown front matter, may be empty
}

// ModTimer supplies last-modified timestamps for chapter sources.
type ModTimer interface {
	ModTime(path string) (time.Time, error)
}

// FileModTimer reads modification times from the file system.
type FileModTimer struct{}

func (FileModTimer) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC(), nil
}

// Resolve turns chapter specifications into Chapter records in declared
// order. Source paths are resolved relative to root (the configuration
// file's directory). The resolved order defines navigation, sitemap and
// feed order.
func Resolve(specs []config.ChapterSpec, root string, times ModTimer) ([]Chapter, error) {
	if times == nil {
		times = FileModTimer{}
	}

	chapters := make([]Chapter, 0, len(specs))

	for i, spec := range specs {
		index := i + 1

		source := spec.Source
		if !filepath.IsAbs(source) {
			source = filepath.Join(root, source)
		}
		if _, err := os.Stat(source); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, source)
		}

		title := spec.Title
		description := ""
		if isMarkdown(source) {
			if meta, ok := readFrontMatter(source); ok {
				if title == "" {
					title = meta.Title
				}
				description = meta.Description
			}
		}
		if title == "" {
			title = fmt.Sprintf("Chapter %d", index)
		}

		slug := Slugify(fmt.Sprintf("%02d-%s", index, title))

		lastMod, err := times.ModTime(source)
		if err != nil {
			return nil, fmt.Errorf("stat chapter source %s: %w", source, err)
		}

		chapters = append(chapters, Chapter{
			Index:       index,
			Title:       title,
			Source:      source,
			Slug:        slug,
			OutName:     slug + ".html",
			LastMod:     lastMod.UTC(),
			Description: description,
		})
	}

	if err := ensureUniqueSlugs(chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// ensureUniqueSlugs rejects chapter lists whose slugs would overwrite each
// other's output files. The index prefix makes Resolve's own slugs distinct
// by construction; the check guards Chapter values built elsewhere.
func ensureUniqueSlugs(chapters []Chapter) error {
	seen := make(map[string]string, len(chapters))
	for _, ch := range chapters {
		if other, dup := seen[ch.Slug]; dup {
			return fmt.Errorf("%w: %q and %q both resolve to %s", ErrSlugCollision, other, ch.Title, ch.OutName)
		}
		seen[ch.Slug] = ch.Title
	}
	return nil
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func readFrontMatter(path string) (frontmatter.Meta, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return frontmatter.Meta{}, false
	}
	meta, _, err := frontmatter.Split(raw)
	if err != nil {
		slog.Debug("Ignoring malformed front matter", "source", path, "error", err)
		return frontmatter.Meta{}, false
	}
	return meta, true
}
