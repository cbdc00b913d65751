// Package site assembles the output directory: pages, copied assets and
// generated artifacts, all mutually consistent on chapter slugs.
package site

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/bookbinder/internal/artifacts"
	"git.home.luguber.info/inful/bookbinder/internal/book"
	"git.home.luguber.info/inful/bookbinder/internal/config"
	"git.home.luguber.info/inful/bookbinder/internal/gitinfo"
	"git.home.luguber.info/inful/bookbinder/internal/metrics"
	"git.home.luguber.info/inful/bookbinder/internal/render"
)

// ErrMissingAsset indicates a configured asset (cover, EPUB, favicon) does
// not exist.
var ErrMissingAsset = errors.New("configured asset not found")

// Builder owns one build of a book site. It is constructed fresh per
// invocation; the output directory is cleared and rebuilt every time.
type Builder struct {
	cfg      *config.BookConfig
	root     string // directory of the configuration file
	outDir   string
	renderer *render.Renderer
	chrome   Chrome
	recorder metrics.Recorder
	now      func() time.Time
}

// Result summarizes a completed build.
type Result struct {
	OutputDir string
	Chapters  int
	Pages     int
	Artifacts int
	Duration  time.Duration
}

// NewBuilder creates a Builder for one build run. root is the directory the
// configuration file lives in; chapter sources and assets resolve against it.
func NewBuilder(cfg *config.BookConfig, root, outDir string) *Builder {
	return &Builder{
		cfg:      cfg,
		root:     root,
		outDir:   filepath.Clean(outDir),
		renderer: render.New(),
		chrome:   DefaultChrome(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// SetRecorder installs a metrics recorder. The default is a no-op.
func (b *Builder) SetRecorder(r metrics.Recorder) {
	if r != nil {
		b.recorder = r
	}
}

// Build runs the whole pipeline, stopping at the first failure. A failed
// build may leave a partially populated output directory; the next run
// clears it.
func (b *Builder) Build() (*Result, error) {
	start := b.now()
	res, err := b.build()
	duration := b.now().Sub(start)
	b.recorder.ObserveBuildDuration(duration)
	if err != nil {
		b.recorder.IncBuildOutcome("failed")
		return nil, err
	}
	res.Duration = duration
	b.recorder.IncBuildOutcome("success")
	return res, nil
}

func (b *Builder) build() (*Result, error) {
	if err := os.RemoveAll(b.outDir); err != nil {
		return nil, fmt.Errorf("clear output directory: %w", err)
	}
	if err := os.MkdirAll(b.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	coverHref, err := b.copyAsset(b.cfg.CoverImage, "assets", "cover image")
	if err != nil {
		return nil, err
	}
	epubHref, err := b.copyAsset(b.cfg.EPUBFile, "assets", "EPUB file")
	if err != nil {
		return nil, err
	}
	faviconHref, err := b.copyAsset(b.cfg.Favicon, "", "favicon")
	if err != nil {
		return nil, err
	}

	var times book.ModTimer = book.FileModTimer{}
	if b.cfg.GitDates {
		times = gitinfo.New(b.root)
	}

	chapters, err := book.Resolve(b.cfg.Chapters, b.root, times)
	if err != nil {
		return nil, err
	}
	slog.Info("Chapters resolved", "count", len(chapters))

	res := &Result{OutputDir: b.outDir, Chapters: len(chapters)}

	write := func(name string, p Page) error {
		p.SiteTitle = b.cfg.Title
		p.Language = b.cfg.Language
		p.BaseURL = b.cfg.BaseURL
		p.Favicon = faviconHref
		p.Image = coverHref
		if p.Author == "" {
			p.Author = b.cfg.Author
		}
		if p.Description == "" {
			p.Description = b.cfg.Description
		}
		doc, err := RenderPage(p, b.chrome)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(b.outDir, name), []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		res.Pages++
		return nil
	}

	if err := write("toc.html", Page{
		PageTitle: "Table of contents",
		PageID:    "toc",
		Content:   b.tocContent(chapters),
	}); err != nil {
		return nil, err
	}

	front, err := b.loadFrontpage()
	if err != nil {
		return nil, err
	}
	if err := write("index.html", Page{
		PageTitle: "Home",
		PageID:    "home",
		Content:   b.indexContent(chapters, coverHref, epubHref, front),
	}); err != nil {
		return nil, err
	}

	for i, ch := range chapters {
		raw, err := os.ReadFile(ch.Source)
		if err != nil {
			return nil, fmt.Errorf("read chapter source %s: %w", ch.Source, err)
		}
		content, err := b.renderer.Render(ch.Source, ch.Title, raw)
		if err != nil {
			return nil, fmt.Errorf("render chapter %d (%s): %w", ch.Index, ch.Title, err)
		}

		var prev, next string
		if i > 0 {
			prev = "./" + chapters[i-1].OutName
		}
		if i+1 < len(chapters) {
			next = "./" + chapters[i+1].OutName
		}

		if err := write(ch.OutName, Page{
			PageTitle:   ch.Title,
			PageID:      ch.Slug,
			Content:     content,
			Nav:         chapterNav(prev, next),
			Description: ch.Description,
		}); err != nil {
			return nil, err
		}
	}

	if err := write("404.html", Page{
		PageTitle: "Not found",
		PageID:    "404",
		Content:   "<h1>Not found</h1>\n<p>Try the <a href=\"./toc.html\">table of contents</a>.</p>",
	}); err != nil {
		return nil, err
	}

	count, err := b.writeArtifacts(chapters)
	if err != nil {
		return nil, err
	}
	res.Artifacts = count

	if err := os.WriteFile(filepath.Join(b.outDir, "README.txt"), []byte(hostingReadme), 0o644); err != nil {
		return nil, fmt.Errorf("write README.txt: %w", err)
	}

	b.recorder.AddPagesRendered(res.Pages)
	b.recorder.AddArtifactsWritten(res.Artifacts)
	slog.Info("Site built", "output", b.outDir, "pages", res.Pages, "artifacts", res.Artifacts)
	return res, nil
}

// copyAsset copies a configured asset into the output tree and returns its
// relative href. An empty source means the asset is not configured.
func (b *Builder) copyAsset(source, subdir, what string) (string, error) {
	if source == "" {
		return "", nil
	}
	src := source
	if !filepath.IsAbs(src) {
		src = filepath.Join(b.root, src)
	}
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("%w: %s %s", ErrMissingAsset, what, src)
	}

	name := filepath.Base(src)
	dstDir := b.outDir
	href := name
	if subdir != "" {
		dstDir = filepath.Join(b.outDir, subdir)
		href = subdir + "/" + name
		if err := os.MkdirAll(dstDir, 0o755); err != nil {
			return "", fmt.Errorf("create %s directory: %w", subdir, err)
		}
	}
	if err := copyFile(src, filepath.Join(dstDir, name)); err != nil {
		return "", fmt.Errorf("copy %s: %w", what, err)
	}
	return href, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// loadFrontpage returns optional home-page front matter from
// src/frontpage.html or src/frontpage.md, preferring HTML.
func (b *Builder) loadFrontpage() (string, error) {
	htmlPath := filepath.Join(b.root, "src", "frontpage.html")
	if raw, err := os.ReadFile(htmlPath); err == nil {
		return render.ExtractBodyInner(string(raw)), nil
	}

	mdPath := filepath.Join(b.root, "src", "frontpage.md")
	raw, err := os.ReadFile(mdPath)
	if err != nil {
		return "", nil
	}
	out, err := b.renderer.RenderMarkdown(raw)
	if err != nil {
		return "", fmt.Errorf("render frontpage: %w", err)
	}
	return out, nil
}

func (b *Builder) tocContent(chapters []book.Chapter) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(b.cfg.Title))
	fmt.Fprintf(&sb, "<div class=\"meta\">%s</div>\n", html.EscapeString(b.cfg.Author))
	sb.WriteString(`<div class="toc">
  <p class="smallnote">Tip: hit <kbd>t</kbd> any time for TOC. Resume works if your browser allows localStorage.</p>
  <button type="button" data-action="resume">Resume reading</button>
  <hr/>
  <ul>
`)
	for _, ch := range chapters {
		fmt.Fprintf(&sb, "    <li><a data-page-id=\"%s\" href=\"./%s\">%s</a></li>\n",
			html.EscapeString(ch.Slug), html.EscapeString(ch.OutName), html.EscapeString(ch.Title))
	}
	sb.WriteString("  </ul>\n</div>\n")
	return sb.String()
}

func (b *Builder) indexContent(chapters []book.Chapter, coverHref, epubHref, front string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(b.cfg.Title))
	fmt.Fprintf(&sb, "<div class=\"meta\">%s</div>\n", html.EscapeString(b.cfg.Author))

	if coverHref != "" {
		note := b.cfg.CoverTitle
		noteAttr := ""
		titleAttr := ""
		if note != "" {
			noteAttr = fmt.Sprintf(" data-cover-note=\"%s\"", html.EscapeString(note))
			titleAttr = fmt.Sprintf(" title=\"%s\"", html.EscapeString(note))
		}
		fmt.Fprintf(&sb, "<div class=\"cover\"%s>\n", noteAttr)
		fmt.Fprintf(&sb, "  <img src=\"./%s\" alt=\"%s\"%s>\n",
			html.EscapeString(coverHref), html.EscapeString(b.cfg.CoverAlt), titleAttr)
		if note != "" {
			sb.WriteString("  <button class=\"cover-info\" type=\"button\" aria-expanded=\"false\" aria-controls=\"cover-note\">&#9432;</button>\n")
			sb.WriteString("  <div id=\"cover-note\" class=\"cover-note\" hidden></div>\n")
		}
		sb.WriteString("</div>\n")
	}

	if front != "" {
		fmt.Fprintf(&sb, "<div class=\"frontmatter\">\n%s\n</div>\n", front)
	}

	primaryHref := "./" + chapters[0].OutName
	sb.WriteString("<p class=\"front-actions\">\n")
	fmt.Fprintf(&sb, "  <a class=\"btn btn-primary\" data-action=\"primary-read\" href=\"%s\">Start reading &#8594;</a>\n",
		html.EscapeString(primaryHref))
	sb.WriteString("  <a class=\"btn\" href=\"./toc.html\">Table of contents</a>\n")
	if epubHref != "" {
		fmt.Fprintf(&sb, "  <a class=\"btn\" href=\"./%s\" download>Download EPUB</a>\n", html.EscapeString(epubHref))
	}
	for _, link := range b.cfg.ExternalLinks {
		fmt.Fprintf(&sb, "  <a class=\"btn\" href=\"%s\" rel=\"noopener\">%s</a>\n",
			html.EscapeString(link.URL), html.EscapeString(link.Text))
	}
	sb.WriteString("</p>\n")
	return sb.String()
}

// chapterNav renders the prev/next footer. Missing directions become empty
// spans so the flex layout keeps the remaining link on its side.
func chapterNav(prevHref, nextHref string) string {
	left := "<span></span>"
	if prevHref != "" {
		left = fmt.Sprintf("<a data-nav=\"prev\" href=\"%s\">&#8592; Prev</a>", html.EscapeString(prevHref))
	}
	right := "<span></span>"
	if nextHref != "" {
		right = fmt.Sprintf("<a data-nav=\"next\" href=\"%s\">Next &#8594;</a>", html.EscapeString(nextHref))
	}
	return fmt.Sprintf(`<div class="footer-nav">
  %s
  %s
</div>
<p class="smallnote">Keyboard: <kbd>Space</kbd> page down, <kbd>Shift</kbd>+<kbd>Space</kbd> page up, <kbd>n</kbd>/<kbd>p</kbd> next/prev chapter, <kbd>t</kbd> TOC.</p>
`, left, right)
}

func (b *Builder) writeArtifacts(chapters []book.Chapter) (int, error) {
	count := 0
	writeDoc := func(name, content string) error {
		if err := os.WriteFile(filepath.Join(b.outDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		count++
		return nil
	}

	if doc, ok, err := artifacts.Sitemap(b.cfg, chapters); err != nil {
		return count, err
	} else if ok {
		if err := writeDoc("sitemap.xml", doc); err != nil {
			return count, err
		}
	}

	if doc, ok, err := artifacts.Feed(b.cfg, chapters, b.now()); err != nil {
		return count, err
	} else if ok {
		if err := writeDoc("feed.xml", doc); err != nil {
			return count, err
		}
	}

	if err := writeDoc("robots.txt", artifacts.Robots(b.cfg)); err != nil {
		return count, err
	}

	manifest, err := artifacts.Manifest(b.cfg)
	if err != nil {
		return count, err
	}
	if err := writeDoc("manifest.json", manifest); err != nil {
		return count, err
	}

	return count, nil
}

const hostingReadme = `Upload this folder to any static host.
- GitHub Pages: push contents to /docs or the gh-pages branch.
- Netlify: drag-drop the folder.
- Local test: bookbinder serve <config> or any static file server.
`
