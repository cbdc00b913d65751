// Package artifacts generates the non-page output documents: sitemap.xml,
// feed.xml, robots.txt and manifest.json. Each generator is a pure function
// of the configuration and the resolved chapter list.
package artifacts

import (
	"encoding/xml"
	"fmt"

	"git.home.luguber.info/inful/bookbinder/internal/book"
	"git.home.luguber.info/inful/bookbinder/internal/config"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap renders sitemap.xml. It is only emitted when a base URL is
// configured; without one the second return value is false and no artifact
// should be written.
func Sitemap(cfg *config.BookConfig, chapters []book.Chapter) (string, bool, error) {
	if cfg.BaseURL == "" {
		return "", false, nil
	}

	freq := cfg.SitemapChangefreq
	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: cfg.BaseURL + "/", ChangeFreq: freq, Priority: "1.0"},
			{Loc: cfg.BaseURL + "/toc.html", ChangeFreq: freq, Priority: "0.9"},
		},
	}
	for _, ch := range chapters {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/%s.html", cfg.BaseURL, ch.Slug),
			LastMod:    ch.LastMod.Format("2006-01-02"),
			ChangeFreq: freq,
			Priority:   "0.8",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("marshal sitemap: %w", err)
	}
	return xml.Header + string(out) + "\n", true, nil
}
