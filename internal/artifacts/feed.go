package artifacts

import (
	"encoding/xml"
	"fmt"
	"time"

	"git.home.luguber.info/inful/bookbinder/internal/book"
	"git.home.luguber.info/inful/bookbinder/internal/config"
)

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// Feed renders feed.xml (RSS 2.0) with one item per chapter in declared
// order. Emitted only when a base URL is configured. Items carry their
// chapter's last-modified time as pubDate; the shared build time only
// appears as the channel's lastBuildDate.
func Feed(cfg *config.BookConfig, chapters []book.Chapter, now time.Time) (string, bool, error) {
	if cfg.BaseURL == "" {
		return "", false, nil
	}

	channel := rssChannel{
		Title:         cfg.Title,
		Link:          cfg.BaseURL + "/",
		Description:   cfg.Description,
		Language:      cfg.Language,
		LastBuildDate: now.UTC().Format(time.RFC1123Z),
	}
	for _, ch := range chapters {
		link := fmt.Sprintf("%s/%s.html", cfg.BaseURL, ch.Slug)
		desc := ch.Description
		if desc == "" {
			desc = ch.Title
		}
		channel.Items = append(channel.Items, rssItem{
			Title:       ch.Title,
			Link:        link,
			GUID:        link,
			Description: desc,
			PubDate:     ch.LastMod.UTC().Format(time.RFC1123Z),
		})
	}

	out, err := xml.MarshalIndent(rssDoc{Version: "2.0", Channel: channel}, "", "  ")
	if err != nil {
		return "", false, fmt.Errorf("marshal feed: %w", err)
	}
	return xml.Header + string(out) + "\n", true, nil
}
