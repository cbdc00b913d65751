package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoChapters indicates the configuration declares no chapters. A book
// without chapters has nothing to build.
var ErrNoChapters = errors.New("configuration must declare at least one [[chapter]] entry")

// BookConfig is the typed model of a book configuration file.
type BookConfig struct {
	Title             string `toml:"title" yaml:"title"`
	Author            string `toml:"author" yaml:"author"`
	Language          string `toml:"language" yaml:"language"`
	Description       string `toml:"description" yaml:"description"`
	BaseURL           string `toml:"base_url" yaml:"base_url"`
	CoverImage        string `toml:"cover_image" yaml:"cover_image"`
	CoverAlt          string `toml:"cover_alt" yaml:"cover_alt"`
	CoverTitle        string `toml:"cover_title" yaml:"cover_title"`
	EPUBFile          string `toml:"epub_file" yaml:"epub_file"`
	Favicon           string `toml:"favicon" yaml:"favicon"`
	SitemapChangefreq string `toml:"sitemap_changefreq" yaml:"sitemap_changefreq"`
	RobotsTxt         string `toml:"robots_txt" yaml:"robots_txt"`
	GitDates          bool   `toml:"git_dates" yaml:"git_dates"`

	Chapters      []ChapterSpec  `toml:"chapter" yaml:"chapter"`
	ExternalLinks []ExternalLink `toml:"external_link" yaml:"external_link"`
}

// ChapterSpec is one declared chapter entry. Title may be empty; Source is
// resolved relative to the configuration file's directory.
type ChapterSpec struct {
	Title  string `toml:"title" yaml:"title"`
	Source string `toml:"source" yaml:"source"`
}

// ExternalLink is an extra button rendered on the home page (e.g. a mirror
// or a storefront).
type ExternalLink struct {
	Text string `toml:"text" yaml:"text"`
	URL  string `toml:"url" yaml:"url"`
}

// Load reads and validates a book configuration file. The format is chosen
// by extension: .yaml/.yml parse as YAML, everything else as TOML.
// Environment variables referenced as ${VAR} in the file are expanded, with
// .env/.env.local consulted first so local overrides work without exporting.
func Load(configPath string) (*BookConfig, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg BookConfig
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	default:
		if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	cfg.applyDefaults()

	if len(cfg.Chapters) == 0 {
		return nil, fmt.Errorf("%s: %w", configPath, ErrNoChapters)
	}

	return &cfg, nil
}

func (c *BookConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "Untitled Book"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.CoverAlt == "" {
		c.CoverAlt = "Cover image"
	}
	if c.SitemapChangefreq == "" {
		c.SitemapChangefreq = "monthly"
	}
	// A trailing slash would double up in every generated URL.
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	c.Author = strings.TrimSpace(c.Author)
	c.Language = strings.TrimSpace(c.Language)
	c.CoverTitle = strings.TrimSpace(c.CoverTitle)
}

// loadEnvFiles loads .env/.env.local if present, stopping at the first one
// that parses. Existing process environment wins over file values.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", p)
			return
		}
	}
}

const exampleConfig = `# bookbinder configuration
title = "My Book"
author = "A. Writer"
language = "en"
description = "A short description used for meta tags and the RSS feed."

# Uncomment to enable sitemap.xml, feed.xml and canonical/Open Graph tags.
# base_url = "https://example.com"

# cover_image = "src/cover.jpg"
# cover_alt = "Cover image"
# epub_file = "my-book.epub"
# favicon = "src/favicon.png"

# Use the last git commit touching each chapter for its modification date.
# git_dates = true

[[chapter]]
title = "Chapter One"
source = "src/chapter-01.md"

# [[external_link]]
# text = "Read on AO3"
# url = "https://archiveofourown.org/works/..."
`

// Init writes an example configuration file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
