package artifacts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/bookbinder/internal/config"
)

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type,omitempty"`
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons,omitempty"`
}

// shortNameLimit is what installers display without truncating.
const shortNameLimit = 12

// Manifest renders manifest.json for PWA installs.
func Manifest(cfg *config.BookConfig) (string, error) {
	m := webManifest{
		Name:            cfg.Title,
		ShortName:       truncate(cfg.Title, shortNameLimit),
		Description:     cfg.Description,
		StartURL:        "./",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#1f2430",
	}
	if cfg.Favicon != "" {
		m.Icons = []manifestIcon{{
			Src:   "./" + filepath.Base(cfg.Favicon),
			Sizes: "any",
			Type:  iconType(cfg.Favicon),
		}}
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}
	return string(out) + "\n", nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func iconType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".ico":
		return "image/x-icon"
	case ".svg":
		return "image/svg+xml"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	}
	return ""
}
