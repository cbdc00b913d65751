package artifacts

import (
	"strings"

	"git.home.luguber.info/inful/bookbinder/internal/config"
)

// Robots renders robots.txt. A configured robots_txt value is emitted
// verbatim, trailing newline or not; otherwise everything is allowed and,
// when a base URL exists, the sitemap is advertised.
func Robots(cfg *config.BookConfig) string {
	if cfg.RobotsTxt != "" {
		return cfg.RobotsTxt
	}

	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if cfg.BaseURL != "" {
		b.WriteString("\nSitemap: " + cfg.BaseURL + "/sitemap.xml\n")
	}
	return b.String()
}
