package book

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWordRE   = regexp.MustCompile(`[^\p{L}\p{N}_\s-]+`)
	separatorRE = regexp.MustCompile(`[\s_-]+`)
)

// foldDiacritics decomposes, drops combining marks and recomposes:
// "Café" -> "Cafe". Transformers carry state, so build one per call.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Slugify turns an arbitrary title into a URL-safe identifier: diacritics
// folded, lowercased, non-word characters stripped, runs of whitespace,
// underscores and hyphens collapsed to a single hyphen. Inputs with no
// usable characters yield "chapter". The function is idempotent.
func Slugify(s string) string {
	if folded, _, err := transform.String(foldDiacritics(), s); err == nil {
		s = folded
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRE.ReplaceAllString(s, "")
	s = separatorRE.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "chapter"
	}
	return s
}
