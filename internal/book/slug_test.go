package book

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01-Intro", "01-intro"},
		{"02-The End", "02-the-end"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"under_scores_and-hyphens", "under-scores-and-hyphens"},
		{"Punctuation, removed! (really?)", "punctuation-removed-really"},
		{"Café au lait", "cafe-au-lait"},
		{"---", "chapter"},
		{"", "chapter"},
		{"!!!***", "chapter"},
		{"MixedCASE", "mixedcase"},
		{"a - b _ c", "a-b-c"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"01-Intro", "The End!", "Café", "  odd _ mix --- here  ", "", "汉字 title"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
