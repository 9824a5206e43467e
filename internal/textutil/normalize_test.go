package textutil

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Movie.Title", "movie title"},
		{"MOVIE TITLE!", "movie title"},
		{"Movie-Title", "movie title"},
		{"  The_Show  ", "the show"},
		{"Blade Runner 2049", "blade runner 2049"},
		{"Amélie", "amelie"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeyEquivalence(t *testing.T) {
	variants := []string{"Show.Name", "show name", "SHOW-NAME", "Show_Name", "Show...Name", "Shöw Nâme"}
	want := NormalizeKey(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeKey(v); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("Show.Name_Is  Here"); got != "Show Name Is Here" {
		t.Errorf("CollapseSpaces = %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Title: Subtitle", "Title- Subtitle"},
		{"What?", "What"},
		{"a/b\\c", "a-b-c"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
