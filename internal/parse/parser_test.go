package parse_test

import (
	"testing"

	"curator/internal/media"
	"curator/internal/parse"
)

func TestExtractEpisodes(t *testing.T) {
	e := parse.New()
	cases := []struct {
		filename   string
		title      string
		season     int
		hasSeason  bool
		epStart    int
		epEnd      int
		resolution string
	}{
		{"Show.Name.S01E01.1080p.mkv", "Show Name", 1, true, 1, 1, "1080p"},
		{"Show.Name.S01E02.1080p.mkv", "Show Name", 1, true, 2, 2, "1080p"},
		{"Show Name S02E10 720p.mkv", "Show Name", 2, true, 10, 10, "720p"},
		{"Show.Name.S01E01-E03.mkv", "Show Name", 1, true, 1, 3, ""},
		{"Show.Name.S01E01E02.mkv", "Show Name", 1, true, 1, 2, ""},
		{"Show Name 1x04.mkv", "Show Name", 1, true, 4, 4, ""},
		{"Show Name Season 3 Episode 7.mkv", "Show Name", 3, true, 7, 7, ""},
		{"Show Name Episode 5.mkv", "Show Name", 0, false, 5, 5, ""},
	}
	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			attrs, ok := e.Extract(tc.filename)
			if !ok {
				t.Fatal("expected parseable filename")
			}
			if attrs.Title != tc.title {
				t.Errorf("title = %q, want %q", attrs.Title, tc.title)
			}
			if attrs.HasSeason != tc.hasSeason || attrs.Season != tc.season {
				t.Errorf("season = %d (set=%v), want %d (set=%v)", attrs.Season, attrs.HasSeason, tc.season, tc.hasSeason)
			}
			if !attrs.HasEpisode() {
				t.Fatal("expected episode range")
			}
			if attrs.Episodes.Start != tc.epStart || attrs.Episodes.End != tc.epEnd {
				t.Errorf("episodes = %+v, want %d-%d", *attrs.Episodes, tc.epStart, tc.epEnd)
			}
			if attrs.Resolution != tc.resolution {
				t.Errorf("resolution = %q, want %q", attrs.Resolution, tc.resolution)
			}
		})
	}
}

func TestExtractMovies(t *testing.T) {
	e := parse.New()
	cases := []struct {
		filename   string
		title      string
		year       int
		resolution string
		part       int
	}{
		{"Movie.Title.2020.mkv", "Movie Title", 2020, "", 0},
		{"Movie.Title.2020.720p.mkv", "Movie Title", 2020, "720p", 0},
		{"Movie Title (2020) 1080p.mkv", "Movie Title", 2020, "1080p", 0},
		{"Movie.Title.2020.2160p.BluRay.x265.mkv", "Movie Title", 2020, "2160p", 0},
		{"Movie.Title.2020.MP4", "Movie Title", 2020, "", 0},
		{"Movie.Title.4K.mkv", "Movie Title", 0, "2160p", 0},
		{"Long.Film.1987.part2.mkv", "Long Film", 1987, "", 2},
		{"Plain Movie.mkv", "Plain Movie", 0, "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			attrs, ok := e.Extract(tc.filename)
			if !ok {
				t.Fatal("expected parseable filename")
			}
			if attrs.HasEpisode() {
				t.Fatalf("unexpected episodes: %+v", *attrs.Episodes)
			}
			if attrs.Title != tc.title {
				t.Errorf("title = %q, want %q", attrs.Title, tc.title)
			}
			if attrs.Year != tc.year {
				t.Errorf("year = %d, want %d", attrs.Year, tc.year)
			}
			if attrs.Resolution != tc.resolution {
				t.Errorf("resolution = %q, want %q", attrs.Resolution, tc.resolution)
			}
			if attrs.Part != tc.part {
				t.Errorf("part = %d, want %d", attrs.Part, tc.part)
			}
		})
	}
}

func TestExtractTitleCaseRepair(t *testing.T) {
	e := parse.New()
	attrs, ok := e.Extract("some.quiet.film.2019.mkv")
	if !ok {
		t.Fatal("expected parseable filename")
	}
	if attrs.Title != "Some Quiet Film" {
		t.Errorf("title = %q", attrs.Title)
	}
}

func TestExtractResolutionNeverBecomesPart(t *testing.T) {
	e := parse.New()
	attrs, ok := e.Extract("Movie.Title.2020.1080p.mkv")
	if !ok {
		t.Fatal("expected parseable filename")
	}
	if attrs.Part != 0 {
		t.Errorf("part = %d, resolution token leaked into part detection", attrs.Part)
	}
}

func TestExtractExtras(t *testing.T) {
	e := parse.New()
	attrs, ok := e.Extract("Movie Title-trailer.mkv")
	if !ok {
		t.Fatal("expected parseable filename")
	}
	if attrs.Extra != media.ExtraTrailer {
		t.Errorf("extra = %q, want trailer", attrs.Extra)
	}
	// The token is cut from the title so the extra shares its parent's
	// grouping key.
	if attrs.Title != "Movie Title" {
		t.Errorf("title = %q, want %q", attrs.Title, "Movie Title")
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := parse.New()
	first, ok1 := e.Extract("Show.Name.S01E01.1080p.mkv")
	second, ok2 := e.Extract("Show.Name.S01E01.1080p.mkv")
	if ok1 != ok2 || first.Title != second.Title || first.Season != second.Season {
		t.Fatal("extraction must be deterministic for identical input")
	}
}

func TestExtractMultipleExtensions(t *testing.T) {
	e := parse.New()
	attrs, ok := e.Extract("Show.Name.S01E01.Title.With.Dots.mkv")
	if !ok {
		t.Fatal("expected parseable filename")
	}
	if attrs.Title != "Show Name" {
		t.Errorf("title = %q", attrs.Title)
	}
}
