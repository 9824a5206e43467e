// Package classify decides what each scanned file is (movie, episode,
// extra, or unresolved) and what a whole source directory contains.
package classify

import (
	"curator/internal/media"
)

// Kind is the per-file classification outcome.
type Kind int

const (
	// KindUnresolved marks files that could not be classified; they are
	// reported and excluded from the plan, never silently dropped.
	KindUnresolved Kind = iota
	KindMovie
	KindEpisode
	KindExtra
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindEpisode:
		return "episode"
	case KindExtra:
		return "extra"
	default:
		return "unresolved"
	}
}

// ContentType is the directory-level processing mode.
type ContentType string

const (
	ContentAuto   ContentType = "auto"
	ContentMovies ContentType = "movies"
	ContentTV     ContentType = "tv"
)

// Valid reports whether the content type is one of the known modes.
func (c ContentType) Valid() bool {
	switch c {
	case ContentAuto, ContentMovies, ContentTV:
		return true
	}
	return false
}

// Item pairs a scanned file with its parsed attributes and classification.
type Item struct {
	File  media.File
	Attrs media.Attributes
	Kind  Kind
	// Reason explains an unresolved classification for the report.
	Reason string
}

// Classify determines what a single parsed file is. Extra vocabulary wins
// over movie/episode status; episodes need well-formed numbering and a
// series name; movies need at least a title.
func Classify(attrs media.Attributes, parsed bool) (Kind, string) {
	if parsed && attrs.Extra != "" {
		return KindExtra, ""
	}
	if !parsed {
		return KindUnresolved, "filename could not be parsed"
	}
	if attrs.HasEpisode() {
		if attrs.Title == "" {
			return KindUnresolved, "episode numbering without a series name"
		}
		return KindEpisode, ""
	}
	if attrs.Title != "" {
		return KindMovie, ""
	}
	return KindUnresolved, "no title in filename"
}

// Apply classifies every file against the requested content type. In auto
// mode movies and episodes coexist and are routed to separate subtrees; a
// forced type turns inconsistent items into unresolved ones.
func Apply(files []media.File, extractor interface {
	Extract(string) (media.Attributes, bool)
}, contentType ContentType) []Item {
	items := make([]Item, 0, len(files))
	for _, f := range files {
		attrs, ok := extractor.Extract(f.Name)
		kind, reason := Classify(attrs, ok)

		switch {
		case contentType == ContentMovies && kind == KindEpisode:
			kind, reason = KindUnresolved, "episode file in a movies-only run"
		case contentType == ContentTV && kind == KindMovie:
			kind, reason = KindUnresolved, "movie file in a tv-only run"
		}

		items = append(items, Item{File: f, Attrs: attrs, Kind: kind, Reason: reason})
	}
	return items
}

// Summary counts classifications for the directory-level decision and the
// final report.
type Summary struct {
	Movies     int
	Episodes   int
	Extras     int
	Unresolved int
}

// Summarize tallies item kinds.
func Summarize(items []Item) Summary {
	var s Summary
	for _, item := range items {
		switch item.Kind {
		case KindMovie:
			s.Movies++
		case KindEpisode:
			s.Episodes++
		case KindExtra:
			s.Extras++
		default:
			s.Unresolved++
		}
	}
	return s
}
