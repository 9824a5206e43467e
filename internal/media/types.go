package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// File is a read-only handle to a scanned source file. It is created once by
// the directory scan and never mutated afterwards.
type File struct {
	// Path is the absolute source path.
	Path string
	// Name is the base filename including all extensions.
	Name string
	// Size is the file size in bytes at scan time.
	Size int64
	// Ext is the real extension (the last one), lowercased, with leading dot.
	Ext string
}

// NewFile builds a File handle from an absolute path and size.
func NewFile(path string, size int64) File {
	name := filepath.Base(path)
	return File{
		Path: path,
		Name: name,
		Size: size,
		Ext:  RealExtension(name),
	}
}

// RealExtension returns the last extension of a filename, lowercased.
// Release names frequently contain dots ("Show.Name.S01E01.mkv"); only the
// final segment is the container extension.
func RealExtension(name string) string {
	ext := filepath.Ext(name)
	return strings.ToLower(ext)
}

// Stem returns the filename with the real extension removed. Interior dots
// are preserved.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// EpisodeRange is a contiguous span of episode numbers covered by a single
// file. A single episode has Start == End.
type EpisodeRange struct {
	Start int
	End   int
}

// Single reports whether the range covers exactly one episode.
func (r EpisodeRange) Single() bool { return r.Start == r.End }

// Label renders the range in library notation: "E01" or "E01-E03".
func (r EpisodeRange) Label() string {
	if r.Single() {
		return fmt.Sprintf("E%02d", r.Start)
	}
	return fmt.Sprintf("E%02d-E%02d", r.Start, r.End)
}

// Attributes is the best-effort result of parsing one filename. Absence of a
// field is a first-class state: zero values (and nil Episodes) mean "the
// filename did not say".
type Attributes struct {
	Title      string
	Year       int // 0 when unknown
	Season     int
	HasSeason  bool
	Episodes   *EpisodeRange // nil when no episode numbering was found
	Resolution string        // canonical label such as "1080p", "" when unknown
	Part       int           // multi-part indicator, 0 when absent
	Extra      ExtraKind     // "" when the file is main-feature content
}

// HasEpisode reports whether episode numbering was parsed.
func (a Attributes) HasEpisode() bool { return a.Episodes != nil }

// resolutionRanks orders known resolution labels best-first. Unknown labels
// rank below all known ones so the best copy sorts first in group listings.
var resolutionRanks = map[string]int{
	"2160p": 5,
	"1440p": 4,
	"1080p": 3,
	"720p":  2,
	"576p":  1,
	"480p":  0,
}

// ResolutionRank returns a sortable rank for a resolution label; higher is
// better, -1 for unknown or empty labels.
func ResolutionRank(label string) int {
	rank, ok := resolutionRanks[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return -1
	}
	return rank
}
