package media

import "strings"

// ExtraKind classifies ancillary content associated with a movie or show.
// The values double as the kind-named subfolder each extra is routed to.
type ExtraKind string

const (
	ExtraTrailer         ExtraKind = "trailers"
	ExtraBehindTheScenes ExtraKind = "behind the scenes"
	ExtraFeaturette      ExtraKind = "featurettes"
	ExtraDeletedScene    ExtraKind = "deleted scenes"
	ExtraInterview       ExtraKind = "interviews"
	ExtraScene           ExtraKind = "scenes"
	ExtraShort           ExtraKind = "shorts"
	ExtraOther           ExtraKind = "extras"
)

// Folder returns the subfolder name extras of this kind are stored under.
func (k ExtraKind) Folder() string { return string(k) }

// extraSuffixes maps trailing filename tokens to extra kinds. Matching is
// suffix-based on the cleaned stem, following the Jellyfin naming convention
// ("Some Movie-trailer.mkv", "Gag Reel.behindthescenes.mkv").
var extraSuffixes = []struct {
	token string
	kind  ExtraKind
}{
	{"trailer", ExtraTrailer},
	{"behindthescenes", ExtraBehindTheScenes},
	{"behind the scenes", ExtraBehindTheScenes},
	{"featurette", ExtraFeaturette},
	{"deletedscene", ExtraDeletedScene},
	{"deleted scene", ExtraDeletedScene},
	{"deleted", ExtraDeletedScene},
	{"interview", ExtraInterview},
	{"scene", ExtraScene},
	{"short", ExtraShort},
	{"extra", ExtraOther},
	{"other", ExtraOther},
}

// CutExtraToken removes a trailing extra-type token, and the separator
// before it, from a filename stem. It returns the remaining stem and the
// detected kind; main content comes back unchanged with kind "".
func CutExtraToken(stem string) (string, ExtraKind) {
	trimmed := strings.TrimRight(stem, " ")
	lowered := strings.ToLower(trimmed)
	for _, entry := range extraSuffixes {
		if !strings.HasSuffix(lowered, entry.token) {
			continue
		}
		rest := trimmed[:len(trimmed)-len(entry.token)]
		if rest == "" {
			return "", entry.kind
		}
		// The token must be a separate trailing word, not part of one
		// ("Interstellar" is not a trailer).
		switch rest[len(rest)-1] {
		case '.', '-', '_', ' ':
			return strings.TrimRight(rest, ".-_ "), entry.kind
		}
	}
	return stem, ""
}

// DetectExtraKind inspects a filename stem for a trailing extra-type token
// and returns the matching kind, or "" when the file is main content.
func DetectExtraKind(stem string) ExtraKind {
	_, kind := CutExtraToken(stem)
	return kind
}
