package parse

import "regexp"

// Episode numbering patterns, evaluated in order; first match wins.
// Each pattern must expose: season group (may be empty), first-episode
// group, optional last-episode group.
type episodeRule struct {
	name    string
	pattern *regexp.Regexp
	// group indexes into the submatch slice
	season, episode, episodeEnd int
}

var (
	// Show.Name.S01E01.mkv, S01E01-E03, S01E01E02, S01E01-03
	reSxxExx = regexp.MustCompile(
		`(?i)(^|[^a-z0-9])S(\d{1,2})[\s._-]?E(\d{1,3})(?:[\s._-]?(?:-|E|-E)(\d{1,3}))?`)

	// Show Name 1x01
	re1x01 = regexp.MustCompile(
		`(?i)(^|[^0-9])(\d{1,2})x(\d{1,3})(?:-(\d{1,3}))?([^0-9]|$)`)

	// Show Name Season 1 Episode 4
	reSeasonEpisodeWords = regexp.MustCompile(
		`(?i)(^|[^a-z0-9])Season[\s._-]*(\d{1,2})[\s._-]+Episode[\s._-]*(\d{1,3})()`)

	// Show Name Episode 7 (no season tag)
	reEpisodeWord = regexp.MustCompile(
		`(?i)(^|[^a-z0-9])()Episode[\s._-]*(\d{1,3})()`)
)

var episodeRules = []episodeRule{
	{"SxxEyy", reSxxExx, 2, 3, 4},
	{"1x01", re1x01, 2, 3, 4},
	{"season-episode-words", reSeasonEpisodeWords, 2, 3, 4},
	{"episode-word", reEpisodeWord, 2, 3, 4},
}

// Resolution tokens, canonicalized to the "NNNNp" form.
var reResolution = regexp.MustCompile(
	`(?i)(^|[^a-z0-9])(2160p|1440p|1080p|720p|576p|480p|4k|uhd)([^a-z0-9]|$)`)

var resolutionAliases = map[string]string{
	"4k":  "2160p",
	"uhd": "2160p",
}

// Year: a delimited 4-digit year, 1900-2099. Parenthesized years win; an
// undelimited run of digits (dates, episode codes) never matches.
var (
	reYearParen = regexp.MustCompile(`[\(\[]((?:19|20)\d{2})[\)\]]`)
	reYearBare  = regexp.MustCompile(`(^|[\s._-])((?:19|20)\d{2})([\s._-]|$)`)
)

// Part indicators: part2, pt-2, p3. Applied after resolution tokens have
// been removed so "1080p" can never contribute a part number.
var rePart = regexp.MustCompile(
	`(?i)(^|[\s._-])(?:part|pt|p)[\s._-]?(\d{1,2})([^0-9]|$)`)

// Release tokens stripped from title fragments. Matching is per cleaned
// word, not substring, so titles containing these words survive.
var junkTokens = map[string]struct{}{
	"bluray": {}, "brrip": {}, "bdrip": {}, "webrip": {}, "webdl": {},
	"web": {}, "hdtv": {}, "dvdrip": {}, "remux": {}, "proper": {},
	"repack": {}, "extended": {}, "unrated": {}, "x264": {}, "x265": {},
	"h264": {}, "h265": {}, "hevc": {}, "avc": {}, "aac": {}, "ac3": {},
	"dts": {}, "flac": {}, "atmos": {}, "hdr": {}, "hdr10": {}, "10bit": {},
	"8bit": {},
}
