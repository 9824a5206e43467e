package parse

import (
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"curator/internal/media"
	"curator/internal/textutil"
)

// Extractor is the opaque filename-to-attributes function the pipeline
// depends on. ok is false when the filename yields nothing usable; partial
// results return true with unknown fields left at zero values.
type Extractor interface {
	Extract(filename string) (attrs media.Attributes, ok bool)
}

// RuleExtractor parses filenames with the ordered rule table in rules.go.
type RuleExtractor struct {
	titleCaser cases.Caser
}

// New returns a ready-to-use RuleExtractor.
func New() *RuleExtractor {
	return &RuleExtractor{titleCaser: cases.Title(language.Und)}
}

// Extract implements Extractor.
func (e *RuleExtractor) Extract(filename string) (media.Attributes, bool) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	var attrs media.Attributes

	// Cut the extra-type token before title extraction so "Epic Saga-trailer"
	// yields title "Epic Saga" and the extra joins its parent's group.
	if rest, kind := media.CutExtraToken(stem); kind != "" {
		attrs.Extra = kind
		stem = rest
	}

	working := stem
	titleEnd := len(working)

	// Episode numbering first: it is the strongest structural signal and
	// bounds the title fragment.
	for _, rule := range episodeRules {
		m := rule.pattern.FindStringSubmatchIndex(working)
		if m == nil {
			continue
		}
		season := submatch(working, m, rule.season)
		first := submatch(working, m, rule.episode)
		last := submatch(working, m, rule.episodeEnd)

		if first != "" {
			start, _ := strconv.Atoi(first)
			end := start
			if last != "" {
				if n, err := strconv.Atoi(last); err == nil && n >= start {
					end = n
				}
			}
			attrs.Episodes = &media.EpisodeRange{Start: start, End: end}
		}
		if season != "" {
			n, _ := strconv.Atoi(season)
			attrs.Season = n
			attrs.HasSeason = true
		}
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
		break
	}

	// Resolution token anywhere in the stem.
	if m := reResolution.FindStringSubmatchIndex(working); m != nil {
		label := strings.ToLower(working[m[4]:m[5]])
		if canonical, ok := resolutionAliases[label]; ok {
			label = canonical
		}
		attrs.Resolution = label
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
		// Blank the token so the part pattern cannot re-match its digits.
		working = working[:m[4]] + strings.Repeat(" ", m[5]-m[4]) + working[m[5]:]
	}

	// Year. Parenthesized form wins; otherwise the last delimited match is
	// taken so "2001.A.Space.Odyssey.1968" keeps its leading title digits.
	if m := reYearParen.FindStringSubmatchIndex(working); m != nil {
		attrs.Year, _ = strconv.Atoi(working[m[2]:m[3]])
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
	} else if ms := reYearBare.FindAllStringSubmatchIndex(working, -1); len(ms) > 0 {
		m := ms[len(ms)-1]
		if m[4] > 0 { // never consume a year that starts the filename
			attrs.Year, _ = strconv.Atoi(working[m[4]:m[5]])
			if m[4] < titleEnd {
				titleEnd = m[4]
			}
		}
	}

	// Part indicator, after resolution removal.
	if m := rePart.FindStringSubmatchIndex(working); m != nil {
		attrs.Part, _ = strconv.Atoi(working[m[4]:m[5]])
		if m[0] < titleEnd {
			titleEnd = m[0]
		}
	}

	attrs.Title = e.cleanTitle(stem[:min(titleEnd, len(stem))])

	if attrs.Title == "" && !attrs.HasEpisode() {
		return media.Attributes{Extra: attrs.Extra}, false
	}
	return attrs, true
}

// cleanTitle converts a raw stem fragment into a display title: separators
// to spaces, release junk dropped, casing repaired when the source was
// all-lowercase.
func (e *RuleExtractor) cleanTitle(fragment string) string {
	words := strings.Fields(textutil.CollapseSpaces(fragment))
	kept := make([]string, 0, len(words))
	for _, w := range words {
		trimmed := strings.Trim(w, "-[]()")
		if trimmed == "" {
			continue
		}
		if _, junk := junkTokens[strings.ToLower(trimmed)]; junk {
			continue
		}
		kept = append(kept, trimmed)
	}
	title := strings.Join(kept, " ")
	if title != "" && title == strings.ToLower(title) {
		title = e.titleCaser.String(title)
	}
	return title
}

func submatch(s string, m []int, group int) string {
	if group <= 0 || 2*group+1 >= len(m) {
		return ""
	}
	start, end := m[2*group], m[2*group+1]
	if start < 0 || end < 0 {
		return ""
	}
	return s[start:end]
}
