package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes accented letters and strips the combining marks,
// so "Amélie" and "Amelie" produce the same key. Transformers are stateful,
// so each call builds its own chain.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// NormalizeKey reduces a title or series name to a canonical grouping key:
// lowercase letters and digits with single spaces between words, diacritics
// folded. Punctuation and separator characters (dots, dashes, underscores)
// are treated as word boundaries.
func NormalizeKey(value string) string {
	if folded, _, err := transform.String(foldDiacritics(), value); err == nil {
		value = folded
	}
	var b strings.Builder
	b.Grow(len(value))
	pendingSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		default:
			pendingSpace = true
		}
	}
	return b.String()
}

// CollapseSpaces trims the string and replaces runs of whitespace and
// filename separators (dots, underscores) with single spaces. Used to turn a
// raw release-name fragment into a readable title.
func CollapseSpaces(value string) string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == '_'
	})
	return strings.Join(fields, " ")
}
