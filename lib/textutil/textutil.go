package textutil

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

var accentFolder = strings.NewReplacer(
	"Á", "A",
	"É", "E",
	"Í", "I",
	"Ó", "O",
	"Ú", "U",
)

// NormalizeLabel turns a free-text label into the canonical key used by the
// taxonomy tables: uppercase, without whitespace, with the five accented
// vowels folded. Other diacritics (Ñ, Ü) are kept.
func NormalizeLabel(label string) string {
	label = strings.ToUpper(label)
	label = whitespaceRegex.ReplaceAllString(label, "")
	return accentFolder.Replace(label)
}

// CleanText puts a space after every comma and period and collapses
// the resulting double spaces.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, ",", ", ")
	text = strings.ReplaceAll(text, ".", ". ")
	text = strings.ReplaceAll(text, "  ", " ")
	return strings.TrimSpace(text)
}

// CollapseWhitespace trims the string and replaces inner whitespace runs with
// a single space.
func CollapseWhitespace(text string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Closest returns the candidate most similar to label, it returns an empty
// string if no candidate is similar enough to be a plausible typo.
func Closest(label string, candidates []string) string {
	best := ""
	bestScore := 0.8
	for _, c := range candidates {
		score := matchr.JaroWinkler(label, c, false)
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}
