package text

import (
	"strings"
	"unicode"

	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Suggest returns up to limit of candidates that loosely resemble query,
// best first. It backs the "did you mean" hint shown when a search matches
// nothing.
func Suggest(query string, candidates []string, limit int) []string {
	needle, err := Normalize(strings.ToLower(strings.TrimSpace(query)))
	if err != nil || needle == "" {
		return nil
	}

	haystack := make([]string, len(candidates))
	for i, c := range candidates {
		normalized, err := Normalize(strings.ToLower(c))
		if err != nil {
			normalized = strings.ToLower(c)
		}
		haystack[i] = normalized
	}

	matches := fuzzy.Find(needle, haystack)
	out := []string{}
	for _, m := range matches {
		if len(out) >= limit {
			break
		}
		out = append(out, candidates[m.Index])
	}
	return out
}

// HighlightMatch underlines the first case-insensitive occurrence of needle in
// haystack and styles the rest with defaultStyle.
func HighlightMatch(haystack, needle string, defaultStyle termenv.Style) string {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return defaultStyle.Styled(haystack)
	}

	hay := []rune(haystack)
	lowerHay := []rune(strings.ToLower(haystack))
	lowerNeedle := []rune(strings.ToLower(needle))
	// lowercasing can change the rune count for a few scripts; give up on
	// highlighting rather than underline the wrong runes
	if len(hay) != len(lowerHay) {
		return defaultStyle.Styled(haystack)
	}

	start := indexRunes(lowerHay, lowerNeedle)
	if start < 0 {
		return defaultStyle.Styled(haystack)
	}
	end := start + len(lowerNeedle)

	b := strings.Builder{}
	b.WriteString(defaultStyle.Styled(string(hay[:start])))
	b.WriteString(defaultStyle.Underline().Styled(string(hay[start:end])))
	b.WriteString(defaultStyle.Styled(string(hay[end:])))
	return b.String()
}

func indexRunes(hay, needle []rune) int {
	for i := 0; i+len(needle) <= len(hay); i++ {
		match := true
		for j := range needle {
			if hay[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Normalize text to aid in the filtering process. In particular, we remove
// diacritics, "ö" becomes "o". Note that Mn is the unicode key for nonspacing
// marks.
func Normalize(in string) (string, error) {
	transformer := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(transformer, in)
	return out, err
}

func TruncateWithTail(txt string, width uint, ellipsis string) string {
	return truncate.StringWithTail(txt, width, ellipsis)
}
