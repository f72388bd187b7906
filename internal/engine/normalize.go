package engine

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper removes combining marks after NFD decomposition, so
// "diferença" and "diferenca" normalize to the same keyword.
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases, trims and accent-strips text for keyword matching.
// Every classifier and knowledge-base rule matches against folded text.
func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// containsWord reports whether folded text contains w as a whole word.
// Substring matching is wrong for short function words like "do" and "for".
func containsWord(folded, w string) bool {
	start := 0
	for {
		i := strings.Index(folded[start:], w)
		if i < 0 {
			return false
		}
		i += start
		before := i == 0 || !isWordRune(rune(folded[i-1]))
		afterIdx := i + len(w)
		after := afterIdx >= len(folded) || !isWordRune(rune(folded[afterIdx]))
		if before && after {
			return true
		}
		start = i + 1
	}
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
