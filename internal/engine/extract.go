package engine

import (
	"strings"
	"unicode"
)

// Extractor pulls a target English sentence out of a free-form message.
// Candidates are tried in a fixed order: quoted text, then the last line of
// a multi-line message, then text following a known marker phrase. A
// candidate is only accepted if LooksEnglish says so; otherwise the caller
// falls back to the whole message.
type Extractor struct {
	LooksEnglish func(s string) bool
}

// quotePairs are tried in order. Straight single quotes are deliberately
// excluded: apostrophes ("don't", "it's") make them unreliable delimiters.
var quotePairs = [][2]rune{
	{'"', '"'},
	{'“', '”'}, // curly double
	{'‘', '’'}, // curly single
}

// markerPhrases are matched case-insensitively; the candidate sentence is
// whatever follows the phrase.
var markerPhrases = []string{
	"is this sentence correct",
	"is this correct",
	"please correct",
	"can you correct",
	"correct this sentence",
	"explain this sentence",
	"essa frase esta correta",
	"essa frase está correta",
	"a frase esta correta",
	"corrija a frase",
	"corrige a frase",
	"corrija essa frase",
	"corrige essa frase",
	"pode corrigir",
	"explica essa frase",
	"explique essa frase",
	"explica a frase",
	"me explica a frase",
}

// Extract returns the first acceptable candidate and true, or "" and false
// when nothing in the message independently qualifies as English.
func (e *Extractor) Extract(raw string) (string, bool) {
	if s, ok := e.fromQuotes(raw); ok {
		return s, true
	}
	if s, ok := e.fromLastLine(raw); ok {
		return s, true
	}
	if s, ok := e.fromMarkers(raw); ok {
		return s, true
	}
	return "", false
}

func (e *Extractor) fromQuotes(raw string) (string, bool) {
	for _, pair := range quotePairs {
		opener, closer := pair[0], pair[1]
		i := strings.IndexRune(raw, opener)
		if i < 0 {
			continue
		}
		rest := raw[i+len(string(opener)):]
		j := strings.IndexRune(rest, closer)
		if j < 0 {
			continue
		}
		candidate := strings.TrimSpace(rest[:j])
		if candidate != "" && e.LooksEnglish(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (e *Extractor) fromLastLine(raw string) (string, bool) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) < 2 {
		return "", false
	}
	last := lines[len(lines)-1]
	if e.LooksEnglish(last) {
		return last, true
	}
	return "", false
}

func (e *Extractor) fromMarkers(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, marker := range markerPhrases {
		i := strings.Index(lower, marker)
		if i < 0 {
			continue
		}
		candidate := raw[i+len(marker):]
		candidate = strings.TrimLeftFunc(candidate, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(":,.;?!-“”\"'", r)
		})
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && e.LooksEnglish(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// asciiAlphaHeavy is the recovery path for short strings the language
// detector mishandles: at least 3 alphabetic characters, of which at least
// 80% are ASCII letters. Explicitly approximate.
func asciiAlphaHeavy(s string) bool {
	alpha, ascii := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			alpha++
			if r < 128 {
				ascii++
			}
		}
	}
	return alpha >= 3 && ascii*100 >= alpha*80
}
