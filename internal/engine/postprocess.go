package engine

import (
	"regexp"
	"strings"
)

// Backend replies tend to open with a salutation and to append a labeled
// motivation line even when told not to. Both are stripped before the text
// is used as the reply body.

var motivationLabelRe = regexp.MustCompile(`(?im)^\s*\**\s*(?:motiv[aá][cç][aã]o|motivation)\s*\**\s*:\s*\**\s*`)

var greetingPrefixRe = regexp.MustCompile(`^\s*(?i:ol[áa]|oi|hello|hi|hey)(?:$|[\s!,.…]+)[🙂😊👋🤝👍🤗🥳✨]*\s*-?\s*`)

// CleanReply strips greeting boilerplate and motivation labels from backend
// output. The greeting is only removed once, at the very start.
func CleanReply(text string) string {
	text = motivationLabelRe.ReplaceAllString(text, "")
	if loc := greetingPrefixRe.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	return strings.TrimSpace(text)
}
