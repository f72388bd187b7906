package engine

import (
	"fmt"
	"strings"
)

// Strict parsers for structured model output. Each parser either returns a
// fully populated result or an error; a result with a missing required
// field is never partially trusted.

// QuizSpec is a parsed multiple-choice quiz.
type QuizSpec struct {
	Question    string
	Choices     []string // rendered "A: ..." lines, in order
	Answer      string   // correct letter, upper case
	Explanation string
}

// ChallengeSpec is a parsed fill-the-gap challenge.
type ChallengeSpec struct {
	Context     string
	Answer      string
	Explanation string
}

// PhraseSpec is a parsed phrase-of-the-day.
type PhraseSpec struct {
	Phrase      string
	Translation string
	Explanation string
}

// ParseQuiz extracts QUESTION/A-D/ANSWER/EXPLANATION lines.
func ParseQuiz(text string) (QuizSpec, error) {
	var spec QuizSpec
	seen := map[string]bool{}
	for _, line := range structuredLines(text) {
		switch {
		case strings.HasPrefix(line, "QUESTION:"):
			spec.Question = strings.TrimSpace(strings.TrimPrefix(line, "QUESTION:"))
		case strings.HasPrefix(line, "ANSWER:"):
			spec.Answer = strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, "ANSWER:")))
		case strings.HasPrefix(line, "EXPLANATION:"):
			spec.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "EXPLANATION:"))
		default:
			for _, letter := range []string{"A:", "B:", "C:", "D:"} {
				if strings.HasPrefix(line, letter) && !seen[letter] {
					seen[letter] = true
					spec.Choices = append(spec.Choices, line)
				}
			}
		}
	}
	if spec.Question == "" || spec.Answer == "" || spec.Explanation == "" {
		return QuizSpec{}, fmt.Errorf("quiz output missing required fields")
	}
	if len(spec.Choices) < 2 {
		return QuizSpec{}, fmt.Errorf("quiz output has %d choices, need at least 2", len(spec.Choices))
	}
	if !seen[spec.Answer+":"] {
		return QuizSpec{}, fmt.Errorf("quiz answer %q does not match any choice", spec.Answer)
	}
	return spec, nil
}

// ParseChallenge extracts CONTEXT/ANSWER/EXPLANATION lines.
func ParseChallenge(text string) (ChallengeSpec, error) {
	var spec ChallengeSpec
	for _, line := range structuredLines(text) {
		switch {
		case strings.HasPrefix(line, "CONTEXT:"):
			spec.Context = strings.TrimSpace(strings.TrimPrefix(line, "CONTEXT:"))
		case strings.HasPrefix(line, "ANSWER:"):
			spec.Answer = strings.TrimSpace(strings.TrimPrefix(line, "ANSWER:"))
		case strings.HasPrefix(line, "EXPLANATION:"):
			spec.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "EXPLANATION:"))
		}
	}
	if spec.Context == "" || spec.Answer == "" || spec.Explanation == "" {
		return ChallengeSpec{}, fmt.Errorf("challenge output missing required fields")
	}
	return spec, nil
}

// ParsePhrase extracts PHRASE/TRANSLATION/EXPLANATION lines.
func ParsePhrase(text string) (PhraseSpec, error) {
	var spec PhraseSpec
	for _, line := range structuredLines(text) {
		switch {
		case strings.HasPrefix(line, "PHRASE:"):
			spec.Phrase = strings.TrimSpace(strings.TrimPrefix(line, "PHRASE:"))
		case strings.HasPrefix(line, "TRANSLATION:"):
			spec.Translation = strings.TrimSpace(strings.TrimPrefix(line, "TRANSLATION:"))
		case strings.HasPrefix(line, "EXPLANATION:"):
			spec.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "EXPLANATION:"))
		}
	}
	if spec.Phrase == "" || spec.Translation == "" || spec.Explanation == "" {
		return PhraseSpec{}, fmt.Errorf("phrase output missing required fields")
	}
	return spec, nil
}

// backendIntents are the labels the backend-assisted classifier may return.
var backendIntents = map[string]Kind{
	"question":         KindQuestion,
	"correction":       KindCorrection,
	"explain_sentence": KindExplainSentence,
	"chitchat":         KindChitChat,
}

// ParseIntentLabel parses INTENT/CONTENT lines from a backend-assisted
// classification. An unknown label or missing INTENT line is an error;
// callers degrade to the question intent.
func ParseIntentLabel(text string) (Kind, string, error) {
	var kind Kind
	var content string
	for _, line := range structuredLines(text) {
		switch {
		case strings.HasPrefix(line, "INTENT:"):
			label := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "INTENT:")))
			k, ok := backendIntents[label]
			if !ok {
				return "", "", fmt.Errorf("unknown intent label %q", label)
			}
			kind = k
		case strings.HasPrefix(line, "CONTENT:"):
			content = strings.TrimSpace(strings.TrimPrefix(line, "CONTENT:"))
		}
	}
	if kind == "" {
		return "", "", fmt.Errorf("classification output has no INTENT line")
	}
	return kind, content, nil
}

// structuredLines normalizes model output for prefix matching: code fences
// dropped, markdown emphasis around labels stripped, lines trimmed.
func structuredLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		line = strings.TrimLeft(line, "*_# ")
		out = append(out, line)
	}
	return out
}
