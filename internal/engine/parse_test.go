package engine

import "testing"

func TestParseQuiz(t *testing.T) {
	out := "```\n" +
		"**QUESTION:** Choose the correct sentence.\n" +
		"A: She don't like coffee.\n" +
		"B: She doesn't like coffee.\n" +
		"C: She not like coffee.\n" +
		"D: She doesn't likes coffee.\n" +
		"ANSWER: b\n" +
		"EXPLANATION: Third person singular takes doesn't + base verb.\n" +
		"```"

	spec, err := ParseQuiz(out)
	if err != nil {
		t.Fatalf("ParseQuiz: %v", err)
	}
	if spec.Question != "Choose the correct sentence." {
		t.Errorf("Question = %q", spec.Question)
	}
	if spec.Answer != "B" {
		t.Errorf("Answer = %q, want B", spec.Answer)
	}
	if len(spec.Choices) != 4 {
		t.Errorf("got %d choices, want 4", len(spec.Choices))
	}
	if spec.Explanation == "" {
		t.Error("Explanation is empty")
	}
}

func TestParseQuizRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing answer", "QUESTION: q?\nA: one\nB: two\nEXPLANATION: e"},
		{"missing explanation", "QUESTION: q?\nA: one\nB: two\nANSWER: A"},
		{"single choice", "QUESTION: q?\nA: one\nANSWER: A\nEXPLANATION: e"},
		{"answer not a choice", "QUESTION: q?\nA: one\nB: two\nANSWER: D\nEXPLANATION: e"},
		{"free prose", "Sure! Here's a quiz about verbs for you."},
	}
	for _, tt := range tests {
		if _, err := ParseQuiz(tt.in); err == nil {
			t.Errorf("%s: ParseQuiz accepted invalid output", tt.name)
		}
	}
}

func TestParseChallenge(t *testing.T) {
	out := "CONTEXT: I have lived here ___ 2019.\nANSWER: since\nEXPLANATION: Since marks the starting point."
	spec, err := ParseChallenge(out)
	if err != nil {
		t.Fatalf("ParseChallenge: %v", err)
	}
	if spec.Answer != "since" {
		t.Errorf("Answer = %q, want since", spec.Answer)
	}

	if _, err := ParseChallenge("CONTEXT: incomplete"); err == nil {
		t.Error("ParseChallenge accepted output without answer")
	}
}

func TestParsePhrase(t *testing.T) {
	out := "PHRASE: Break a leg!\nTRANSLATION: Boa sorte!\nEXPLANATION: An idiom wishing good luck."
	spec, err := ParsePhrase(out)
	if err != nil {
		t.Fatalf("ParsePhrase: %v", err)
	}
	if spec.Phrase != "Break a leg!" || spec.Translation != "Boa sorte!" {
		t.Errorf("spec = %+v", spec)
	}

	if _, err := ParsePhrase("PHRASE: alone"); err == nil {
		t.Error("ParsePhrase accepted output without translation")
	}
}

func TestParseIntentLabel(t *testing.T) {
	kind, content, err := ParseIntentLabel("INTENT: correction\nCONTENT: I goes home")
	if err != nil {
		t.Fatalf("ParseIntentLabel: %v", err)
	}
	if kind != KindCorrection || content != "I goes home" {
		t.Errorf("got (%v, %q)", kind, content)
	}

	if _, _, err := ParseIntentLabel("INTENT: poetry"); err == nil {
		t.Error("accepted unknown intent label")
	}
	if _, _, err := ParseIntentLabel("CONTENT: orphan content"); err == nil {
		t.Error("accepted output without INTENT line")
	}
}
