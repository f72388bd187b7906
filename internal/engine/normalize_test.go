package engine

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Diferença", "diferenca"},
		{"  EXPLICAÇÃO  ", "explicacao"},
		{"Olá!", "ola!"},
		{"hello", "hello"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := fold(tt.in); got != tt.want {
			t.Errorf("fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		text string
		word string
		want bool
	}{
		{"what do i do", "do", true},
		{"my dog barks", "do", false},
		{"use make here", "make", true},
		{"homemaker", "make", false},
		{"for two years", "for", true},
		{"before noon", "for", false},
		{"don't stop", "don't", true},
		{"", "do", false},
	}
	for _, tt := range tests {
		if got := containsWord(tt.text, tt.word); got != tt.want {
			t.Errorf("containsWord(%q, %q) = %v, want %v", tt.text, tt.word, got, tt.want)
		}
	}
}

func TestContainsAny(t *testing.T) {
	if !containsAny("qual a diferenca entre make e do", []string{"diferenca", "difference"}) {
		t.Error("expected match on diferenca")
	}
	if containsAny("hello world", []string{"diferenca", "difference"}) {
		t.Error("unexpected match")
	}
}
