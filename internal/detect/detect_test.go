package detect

import "testing"

func TestLinguaDetector(t *testing.T) {
	d := NewLinguaDetector("pt")

	tests := []struct {
		in   string
		want string
	}{
		{"I would like to improve my English grammar skills", "en"},
		{"Eu gostaria muito de aprender inglês rapidamente", "pt"},
		{"", "pt"}, // fallback on empty input
	}
	for _, tt := range tests {
		if got := d.Detect(tt.in); got != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectorFunc(t *testing.T) {
	f := Func(func(string) string { return "en" })
	if f.Detect("qualquer coisa") != "en" {
		t.Fatal("Func adapter did not delegate")
	}
}
