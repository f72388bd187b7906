// Package detect wraps coarse language identification for inbound messages.
// Detection is best-effort: callers always get a usable tag back, never an
// error, because the dialogue pipeline must not fail on ambiguous input.
package detect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector maps free text to a lowercase ISO 639-1 language tag ("pt", "en").
type Detector interface {
	Detect(text string) string
}

// LinguaDetector detects languages with the lingua statistical models,
// restricted to the languages the tutor actually serves plus near neighbors
// that show up in mixed Brazilian Portuguese input.
type LinguaDetector struct {
	detector lingua.LanguageDetector
	fallback string
}

// NewLinguaDetector builds a detector that falls back to fallbackLang when
// the models cannot make a call (very short or mixed strings).
func NewLinguaDetector(fallbackLang string) *LinguaDetector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Portuguese,
			lingua.Spanish,
		).
		Build()
	if fallbackLang == "" {
		fallbackLang = "pt"
	}
	return &LinguaDetector{detector: d, fallback: fallbackLang}
}

// Detect returns the detected language tag, or the fallback when detection
// is inconclusive.
func (d *LinguaDetector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return d.fallback
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return d.fallback
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Func adapts a plain function to the Detector interface. Used by tests to
// pin detection results.
type Func func(text string) string

// Detect calls f.
func (f Func) Detect(text string) string { return f(text) }
