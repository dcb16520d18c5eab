// Package lang defines the language-identification collaborator interface
// used by the outline pipeline, plus a dependency-free default detector.
//
// The pipeline only needs a coarse language code to pick stop-word sets and
// length budgets. Hosts with a real language identifier plug it in through
// [Detector]; the built-in [ScriptDetector] guesses from the dominant
// writing system, which is enough for the script-split decisions the
// pipeline makes.
package lang

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// Fallback is the language code used when detection fails or reports low
// confidence.
const Fallback = "en"

// MinConfidence is the detection confidence below which the pipeline
// discards the detected language and uses [Fallback].
const MinConfidence = 0.6

// Detector identifies the language of a bounded text sample. Confidence is
// in [0, 1]; callers treat results below [MinConfidence] as unusable.
type Detector interface {
	Detect(sample string) (code string, confidence float64)
}

// ScriptDetector guesses a language from the dominant writing system of the
// sample. It can never distinguish languages sharing a script, so Latin
// text is always reported as English with modest confidence.
type ScriptDetector struct{}

// Detect implements [Detector]
func (ScriptDetector) Detect(sample string) (string, float64) {
	switch text.DetectScript(sample) {
	case model.ScriptCJK:
		return "ja", 0.7
	case model.ScriptCyrillic:
		return "ru", 0.7
	case model.ScriptArabic:
		return "ar", 0.7
	case model.ScriptDevanagari:
		return "hi", 0.7
	case model.ScriptLatin:
		return "en", 0.65
	default:
		return Fallback, 0.0
	}
}

// Resolve runs the detector over a sample and returns a normalized BCP-47
// base code, falling back to [Fallback] on low confidence, failure, or an
// unparseable tag. A nil detector is allowed and yields the fallback.
func Resolve(d Detector, sample string) string {
	if d == nil || strings.TrimSpace(sample) == "" {
		return Fallback
	}
	code, conf := d.Detect(sample)
	if conf < MinConfidence || code == "" {
		return Fallback
	}
	tag, err := language.Parse(code)
	if err != nil {
		return Fallback
	}
	base, _ := tag.Base()
	return base.String()
}
