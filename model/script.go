package model

// Script classifies the dominant writing system of a block's text. It is
// computed once per block by the feature engine and threaded through the
// later stages, which adapt word counting, length bands, and casing checks
// to the script.
type Script int

const (
	ScriptUnknown Script = iota
	ScriptLatin
	ScriptCJK
	ScriptCyrillic
	ScriptArabic
	ScriptDevanagari
)

// String returns a lowercase name for the script
func (s Script) String() string {
	switch s {
	case ScriptLatin:
		return "latin"
	case ScriptCJK:
		return "cjk"
	case ScriptCyrillic:
		return "cyrillic"
	case ScriptArabic:
		return "arabic"
	case ScriptDevanagari:
		return "devanagari"
	default:
		return "unknown"
	}
}

// WordBoundaries reports whether the script delimits words with whitespace.
// For scripts without whitespace word boundaries the pipeline substitutes
// character counts for word counts.
func (s Script) WordBoundaries() bool {
	return s != ScriptCJK
}

// HasLetterCase reports whether the script distinguishes upper and lower
// case. All-caps detection only applies to cased scripts.
func (s Script) HasLetterCase() bool {
	switch s {
	case ScriptLatin, ScriptCyrillic:
		return true
	default:
		return false
	}
}
