package text

import (
	"unicode"

	"github.com/tsawler/outliner/model"
)

// DetectScript classifies the dominant writing system of s. CJK runes win
// whenever they make up a fifth of the letters, because CJK documents
// routinely embed Latin acronyms and numerals that would otherwise tip the
// majority count.
func DetectScript(s string) model.Script {
	var latin, cjk, cyrillic, arabic, devanagari, letters int

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		switch {
		case unicode.Is(unicode.Han, r), unicode.Is(unicode.Hiragana, r),
			unicode.Is(unicode.Katakana, r), unicode.Is(unicode.Hangul, r):
			cjk++
		case unicode.Is(unicode.Latin, r):
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		case unicode.Is(unicode.Arabic, r):
			arabic++
		case unicode.Is(unicode.Devanagari, r):
			devanagari++
		}
	}

	if letters == 0 {
		return model.ScriptUnknown
	}
	if cjk*5 >= letters {
		return model.ScriptCJK
	}

	best := model.ScriptLatin
	bestCount := latin
	if cyrillic > bestCount {
		best, bestCount = model.ScriptCyrillic, cyrillic
	}
	if arabic > bestCount {
		best, bestCount = model.ScriptArabic, arabic
	}
	if devanagari > bestCount {
		best, bestCount = model.ScriptDevanagari, devanagari
	}
	if bestCount == 0 {
		return model.ScriptUnknown
	}
	return best
}

// CountWords returns the word count of s for the given script. Scripts
// without whitespace word boundaries substitute the letter count.
func CountWords(s string, script model.Script) int {
	if script == model.ScriptCJK {
		n := 0
		for _, r := range s {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				n++
			}
		}
		return n
	}
	n := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			n++
			inWord = true
		}
	}
	return n
}

// IsAllCaps reports whether every cased letter in s is uppercase. Returns
// false for scripts without letter case and for strings with no letters.
func IsAllCaps(s string, script model.Script) bool {
	if !script.HasLetterCase() {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		hasLetter = true
		if unicode.IsLower(r) {
			return false
		}
	}
	return hasLetter
}

// LetterRatio returns the fraction of runes in s that are letters
func LetterRatio(s string) float64 {
	total, letters := 0, 0
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}
