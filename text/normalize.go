package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace replaces every run of whitespace in s with a single
// space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize applies NFC normalization and whitespace collapsing. Extraction
// sources disagree about composed vs decomposed forms; normalizing once up
// front keeps every later string comparison honest.
func Normalize(s string) string {
	return CollapseWhitespace(norm.NFC.String(s))
}

// NormalizeTitle cleans a winning title candidate for emission: quotes and
// stray punctuation stripped, whitespace collapsed, capitalization fixed
// for all-lowercase Latin text.
func NormalizeTitle(s string, lang string) string {
	s = Normalize(s)
	s = strings.Trim(s, "\"'“”‘’«» \t")
	s = strings.TrimRight(s, ".,;:-–")
	s = CollapseWhitespace(s)
	if s == "" {
		return s
	}

	// Only repair casing when the candidate has no uppercase at all;
	// mixed case is presumed intentional.
	hasUpper := false
	hasLower := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if hasLower && !hasUpper {
		tag, err := language.Parse(lang)
		if err != nil {
			tag = language.English
		}
		s = cases.Title(tag).String(s)
	}
	return s
}

// TitleFromFilename derives a readable title from a file base name by
// splitting camelCase, snake_case, and kebab-case and title-casing the
// words. Returns "" when nothing word-like survives.
func TitleFromFilename(base string, lang string) string {
	// Drop a trailing extension.
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	var b strings.Builder
	var prev rune
	for _, r := range base {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}

	words := strings.Fields(b.String())
	if len(words) == 0 {
		return ""
	}

	// A name that is one opaque alphanumeric code ("E0H1CM114") is not a
	// title; require at least one word with three letters in a row.
	wordLike := false
	for _, w := range words {
		letters := 0
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
				if letters >= 3 {
					wordLike = true
					break
				}
			} else {
				letters = 0
			}
		}
		if wordLike {
			break
		}
	}
	if !wordLike {
		return ""
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return cases.Title(tag).String(strings.ToLower(strings.Join(words, " ")))
}
