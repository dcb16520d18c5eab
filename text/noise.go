package text

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern   = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+|\b\S+\.(?:com|org|net|edu|gov|io)\b`)
	emailPattern = regexp.MustCompile(`(?i)\b[\w.+-]+@[\w-]+\.[\w.]+\b`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*\d{1,2}[./-]\d{1,2}[./-]\d{2,4}\s*$`),
		regexp.MustCompile(`^\s*\d{4}[./-]\d{1,2}[./-]\d{1,2}\s*$`),
		regexp.MustCompile(`(?i)^\s*(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2}(?:\s*,)?\s+\d{4}\s*$`),
		regexp.MustCompile(`(?i)^\s*\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}\s*$`),
	}

	timePattern = regexp.MustCompile(`(?i)^\s*\d{1,2}:\d{2}(?::\d{2})?\s*(?:am|pm)?\s*$`)

	pageMarkerPattern = regexp.MustCompile(`(?i)^\s*(?:page|p\.?|pg\.?|seite|стр\.?)\s*\d+(?:\s*(?:of|/|von|из)\s*\d+)?\s*$`)

	figureMarkerPattern = regexp.MustCompile(`(?i)^\s*(?:fig(?:ure)?|table|tab|abb(?:ildung)?)\.?\s*\d+\s*[.:]?\s*$`)

	zipAddressPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b|\b(?:street|avenue|blvd|suite|apt)\b`)
)

// IsStandaloneDate reports whether s is nothing but a date expression
func IsStandaloneDate(s string) bool {
	for _, p := range datePatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// IsStandaloneTime reports whether s is nothing but a time expression
func IsStandaloneTime(s string) bool {
	return timePattern.MatchString(s)
}

// IsPageMarker reports whether s is a bare page or figure reference
func IsPageMarker(s string) bool {
	return pageMarkerPattern.MatchString(s) || figureMarkerPattern.MatchString(s)
}

// LooksLikeAddress reports whether s contains postal-address fragments
// (ZIP codes, street designators). Used by the title selector.
func LooksLikeAddress(s string) bool {
	return zipAddressPattern.MatchString(strings.ToLower(s))
}

// HasRepeatedFragments reports whether s shows the internal word or prefix
// repetition typical of extraction artifacts ("RFP: R RFP: Re RFP: Request").
func HasRepeatedFragments(s string) bool {
	words := strings.Fields(strings.ToLower(s))
	if len(words) < 3 {
		return false
	}

	counts := make(map[string]int)
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?")
		if len(w) < 2 {
			continue
		}
		counts[w]++
	}
	for _, n := range counts {
		if n >= 3 {
			return true
		}
	}

	// Prefix chains: each word a strict prefix of a later repeat of the
	// first word.
	chain := 0
	for i := 1; i < len(words); i++ {
		if strings.HasPrefix(words[i], words[i-1]) && words[i] != words[i-1] {
			chain++
			if chain >= 2 {
				return true
			}
		} else {
			chain = 0
		}
	}
	return false
}

// IsUninformative applies the rejection rules for text that should never
// become a heading: URLs, emails, bare dates and times, page and figure
// markers, symbol-only strings, lone stop words, and strings with too
// little letter content to mean anything.
func IsUninformative(s, lang string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}

	if urlPattern.MatchString(trimmed) || emailPattern.MatchString(trimmed) {
		return true
	}
	if IsStandaloneDate(trimmed) || IsStandaloneTime(trimmed) {
		return true
	}
	if IsPageMarker(trimmed) {
		return true
	}

	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return true
	}

	words := strings.Fields(trimmed)
	if len(words) == 1 && IsStopWord(words[0], lang) {
		return true
	}

	if HasRepeatedFragments(trimmed) {
		return true
	}

	// Mostly symbols or digits with a stray letter.
	if len([]rune(trimmed)) >= 4 && LetterRatio(trimmed) < 0.3 {
		return true
	}

	return false
}

// IsFunctionFragment reports whether s is a short fragment made entirely of
// function words ("and the", "of the"), a common mid-sentence extraction
// artifact.
func IsFunctionFragment(s, lang string) bool {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	for _, w := range words {
		if !IsStopWord(strings.Trim(w, ".,;:"), lang) {
			return false
		}
	}
	return true
}
