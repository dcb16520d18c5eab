package text

import (
	"regexp"
	"strings"
)

var (
	arabicNumberMarker = regexp.MustCompile(`^\d{1,3}(?:\.\d{1,3}){0,3}[.)]?\s`)
	romanMarker        = regexp.MustCompile(`^(?:[IVXLC]{1,7}|[ivxlc]{1,7})[.)]\s`)
	letterMarker       = regexp.MustCompile(`^[A-Za-z][.)]\s`)
	parenMarker        = regexp.MustCompile(`^\(\s*(?:\d{1,3}|[a-z]|[ivxlc]{1,5})\s*\)\s`)
	cjkChapterMarker   = regexp.MustCompile(`^第[0-9一二三四五六七八九十百]+[章节節回部]`)
)

var bulletRunes = map[rune]bool{
	'•': true, '◦': true, '▪': true, '‣': true, '·': true,
	'–': true, '—': true, '*': true, '○': true, '●': true,
}

// StartsNumbered reports whether s opens with a section number, lettered or
// roman marker, parenthesized index, CJK chapter marker, or bullet.
func StartsNumbered(s string) bool {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return false
	}
	if bulletRunes[[]rune(s)[0]] {
		return true
	}
	return arabicNumberMarker.MatchString(s) ||
		romanMarker.MatchString(s) ||
		letterMarker.MatchString(s) ||
		parenMarker.MatchString(s) ||
		cjkChapterMarker.MatchString(s)
}

// NumberingDepth returns the depth of a dotted section number prefix
// ("2.1.3 Title" is depth 3). Returns 0 when s has no such prefix.
func NumberingDepth(s string) int {
	s = strings.TrimLeft(s, " \t")
	m := regexp.MustCompile(`^(\d{1,3}(?:\.\d{1,3}){0,3})[.)]?\s`).FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	return strings.Count(m[1], ".") + 1
}

// IsShortMarker reports whether s is nothing but a list or numbering
// marker, the kind that merges with its continuation on the next span.
func IsShortMarker(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if len([]rune(s)) > 6 {
		return false
	}
	if r := []rune(s)[0]; bulletRunes[r] && len([]rune(s)) == 1 {
		return true
	}
	padded := s + " "
	return arabicNumberMarker.MatchString(padded) ||
		romanMarker.MatchString(padded) ||
		letterMarker.MatchString(padded) ||
		parenMarker.MatchString(padded)
}
