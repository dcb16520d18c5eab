package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// bracketPairs maps opening brackets to their closers, including the
// full-width CJK variants extraction sources emit.
var bracketPairs = map[rune]rune{
	'(': ')', '[': ']', '{': '}',
	'（': '）', '【': '】', '「': '」', '『': '』',
}

var closingBrackets = func() map[rune]bool {
	m := make(map[rune]bool, len(bracketPairs))
	for _, c := range bracketPairs {
		m[c] = true
	}
	return m
}()

// sentence terminators per script family
var terminators = map[rune]bool{
	'.': true, '!': true, '?': true,
	'。': true, '！': true, '？': true,
	'؟': true, '।': true, '॥': true,
}

// EndsSentence reports whether s ends with a terminal punctuation mark for
// any supported script, ignoring trailing quotes and closing brackets.
func EndsSentence(s string) bool {
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\'' || r == '”' ||
			r == '’' || closingBrackets[r]
	})
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return terminators[r]
}

// EndsWithHyphen reports whether s ends mid-word with a hyphenation mark
func EndsWithHyphen(s string) bool {
	s = strings.TrimRight(s, " \t")
	if len(s) < 2 {
		return false
	}
	r, size := utf8.DecodeLastRuneInString(s)
	if r != '-' && r != '­' {
		return false
	}
	// A hyphen only continues a word if a letter precedes it.
	prev, _ := utf8.DecodeLastRuneInString(s[:len(s)-size])
	return unicode.IsLetter(prev)
}

// TerminatorCount returns the number of sentence terminators in s.
// Decimal points inside numbers are not counted.
func TerminatorCount(s string) int {
	runes := []rune(s)
	n := 0
	for i, r := range runes {
		if !terminators[r] {
			continue
		}
		if r == '.' && i > 0 && i < len(runes)-1 &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		n++
	}
	return n
}

// UnmatchedOpenBracket returns the closer for the deepest unmatched opening
// bracket in s, or 0 when all brackets are balanced.
func UnmatchedOpenBracket(s string) rune {
	var stack []rune
	for _, r := range s {
		if closer, ok := bracketPairs[r]; ok {
			stack = append(stack, closer)
			continue
		}
		if closingBrackets[r] && len(stack) > 0 && stack[len(stack)-1] == r {
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) == 0 {
		return 0
	}
	return stack[len(stack)-1]
}

// HasUnmatchedBrackets reports whether s contains an unclosed opening
// bracket or a stray closer.
func HasUnmatchedBrackets(s string) bool {
	var stack []rune
	for _, r := range s {
		if closer, ok := bracketPairs[r]; ok {
			stack = append(stack, closer)
			continue
		}
		if closingBrackets[r] {
			if len(stack) == 0 || stack[len(stack)-1] != r {
				return true
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) > 0
}

// StartsContinuation reports whether s begins the way a sentence
// continuation does: lowercase letter, digit, or an opening bracket.
func StartsContinuation(s string) bool {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if _, ok := bracketPairs[r]; ok {
		return true
	}
	return unicode.IsLower(r) || unicode.IsDigit(r)
}

// OpensBracket reports whether the last rune of s is an opening bracket
func OpensBracket(s string) bool {
	if s == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	_, ok := bracketPairs[r]
	return ok
}

// NeedsNoSpaceBefore reports whether joining text onto a candidate should
// omit the separating space because next begins with closing punctuation.
func NeedsNoSpaceBefore(next string) bool {
	if next == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(next)
	return closingBrackets[r] || r == ',' || r == '.' || r == ';' ||
		r == ':' || r == '!' || r == '?' || r == '%'
}
