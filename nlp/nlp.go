// Package nlp defines the optional linguistic-analysis collaborator used
// by the heading refinement pass.
//
// The pipeline works without it; supplying an [Analyzer] only improves
// precision. The built-in [RuleAnalyzer] is a small heuristic tagger that
// covers the distinctions the refinement pass actually branches on: is
// there a finite verb, is everything a function word, where do sentences
// end, and which words look like proper nouns.
package nlp

import (
	"strings"
	"unicode"
)

// PartOfSpeech is a coarse universal tag
type PartOfSpeech string

const (
	POSNoun     PartOfSpeech = "NOUN"
	POSProper   PartOfSpeech = "PROPN"
	POSVerb     PartOfSpeech = "VERB"
	POSFunction PartOfSpeech = "FUNC"
	POSNumber   PartOfSpeech = "NUM"
	POSPunct    PartOfSpeech = "PUNCT"
	POSOther    PartOfSpeech = "X"
)

// Token is one analyzed word
type Token struct {
	Text string
	POS  PartOfSpeech
}

// Analysis is the result for one input string
type Analysis struct {
	Tokens []Token

	// Sentences is the number of complete sentences detected
	Sentences int

	// Entities are spans judged to be named entities
	Entities []string
}

// HasVerb reports whether any token was tagged as a verb
func (a Analysis) HasVerb() bool {
	for _, t := range a.Tokens {
		if t.POS == POSVerb {
			return true
		}
	}
	return false
}

// AllFunctionWords reports whether every word token is a function word
func (a Analysis) AllFunctionWords() bool {
	sawWord := false
	for _, t := range a.Tokens {
		if t.POS == POSPunct {
			continue
		}
		sawWord = true
		if t.POS != POSFunction {
			return false
		}
	}
	return sawWord
}

// Analyzer is the linguistic-analysis collaborator. Analyze processes a
// batch of strings and returns one Analysis per input, in order. It is
// best-effort and never fails; a host wrapping an external service should
// degrade to empty analyses rather than error.
type Analyzer interface {
	Analyze(texts []string) []Analysis
}

// function words and auxiliaries for the rule tagger (English-biased;
// other languages degrade to noun-heavy tagging, which the refinement
// pass treats as neutral)
var functionWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "in": true, "on": true, "at": true, "to": true, "for": true,
	"with": true, "by": true, "from": true, "as": true, "if": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "than": true, "then": true, "so": true, "not": true,
	"no": true, "is": true, "are": true,
}

var auxiliaryVerbs = map[string]bool{
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"has": true, "have": true, "had": true, "will": true, "would": true,
	"can": true, "could": true, "shall": true, "should": true, "may": true,
	"might": true, "must": true, "does": true, "did": true, "do": true,
}

// RuleAnalyzer is a heuristic [Analyzer] with no external dependencies
type RuleAnalyzer struct{}

// Analyze implements [Analyzer]
func (RuleAnalyzer) Analyze(texts []string) []Analysis {
	out := make([]Analysis, len(texts))
	for i, s := range texts {
		out[i] = analyzeOne(s)
	}
	return out
}

func analyzeOne(s string) Analysis {
	var a Analysis
	words := strings.Fields(s)

	for idx, raw := range words {
		w := strings.Trim(raw, ".,;:!?()[]{}\"'")
		if w == "" {
			a.Tokens = append(a.Tokens, Token{Text: raw, POS: POSPunct})
			continue
		}
		lower := strings.ToLower(w)

		var pos PartOfSpeech
		switch {
		case isNumeric(w):
			pos = POSNumber
		case functionWords[lower]:
			pos = POSFunction
		case auxiliaryVerbs[lower]:
			pos = POSVerb
		case looksVerbal(lower):
			pos = POSVerb
		case idx > 0 && startsUpper(w):
			pos = POSProper
			a.Entities = append(a.Entities, w)
		default:
			pos = POSNoun
		}
		a.Tokens = append(a.Tokens, Token{Text: w, POS: pos})
	}

	a.Sentences = countSentences(s)
	return a
}

func isNumeric(w string) bool {
	hasDigit := false
	for _, r := range w {
		if unicode.IsDigit(r) {
			hasDigit = true
		} else if r != '.' && r != ',' && r != '%' {
			return false
		}
	}
	return hasDigit
}

func startsUpper(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// looksVerbal applies English inflection heuristics. Gerunds and
// participles double as nouns and adjectives, so only -ed forms and
// common -ing verbs after length checks count.
func looksVerbal(w string) bool {
	if len(w) >= 5 && strings.HasSuffix(w, "ed") && !strings.HasSuffix(w, "eed") {
		return true
	}
	if len(w) >= 7 && strings.HasSuffix(w, "ing") {
		return true
	}
	if len(w) >= 6 && (strings.HasSuffix(w, "izes") || strings.HasSuffix(w, "ises") ||
		strings.HasSuffix(w, "ates")) {
		return true
	}
	return false
}

func countSentences(s string) int {
	n := 0
	runes := []rune(s)
	for i, r := range runes {
		switch r {
		case '.', '!', '?', '。', '！', '？':
			if r == '.' && i > 0 && i < len(runes)-1 &&
				unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				continue
			}
			n++
		}
	}
	return n
}
