// Package summary produces short extractive summaries of document body
// text. Sentences are scored by the document-wide frequency of their
// significant words and the best few are returned in reading order.
package summary

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// Config holds the tunables for extractive summarization
type Config struct {
	// MaxSentences caps the number of sentences in the summary
	MaxSentences int

	// MinWords drops sentences with fewer words than this from
	// consideration
	MinWords int
}

// DefaultConfig returns the default summarizer configuration
func DefaultConfig() Config {
	return Config{
		MaxSentences: 3,
		MinWords:     5,
	}
}

// Summarizer selects the most representative sentences of a text
type Summarizer struct {
	config Config
}

// NewSummarizer creates a summarizer with the default configuration
func NewSummarizer() *Summarizer {
	return &Summarizer{config: DefaultConfig()}
}

// NewSummarizerWithConfig creates a summarizer with a custom configuration
func NewSummarizerWithConfig(config Config) *Summarizer {
	return &Summarizer{config: config}
}

type scoredSentence struct {
	index int
	text  string
	score float64
}

// Summarize returns up to MaxSentences sentences of body, chosen by the
// frequency of their significant words in the given language and joined
// in their original order. Returns the empty string when no sentence
// qualifies.
func (s *Summarizer) Summarize(body, language string) string {
	limit := s.config.MaxSentences
	if limit <= 0 {
		return ""
	}
	sentences := splitSentences(body)

	freq := make(map[string]int)
	for _, sent := range sentences {
		for _, w := range text.SignificantWords(sent, language) {
			freq[w]++
		}
	}
	if len(freq) == 0 {
		return ""
	}

	var scored []scoredSentence
	for i, sent := range sentences {
		if len(strings.Fields(sent)) < s.config.MinWords {
			continue
		}
		words := text.SignificantWords(sent, language)
		if len(words) == 0 {
			continue
		}
		var sum float64
		for _, w := range words {
			sum += float64(freq[w])
		}
		// Dampen length so long sentences do not win on bulk alone.
		scored = append(scored, scoredSentence{
			index: i,
			text:  sent,
			score: sum / math.Sqrt(float64(len(words))),
		})
	}
	if len(scored) == 0 {
		return ""
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	sort.Slice(scored, func(a, b int) bool {
		return scored[a].index < scored[b].index
	})

	parts := make([]string, len(scored))
	for i, sc := range scored {
		parts[i] = sc.text
	}
	return strings.Join(parts, " ")
}

// SummarizeBlocks summarizes the body text of merged blocks, skipping
// headings and recurring headers and footers.
func (s *Summarizer) SummarizeBlocks(blocks []*model.Block, language string) string {
	var b strings.Builder
	for _, block := range blocks {
		if block.HeaderFooter || block.Level != model.LevelNone {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(block.Text)
	}
	return s.Summarize(b.String(), language)
}

// splitSentences breaks s on sentence terminators, keeping decimal
// points inside their numbers. The terminator stays attached to its
// sentence; trailing text without one forms a final sentence.
func splitSentences(s string) []string {
	var out []string
	var b strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		b.WriteRune(r)
		if !isTerminator(r) {
			continue
		}
		if r == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		if sent := strings.TrimSpace(b.String()); sent != "" {
			out = append(out, sent)
		}
		b.Reset()
	}
	if sent := strings.TrimSpace(b.String()); sent != "" {
		out = append(out, sent)
	}
	return out
}

func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '。', '！', '？':
		return true
	}
	return false
}
