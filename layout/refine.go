package layout

import (
	"strings"
	"unicode"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/nlp"
	"github.com/tsawler/outliner/text"
)

// Refiner re-examines accepted headings with linguistic signals. It is
// optional: a nil analyzer makes Refine a no-op, degrading precision but
// never failing.
type Refiner struct {
	analyzer nlp.Analyzer
}

// NewRefiner creates a refiner around an analyzer; nil is allowed
func NewRefiner(analyzer nlp.Analyzer) *Refiner {
	return &Refiner{analyzer: analyzer}
}

// Refine demotes grammatically complete sentences posing as headings,
// rejects function-word-only headings, and merges adjacent fragments that
// are one split heading. Analysis is batched once per document.
func (r *Refiner) Refine(blocks []*model.Block, ctx *Context) {
	if r == nil || r.analyzer == nil {
		return
	}

	var headings []*model.Block
	for _, b := range blocks {
		if b.Level.IsHeading() {
			headings = append(headings, b)
		}
	}
	if len(headings) == 0 {
		return
	}

	texts := make([]string, len(headings))
	for i, b := range headings {
		texts[i] = b.Text
	}
	analyses := r.analyzer.Analyze(texts)
	if len(analyses) != len(headings) {
		return
	}

	for i, b := range headings {
		a := analyses[i]

		if a.AllFunctionWords() {
			b.Level = model.LevelNone
			b.Method = ""
			continue
		}

		// A verb-bearing complete sentence without visual emphasis is
		// prose, not a heading.
		if a.HasVerb() && a.Sentences >= 1 && b.Features.WordCount >= 8 &&
			!b.Bold && b.Features.FontRatio < 1.1 {
			b.Level = model.LevelNone
			b.Method = ""
		}
	}

	r.mergeSplitHeadings(blocks)
}

// mergeSplitHeadings joins adjacent same-page heading fragments that read
// as one heading: the first has no terminal punctuation and the second
// continues in lowercase, with matching level and size.
func (r *Refiner) mergeSplitHeadings(blocks []*model.Block) {
	var prev *model.Block
	for _, b := range blocks {
		if !b.Level.IsHeading() {
			if !b.HeaderFooter {
				prev = nil
			}
			continue
		}
		if prev != nil && prev.Page == b.Page && prev.Level == b.Level &&
			abs(prev.FontSize-b.FontSize) <= 0.5 &&
			!text.EndsSentence(prev.Text) &&
			startsLower(b.Text) {
			prev.Text = text.CollapseWhitespace(prev.Text + " " + b.Text)
			prev.BBox = prev.BBox.Union(b.BBox)
			prev.Features.WordCount += b.Features.WordCount
			b.Level = model.LevelNone
			b.Method = ""
			continue
		}
		prev = b
	}
}

func startsLower(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
