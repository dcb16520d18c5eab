package layout

import (
	"testing"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/nlp"
)

func refinable(txt string, level model.Level, words int, ratio float64, bold bool) *model.Block {
	b := makeBlock(txt, 0, 72, 100, 300, 12, bold)
	b.Level = level
	b.Method = "heuristic"
	b.Features.WordCount = words
	b.Features.FontRatio = ratio
	return b
}

func TestRefineDemotesCompleteSentence(t *testing.T) {
	b := refinable("The committee reviewed the budget and approved the final allocation.", model.LevelH2, 10, 1.0, false)

	NewRefiner(nlp.RuleAnalyzer{}).Refine([]*model.Block{b}, nil)

	if b.Level != model.LevelNone {
		t.Errorf("Verb-bearing sentence kept level %v", b.Level)
	}
}

func TestRefineKeepsNounPhrase(t *testing.T) {
	b := refinable("Budget Allocation Overview", model.LevelH2, 3, 1.2, true)

	NewRefiner(nlp.RuleAnalyzer{}).Refine([]*model.Block{b}, nil)

	if b.Level != model.LevelH2 {
		t.Errorf("Noun phrase heading demoted to %v", b.Level)
	}
}

func TestRefineKeepsEmphasizedSentence(t *testing.T) {
	// Verb-bearing, but bold: visual emphasis outweighs grammar.
	b := refinable("The board approved the new strategy for expansion this year.", model.LevelH2, 10, 1.3, true)

	NewRefiner(nlp.RuleAnalyzer{}).Refine([]*model.Block{b}, nil)

	if b.Level != model.LevelH2 {
		t.Errorf("Bold sentence demoted to %v", b.Level)
	}
}

func TestRefineRejectsFunctionWords(t *testing.T) {
	b := refinable("And then of the", model.LevelH3, 4, 1.5, true)

	NewRefiner(nlp.RuleAnalyzer{}).Refine([]*model.Block{b}, nil)

	if b.Level != model.LevelNone {
		t.Errorf("Function-word heading kept level %v", b.Level)
	}
}

func TestRefineMergesSplitHeading(t *testing.T) {
	first := refinable("Overview of the", model.LevelH2, 3, 1.2, true)
	second := refinable("annual budget process", model.LevelH2, 3, 1.2, true)
	second.BBox = model.BBox{X0: 72, Top: 116, X1: 300, Bottom: 128}
	blocks := []*model.Block{first, second}

	NewRefiner(nlp.RuleAnalyzer{}).Refine(blocks, nil)

	if first.Text != "Overview of the annual budget process" {
		t.Errorf("Merged text = %q", first.Text)
	}
	if second.Level != model.LevelNone {
		t.Errorf("Absorbed fragment kept level %v", second.Level)
	}
	if first.Level != model.LevelH2 {
		t.Errorf("Merged heading level = %v, want H2", first.Level)
	}
}

func TestRefineNilAnalyzer(t *testing.T) {
	b := refinable("The committee reviewed the budget and approved the final allocation.", model.LevelH2, 10, 1.0, false)

	NewRefiner(nil).Refine([]*model.Block{b}, nil)

	if b.Level != model.LevelH2 {
		t.Errorf("Nil analyzer changed level to %v", b.Level)
	}
}
