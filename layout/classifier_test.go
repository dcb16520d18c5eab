package layout

import (
	"fmt"
	"testing"

	"github.com/tsawler/outliner/model"
)

// classify runs enrichment, threshold computation, and the cascade over
// prebuilt blocks, returning the context for further assertions.
func classify(t *testing.T, blocks []*model.Block, doc *model.Document) *Context {
	t.Helper()
	common := NewEngine().Enrich(blocks, doc)
	th := ComputeThresholds(blocks, common, DefaultThresholdConfig())
	ctx := NewContext(doc, common, th, "en", DefaultClassifierConfig())
	NewClassifier().Classify(blocks, ctx)
	return ctx
}

func TestClassifyNumberedSectionGuaranteed(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("1. Introduction", 0, 72, 150, 130, 14, true),
		makeBlock("The committee reviewed all submissions received during the first quarterly assessment cycle this year.", 0, 72, 180, 468, 11, false),
		makeBlock("Further detail on the review procedure appears in the published assessment handbook for the year.", 0, 72, 195, 468, 11, false),
		makeBlock("Members submitted their findings before the deadline and discussed them at the plenary meeting.", 0, 72, 210, 468, 11, false),
	}

	classify(t, blocks, testDoc(1))

	if blocks[0].Level != model.LevelH1 {
		t.Errorf("Numbered section level = %v, want H1", blocks[0].Level)
	}
	if blocks[0].Method != "guaranteed" {
		t.Errorf("Method = %q, want guaranteed", blocks[0].Method)
	}
	for _, b := range blocks[1:] {
		if b.Level != model.LevelNone {
			t.Errorf("Body block %q classified as %v", b.Text[:20], b.Level)
		}
	}
}

func TestClassifyUniformProseYieldsNothing(t *testing.T) {
	var blocks []*model.Block
	for i := 0; i < 5; i++ {
		blocks = append(blocks, makeBlock(
			fmt.Sprintf("Paragraph number %d continues the uniform narrative without any visual emphasis whatsoever in the text.", i+1),
			0, 72, float64(100+i*30), 468, 11, false))
	}

	classify(t, blocks, testDoc(1))
	for _, b := range blocks {
		if b.Level != model.LevelNone {
			t.Errorf("Uniform prose block classified as %v", b.Level)
		}
	}
}

func TestClassifyStructuralBullets(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("• Risk assessment", 0, 72, 150, 150, 12, false),
		makeBlock("• Budget planning", 0, 72, 200, 150, 12, false),
		makeBlock("• Vendor selection", 0, 72, 250, 150, 12, false),
		makeBlock("• Delivery schedule", 0, 72, 300, 150, 12, false),
		makeBlock("• Quality control", 0, 72, 350, 150, 12, false),
		makeBlock("Connecting prose between the listed workstreams explains their dependencies in more detail here.", 0, 72, 420, 468, 12, false),
	}

	classify(t, blocks, testDoc(1))
	for _, b := range blocks[:5] {
		if b.Level != model.LevelH2 {
			t.Errorf("Bullet %q level = %v, want H2", b.Text, b.Level)
		}
		if b.Method != "structural" {
			t.Errorf("Bullet method = %q, want structural", b.Method)
		}
	}
	if blocks[5].Level != model.LevelNone {
		t.Errorf("Prose block classified as %v", blocks[5].Level)
	}
}

func TestClassifyHeuristicProminence(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("EXECUTIVE SUMMARY", 0, 216, 150, 180, 18, true),
		makeBlock("Operations performed above plan for the third consecutive quarter across every reporting segment.", 0, 72, 250, 468, 12, false),
		makeBlock("Revenue grew in both established markets and the two new territories entered this year.", 0, 72, 300, 468, 12, false),
		makeBlock("Costs held steady despite the logistics disruption experienced through the summer months.", 0, 72, 350, 468, 12, false),
	}

	classify(t, blocks, testDoc(1))
	if blocks[0].Level != model.LevelH1 {
		t.Errorf("Prominent block level = %v, want H1", blocks[0].Level)
	}
	if blocks[0].Method != "heuristic" {
		t.Errorf("Method = %q, want heuristic", blocks[0].Method)
	}
}

func TestClassifySameStyleSiblingsKeepLevel(t *testing.T) {
	// Two 18pt bold section heads under a 24pt document head must land on
	// the same level; equal-size successors are siblings, not children.
	blocks := []*model.Block{
		makeBlock("User Guide", 0, 72, 100, 140, 24, true),
		makeBlock("This guide walks through everything needed to get the product running.", 0, 72, 150, 468, 12, false),
		makeBlock("Each chapter covers one part of the setup in order from scratch.", 0, 72, 170, 468, 12, false),
		makeBlock("Installation", 0, 72, 230, 150, 18, true),
		makeBlock("Download the release archive and unpack it into the target tree.", 0, 72, 270, 468, 12, false),
		makeBlock("Verify the checksums before running anything from the archive.", 0, 72, 290, 468, 12, false),
		makeBlock("Configuration", 0, 72, 350, 160, 18, true),
		makeBlock("All options live in one file read once at startup from disk.", 0, 72, 390, 468, 12, false),
		makeBlock("Restart the service after any change for settings to take effect.", 0, 72, 410, 468, 12, false),
	}

	classify(t, blocks, testDoc(1))

	if blocks[0].Level != model.LevelH1 {
		t.Errorf("Document head = %v, want H1", blocks[0].Level)
	}
	if blocks[3].Level != model.LevelH2 {
		t.Errorf("First section head = %v, want H2", blocks[3].Level)
	}
	if blocks[6].Level != model.LevelH2 {
		t.Errorf("Second section head = %v, want H2 like its sibling", blocks[6].Level)
	}
}

func TestClassifyLengthDemotion(t *testing.T) {
	// Thirteen words: over the H1 cap of twelve, within the H2 cap.
	blocks := []*model.Block{
		makeBlock("One two six ten red blue sky sea sun ice oak elm fox", 0, 216, 150, 180, 18, true),
		makeBlock("Body paragraph one with enough words to look like running prose on the page.", 0, 72, 250, 468, 12, false),
		makeBlock("Body paragraph two with enough words to look like running prose on the page.", 0, 72, 300, 468, 12, false),
		makeBlock("Body paragraph three with enough words to look like running prose on the page.", 0, 72, 350, 468, 12, false),
	}

	classify(t, blocks, testDoc(1))
	if blocks[0].Level != model.LevelH2 {
		t.Errorf("Over-long candidate level = %v, want H2 after demotion", blocks[0].Level)
	}
}

func TestClassifyEligibilityGates(t *testing.T) {
	doc := testDoc(1)
	ctx := NewContext(doc, 12, Thresholds{H1: 18, H2: 16, H3: 14, H4: 13}, "en", DefaultClassifierConfig())
	c := NewClassifier()

	tests := []struct {
		name     string
		block    *model.Block
		eligible bool
	}{
		{"plain heading", makeBlock("Overview", 0, 72, 150, 100, 14, true), true},
		{"unmatched bracket", makeBlock("Results (continued", 0, 72, 150, 100, 14, true), false},
		{"function words only", makeBlock("and of the", 0, 72, 150, 100, 14, false), false},
		{"too many sentences", makeBlock("First point. Second point. Third point.", 0, 72, 150, 200, 14, false), false},
	}
	for _, tt := range tests {
		if got := c.Eligible(tt.block, ctx); got != tt.eligible {
			t.Errorf("%s: Eligible = %v, want %v", tt.name, got, tt.eligible)
		}
	}

	hf := makeBlock("Running header", 0, 72, 20, 100, 10, false)
	hf.HeaderFooter = true
	if c.Eligible(hf, ctx) {
		t.Error("Header/footer block should not be eligible")
	}

	excluded := makeBlock("Flagged paragraph", 0, 72, 150, 100, 12, false)
	excluded.ExcludedFromClassification = true
	if c.Eligible(excluded, ctx) {
		t.Error("Excluded block should not be eligible")
	}
}

func TestLenientScoreRelaxesFloors(t *testing.T) {
	// Bold short line at the common size: below every strict floor, above
	// the lenient ones.
	blocks := []*model.Block{
		makeBlock("Summary of findings", 0, 72, 150, 150, 12, true),
		makeBlock("Prose paragraph one filling out the page with perfectly ordinary running text content.", 0, 72, 250, 468, 12, false),
		makeBlock("Prose paragraph two filling out the page with perfectly ordinary running text content.", 0, 72, 300, 468, 12, false),
	}

	doc := testDoc(1)
	ctx := classify(t, blocks, doc)

	if blocks[0].Level != model.LevelNone {
		t.Fatalf("Strict pass accepted %v, expected rejection", blocks[0].Level)
	}

	level, score, ok := NewClassifier().LenientScore(blocks[0], ctx)
	if !ok {
		t.Fatalf("Lenient pass rejected (score %v)", score)
	}
	if !level.IsHeading() {
		t.Errorf("Lenient level = %v, want a heading level", level)
	}
}

func TestDetectDominantPatternSparse(t *testing.T) {
	// A single bullet cannot elect a dominant family.
	blocks := []*model.Block{
		makeBlock("• Lone bullet", 0, 72, 150, 120, 12, false),
		makeBlock("Prose paragraph follows the only bullet in the whole document here.", 0, 72, 250, 468, 12, false),
	}
	doc := testDoc(1)
	common := NewEngine().Enrich(blocks, doc)
	th := ComputeThresholds(blocks, common, DefaultThresholdConfig())
	ctx := NewContext(doc, common, th, "en", DefaultClassifierConfig())

	if got := detectDominantPattern(blocks, ctx); got != nil {
		t.Errorf("Dominant pattern = %v, want nil", got.family.name)
	}
}
