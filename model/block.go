package model

import "sort"

// Features holds the per-block measurements computed by the feature engine.
// Every field has a safe zero value; a block with empty Features is simply
// an unexamined block, never an error.
type Features struct {
	// FontRatio is the block font size divided by the document common size
	FontRatio float64

	// FontDelta is the block font size minus the document common size
	FontDelta float64

	// SizeRank is the block's rank among distinct font sizes in the
	// document (0 = largest)
	SizeRank int

	// WordCount is the number of words; for scripts without whitespace
	// word boundaries this is the character count
	WordCount int

	// CharCount is the number of runes in the trimmed text
	CharCount int

	// Script is the dominant writing system of the text
	Script Script

	// AllCaps reports whether all cased letters are uppercase (cased
	// scripts only)
	AllCaps bool

	// StartsNumbered reports whether the text opens with a section
	// number, bullet, or roman numeral marker
	StartsNumbered bool

	// ShortLine reports whether the block is short enough to plausibly be
	// a heading (character and word limits applied jointly)
	ShortLine bool

	// Centered reports whether the block midpoint falls within 5% of the
	// page center
	Centered bool

	// RelativeX0 is the left edge relative to the page content margin
	RelativeX0 float64

	// GapBefore is the vertical distance to the previous block on the
	// same page (0 for the first block)
	GapBefore float64

	// GapAfter is the vertical distance to the next block on the same
	// page (0 for the last block)
	GapAfter float64

	// LargeGapBefore reports an unusually large gap above the block
	// relative to the local line height
	LargeGapBefore bool

	// FollowedBySmaller reports that the next block uses a smaller font
	FollowedBySmaller bool

	// FirstOnPage reports whether this is the first content block of its
	// page
	FirstOnPage bool

	// StandaloneDate and StandaloneTime flag blocks that consist of a
	// bare date or time expression
	StandaloneDate bool
	StandaloneTime bool
}

// Block is a merged unit derived from one or more spans. The merger creates
// blocks; the feature engine, classifier, and hierarchy resolver mutate them
// in place.
type Block struct {
	// Text is the merged text content
	Text string

	// BBox is the union of the source span boxes
	BBox BBox

	// FontSize is the maximum font size across the source spans, always
	// > 0 after feature computation (defaulted to the common size)
	FontSize float64

	// FontName is the font name of the dominant source span
	FontName string

	// Bold and Italic are ORed across the source spans
	Bold   bool
	Italic bool

	// Page is the zero-based page index
	Page int

	// SpanCount is the number of spans absorbed into this block
	SpanCount int

	// Features are the computed measurements (zero until the feature
	// engine runs)
	Features Features

	// Level is the assigned heading level, LevelNone until classified
	Level Level

	// Method records which classification path assigned Level
	// ("guaranteed", "structural", "heuristic", "lenient", "promoted")
	Method string

	// BodyParagraph flags a block whose merged profile matches ordinary
	// body text
	BodyParagraph bool

	// ExcludedFromClassification permanently removes the block from
	// heading consideration (long body paragraphs)
	ExcludedFromClassification bool

	// HeaderFooter permanently removes the block from heading and title
	// consideration
	HeaderFooter bool
}

// IsCandidate reports whether the block may still be considered for a
// heading level.
func (b *Block) IsCandidate() bool {
	return b != nil && !b.HeaderFooter && !b.ExcludedFromClassification
}

// SortBlocks orders blocks by (page, top, x0). Every stage re-establishes
// this ordering after mutation so downstream stages can rely on it.
func SortBlocks(blocks []*Block) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Page != blocks[j].Page {
			return blocks[i].Page < blocks[j].Page
		}
		if blocks[i].BBox.Top != blocks[j].BBox.Top {
			return blocks[i].BBox.Top < blocks[j].BBox.Top
		}
		return blocks[i].BBox.X0 < blocks[j].BBox.X0
	})
}
