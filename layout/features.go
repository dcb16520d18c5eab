package layout

import (
	"sort"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/nlp"
	"github.com/tsawler/outliner/text"
)

// FeatureConfig holds configuration for per-block feature computation
type FeatureConfig struct {
	// CenterTolerance is the fraction of page width the block midpoint
	// may deviate from the page center and still count as centered
	// (default: 0.05)
	CenterTolerance float64

	// CenterMaxWidthRatio is the widest a block may be, as a fraction of
	// the page width, and still count as centered; full-width prose has
	// its midpoint at the center regardless of alignment (default: 0.7)
	CenterMaxWidthRatio float64

	// ShortLineChars and ShortLineWords jointly bound a short line for
	// word-bounded scripts (defaults: 70 and 12)
	ShortLineChars int
	ShortLineWords int

	// ShortLineCJKChars bounds a short line for CJK text (default: 25)
	ShortLineCJKChars int

	// LargeGapFactor is the multiple of the local line height above
	// which the gap before a block counts as unusually large
	// (default: 1.8)
	LargeGapFactor float64

	// SmallerFontDelta is the minimum point drop for the next block to
	// count as smaller text (default: 0.5)
	SmallerFontDelta float64
}

// DefaultFeatureConfig returns sensible default configuration
func DefaultFeatureConfig() FeatureConfig {
	return FeatureConfig{
		CenterTolerance:     0.05,
		CenterMaxWidthRatio: 0.7,
		ShortLineChars:      70,
		ShortLineWords:      12,
		ShortLineCJKChars:   25,
		LargeGapFactor:      1.8,
		SmallerFontDelta:    0.5,
	}
}

// Engine computes per-block features and document-wide statistics. An
// optional linguistic analyzer improves word counts; without one the
// engine falls back to whitespace splitting and never errors.
type Engine struct {
	config   FeatureConfig
	analyzer nlp.Analyzer
}

// NewEngine creates a feature engine with default configuration
func NewEngine() *Engine {
	return &Engine{config: DefaultFeatureConfig()}
}

// NewEngineWithConfig creates a feature engine with custom configuration
func NewEngineWithConfig(config FeatureConfig) *Engine {
	return &Engine{config: config}
}

// WithAnalyzer attaches a linguistic-analysis collaborator. Returns the
// engine for chaining.
func (e *Engine) WithAnalyzer(a nlp.Analyzer) *Engine {
	e.analyzer = a
	return e
}

// Enrich attaches features to every block and returns the document's
// common font size. Blocks with zero font size are defaulted to the
// common size so downstream ratios never divide by zero.
func (e *Engine) Enrich(blocks []*model.Block, doc *model.Document) float64 {
	model.SortBlocks(blocks)

	common := commonFontSize(blocks)
	if common <= 0 {
		common = 12
	}
	for _, b := range blocks {
		if b.FontSize <= 0 {
			b.FontSize = common
		}
	}

	ranks := sizeRanks(blocks)

	// Optional analyzer pass, batched per document.
	var analyses []nlp.Analysis
	if e.analyzer != nil {
		texts := make([]string, len(blocks))
		for i, b := range blocks {
			texts[i] = b.Text
		}
		analyses = e.analyzer.Analyze(texts)
		if len(analyses) != len(blocks) {
			analyses = nil
		}
	}

	lastOnPage := make(map[int]int) // page -> index of previous content block
	for i, b := range blocks {
		f := &b.Features
		f.Script = text.DetectScript(b.Text)
		f.FontRatio = b.FontSize / common
		f.FontDelta = b.FontSize - common
		f.SizeRank = ranks[b.FontSize]
		f.CharCount = len([]rune(text.CollapseWhitespace(b.Text)))

		if analyses != nil {
			f.WordCount = wordTokens(analyses[i])
		}
		if f.WordCount == 0 {
			f.WordCount = text.CountWords(b.Text, f.Script)
		}

		f.AllCaps = text.IsAllCaps(b.Text, f.Script)
		f.StartsNumbered = text.StartsNumbered(b.Text)
		f.StandaloneDate = text.IsStandaloneDate(b.Text)
		f.StandaloneTime = text.IsStandaloneTime(b.Text)

		ps := doc.PageSizeOf(b.Page)
		center := ps.Width / 2
		f.Centered = b.BBox.Width() < ps.Width*e.config.CenterMaxWidthRatio &&
			abs(b.BBox.CenterX()-center) <= ps.Width*e.config.CenterTolerance
		f.RelativeX0 = b.BBox.X0

		if f.Script == model.ScriptCJK {
			f.ShortLine = f.CharCount < e.config.ShortLineCJKChars
		} else {
			f.ShortLine = f.CharCount < e.config.ShortLineChars &&
				f.WordCount < e.config.ShortLineWords
		}

		prevIdx, hasPrev := lastOnPage[b.Page]
		if hasPrev {
			prev := blocks[prevIdx]
			gap := b.BBox.Top - prev.BBox.Bottom
			if gap < 0 {
				gap = 0
			}
			f.GapBefore = gap
			prev.Features.GapAfter = gap
			prev.Features.FollowedBySmaller = prev.FontSize-b.FontSize >= e.config.SmallerFontDelta

			lineHeight := b.BBox.Height()
			if lineHeight <= 0 {
				lineHeight = b.FontSize
			}
			f.LargeGapBefore = gap > e.config.LargeGapFactor*lineHeight
		} else {
			f.FirstOnPage = true
		}
		if !b.HeaderFooter {
			lastOnPage[b.Page] = i
		}
	}

	// Left margin normalization after the first pass over pages.
	margins := make(map[int]float64)
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		if x, ok := margins[b.Page]; !ok || b.BBox.X0 < x {
			margins[b.Page] = b.BBox.X0
		}
	}
	for _, b := range blocks {
		b.Features.RelativeX0 = b.BBox.X0 - margins[b.Page]
	}

	return common
}

func wordTokens(a nlp.Analysis) int {
	n := 0
	for _, t := range a.Tokens {
		if t.POS != nlp.POSPunct {
			n++
		}
	}
	return n
}

// commonFontSize returns the median font size over content blocks
func commonFontSize(blocks []*model.Block) float64 {
	var sizes []float64
	for _, b := range blocks {
		if !b.HeaderFooter && b.FontSize > 0 {
			sizes = append(sizes, b.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}

// sizeRanks maps each distinct font size to its rank, 0 = largest
func sizeRanks(blocks []*model.Block) map[float64]int {
	distinct := make(map[float64]bool)
	for _, b := range blocks {
		if b.FontSize > 0 {
			distinct[b.FontSize] = true
		}
	}
	sizes := make([]float64, 0, len(distinct))
	for s := range distinct {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	ranks := make(map[float64]int, len(sizes))
	for i, s := range sizes {
		ranks[s] = i
	}
	return ranks
}
