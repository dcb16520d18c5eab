package layout

import (
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// guaranteedStrategy is tier 1: a top-level numbered section line with
// vertical isolation is unconditionally H1. No scoring is involved.
type guaranteedStrategy struct{}

func (g *guaranteedStrategy) Name() string { return "guaranteed" }

func (g *guaranteedStrategy) Classify(b *model.Block, ctx *Context) (model.Level, bool) {
	if text.NumberingDepth(b.Text) != 1 {
		return model.LevelNone, false
	}

	// The marker alone is not a heading; require real text after it.
	if b.Features.WordCount < 2 {
		return model.LevelNone, false
	}

	// Outside the header/footer margin bands.
	ps := ctx.Doc.PageSizeOf(b.Page)
	margin := ps.Height * ctx.Config.MarginRatio
	if b.BBox.Top <= margin || b.BBox.Bottom >= ps.Height-margin {
		return model.LevelNone, false
	}

	// Vertical isolation: a gap of at least half the font size on either
	// side.
	isolation := b.FontSize / 2
	if b.Features.GapBefore >= isolation || b.Features.GapAfter >= isolation ||
		b.Features.FirstOnPage {
		return model.LevelH1, true
	}
	return model.LevelNone, false
}
