package layout

import (
	"sort"

	"github.com/tsawler/outliner/model"
)

// ResolverConfig holds configuration for hierarchy resolution and
// coverage enforcement.
type ResolverConfig struct {
	// DensityFloor is the whole-document average headings per page below
	// which the lenient fallback pass runs (default: 1.5)
	DensityFloor float64

	// DensityTarget is the per-page heading count the fallback pass
	// promotes toward (default: 2)
	DensityTarget int

	// PromoteRatio is the minimum font ratio for accepting an orphan
	// non-H1 heading as a promoted H1 (default: 1.8)
	PromoteRatio float64

	// MaxPerPageFactor caps the outline length at this multiple of the
	// page count; longer outlines are pruned lowest-prominence-first
	// (default: 3)
	MaxPerPageFactor int
}

// DefaultResolverConfig returns sensible default configuration
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		DensityFloor:     1.5,
		DensityTarget:    2,
		PromoteRatio:     1.8,
		MaxPerPageFactor: 3,
	}
}

// Resolver smooths classified levels into consistent nesting and enforces
// per-page coverage bounds.
type Resolver struct {
	config ResolverConfig
}

// NewResolver creates a resolver with default configuration
func NewResolver() *Resolver {
	return &Resolver{config: DefaultResolverConfig()}
}

// NewResolverWithConfig creates a resolver with custom configuration
func NewResolverWithConfig(config ResolverConfig) *Resolver {
	return &Resolver{config: config}
}

// pageStack is the explicit per-page hierarchy state: one slot per level,
// reset at every page boundary.
type pageStack struct {
	slots [4]*model.Block
	page  int
}

func (s *pageStack) reset(page int) {
	s.page = page
	for i := range s.slots {
		s.slots[i] = nil
	}
}

// nearestAncestor returns the depth of the deepest populated slot above
// depth, or 0 when none exists.
func (s *pageStack) nearestAncestor(depth int) int {
	for d := depth - 1; d >= 1; d-- {
		if s.slots[d-1] != nil {
			return d
		}
	}
	return 0
}

// accept occupies the block's slot and clears all deeper slots
func (s *pageStack) accept(b *model.Block) {
	d := b.Level.Depth()
	s.slots[d-1] = b
	for i := d; i < 4; i++ {
		s.slots[i] = nil
	}
}

// Resolve smooths heading levels, then enforces minimum density with the
// classifier's lenient scorer, then prunes over-long outlines. Blocks must
// be sorted; they remain sorted afterwards.
func (r *Resolver) Resolve(blocks []*model.Block, ctx *Context, classifier *Classifier) {
	r.smooth(blocks)
	r.enforceDensity(blocks, ctx, classifier)
	r.smooth(blocks) // promotions may reintroduce level jumps
	r.prune(blocks)
}

// smooth walks the blocks in order with the per-page stack: demote
// over-deep headings to one step below their ancestor, accept orphan
// non-H1 headings as H1 only with strong standalone prominence, clear
// them otherwise. Orphans placed by the density fallback are never
// cleared; they anchor at H1.
func (r *Resolver) smooth(blocks []*model.Block) {
	var stack pageStack
	stack.reset(-1)
	firstSubstantive := make(map[int]*model.Block)
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		if _, ok := firstSubstantive[b.Page]; !ok {
			firstSubstantive[b.Page] = b
		}
	}

	for _, b := range blocks {
		if !b.Level.IsHeading() {
			continue
		}
		if b.Page != stack.page {
			stack.reset(b.Page)
		}

		depth := b.Level.Depth()
		ancestor := stack.nearestAncestor(depth)

		switch {
		case ancestor > 0:
			if depth > ancestor+1 {
				b.Level = model.LevelFromDepth(ancestor + 1)
			}
		case depth > 1:
			// No shallower ancestor on this page.
			switch {
			case b.Method == "lenient" || b.Method == "promoted":
				// Density promotions anchor at the top instead of being
				// cleared, or the page would fall back below coverage.
				b.Level = model.LevelH1
			case r.promotable(b, firstSubstantive[b.Page]):
				b.Level = model.LevelH1
				b.Method = "promoted"
			default:
				b.Level = model.LevelNone
				b.Method = ""
				continue
			}
		}
		stack.accept(b)
	}
}

// promotable gates orphan promotion to H1: the page's first substantive
// content with strong standalone prominence.
func (r *Resolver) promotable(b, first *model.Block) bool {
	if first != b {
		return false
	}
	f := b.Features
	return f.FontRatio > r.config.PromoteRatio &&
		(b.Bold || f.Centered) &&
		f.ShortLine &&
		f.WordCount < 12
}

// enforceDensity runs the lenient fallback when the document average
// falls below the floor. Promotion is per page, best candidates first,
// until the target is met; pages still empty get a best-effort promotion
// ignoring even the lenient bar.
func (r *Resolver) enforceDensity(blocks []*model.Block, ctx *Context, classifier *Classifier) {
	if classifier == nil {
		return
	}

	pages := make(map[int]bool)
	perPage := make(map[int]int)
	headings := 0
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		pages[b.Page] = true
		if b.Level.IsHeading() {
			headings++
			perPage[b.Page]++
		}
	}
	if len(pages) == 0 {
		return
	}
	if float64(headings)/float64(len(pages)) >= r.config.DensityFloor {
		return
	}

	type scored struct {
		block *model.Block
		level model.Level
		score float64
	}

	for page := range pages {
		if perPage[page] >= r.config.DensityTarget {
			continue
		}

		var candidates []scored
		for _, b := range blocks {
			if b.Page != page || b.Level.IsHeading() || !b.IsCandidate() {
				continue
			}
			if level, score, ok := classifier.LenientScore(b, ctx); ok {
				candidates = append(candidates, scored{b, level, score})
			}
		}
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].score > candidates[j].score
		})

		for _, c := range candidates {
			if perPage[page] >= r.config.DensityTarget {
				break
			}
			c.block.Level = c.level
			c.block.Method = "lenient"
			perPage[page]++
		}

		if perPage[page] > 0 {
			continue
		}

		// Best effort: the most prominent block on the page, the bar
		// ignored entirely.
		var best *model.Block
		for _, b := range blocks {
			if b.Page != page || !b.IsCandidate() || b.Text == "" {
				continue
			}
			if best == nil || moreProminent(b, best) {
				best = b
			}
		}
		if best != nil {
			level := ctx.Thresholds.LevelFor(best.FontSize)
			if level == model.LevelNone {
				level = model.LevelH4
			}
			best.Level = level
			best.Method = "promoted"
			perPage[page]++
		}
	}
}

func moreProminent(a, b *model.Block) bool {
	if a.Features.FontRatio != b.Features.FontRatio {
		return a.Features.FontRatio > b.Features.FontRatio
	}
	if a.Features.ShortLine != b.Features.ShortLine {
		return a.Features.ShortLine
	}
	return a.BBox.Top < b.BBox.Top
}

// prune drops the least prominent deep headings when the outline exceeds
// the page-count cap, never emptying a page.
func (r *Resolver) prune(blocks []*model.Block) {
	pages := make(map[int]bool)
	perPage := make(map[int]int)
	var headings []*model.Block
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		pages[b.Page] = true
		if b.Level.IsHeading() {
			headings = append(headings, b)
			perPage[b.Page]++
		}
	}

	limit := r.config.MaxPerPageFactor * len(pages)
	if limit <= 0 || len(headings) <= limit {
		return
	}

	// Deepest first, smallest font first within a depth.
	order := make([]*model.Block, len(headings))
	copy(order, headings)
	sort.Slice(order, func(i, j int) bool {
		if order[i].Level != order[j].Level {
			return order[i].Level > order[j].Level
		}
		return order[i].FontSize < order[j].FontSize
	})

	excess := len(headings) - limit
	for _, b := range order {
		if excess <= 0 {
			break
		}
		if perPage[b.Page] <= 1 {
			continue
		}
		b.Level = model.LevelNone
		b.Method = ""
		perPage[b.Page]--
		excess--
	}
}
