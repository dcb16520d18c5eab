package layout

import (
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// HeuristicWeights are the signed weights of the tier-3 scorer. All values
// are positive; penalty fields are subtracted.
type HeuristicWeights struct {
	// FontFit is the maximum contribution of font-size prominence
	FontFit float64

	// Bold is added for bold blocks
	Bold float64

	// Centered is added for centered blocks; CenteredH1Extra is added on
	// top when scoring H1
	Centered        float64
	CenteredH1Extra float64

	// LargeGap rewards an unusually large gap above the block
	LargeGap float64

	// ShortLine rewards heading-length lines
	ShortLine float64

	// AllCaps rewards fully uppercase text in cased scripts
	AllCaps float64

	// NumberStart rewards numbering markers, weighted toward H2..H4
	NumberStart float64

	// FollowedBySmaller rewards a size drop to the following block
	FollowedBySmaller float64

	// RegexBoost scales the pattern-tier confidence bonus
	RegexBoost float64

	// ContextChild rewards a block exactly one level deeper than the
	// page's last accepted heading with compatible size
	ContextChild float64

	// SkipPenalty is subtracted per level skipped past the last heading
	SkipPenalty float64

	// SameLevelPenalty is subtracted when a block claims the last
	// heading's level with inconsistent size or indent
	SameLevelPenalty float64

	// DateTimePenalty is subtracted for standalone date or time blocks
	DateTimePenalty float64

	// LengthPenalty is subtracted for over-long text at shallow levels
	LengthPenalty float64

	// IndentPenalty is subtracted for deeply indented H1 candidates
	IndentPenalty float64
}

// LevelFloors holds per-level minimum confidence scores. H1 is strictest.
type LevelFloors struct {
	H1, H2, H3, H4 float64
}

// For returns the floor for a level
func (f LevelFloors) For(level model.Level) float64 {
	switch level {
	case model.LevelH1:
		return f.H1
	case model.LevelH2:
		return f.H2
	case model.LevelH3:
		return f.H3
	case model.LevelH4:
		return f.H4
	default:
		return 0
	}
}

// ClassifierConfig holds the tunables of the classification cascade.
// All thresholds behave monotonically: relaxing a floor never reduces the
// number of accepted headings.
type ClassifierConfig struct {
	// MarginRatio excludes the page margin bands from the guaranteed
	// tier (default: 0.15, matching header/footer detection)
	MarginRatio float64

	// Weights drive the tier-3 scorer
	Weights HeuristicWeights

	// MinConfidence are the strict per-level acceptance floors
	MinConfidence LevelFloors

	// LenientFloors are the relaxed floors used only by the coverage
	// fallback pass
	LenientFloors LevelFloors

	// MaxWords caps heading length per level (H1..H4); an over-long
	// block is demoted one level before rejection
	MaxWords [4]int

	// DominantMinShare is the block share a pattern family needs to
	// become the document's dominant pattern (default: 0.05)
	DominantMinShare float64

	// DominantMinCount is the absolute match floor for sparse documents
	// (default: 2)
	DominantMinCount int

	// DominantMinConfidence gates the dominant family's overall
	// consistency score (default: 0.5)
	DominantMinConfidence float64
}

// DefaultClassifierConfig returns the tuned default configuration
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MarginRatio: 0.15,
		Weights: HeuristicWeights{
			FontFit:           15.0,
			Bold:              7.0,
			Centered:          8.0,
			CenteredH1Extra:   4.0,
			LargeGap:          6.0,
			ShortLine:         5.0,
			AllCaps:           6.0,
			NumberStart:       8.0,
			FollowedBySmaller: 4.0,
			RegexBoost:        20.0,
			ContextChild:      6.0,
			SkipPenalty:       8.0,
			SameLevelPenalty:  4.0,
			DateTimePenalty:   25.0,
			LengthPenalty:     10.0,
			IndentPenalty:     5.0,
		},
		MinConfidence:         LevelFloors{H1: 30, H2: 25, H3: 20, H4: 15},
		LenientFloors:         LevelFloors{H1: 12, H2: 9, H3: 7, H4: 5},
		MaxWords:              [4]int{12, 14, 16, 20},
		DominantMinShare:      0.05,
		DominantMinCount:      2,
		DominantMinConfidence: 0.5,
	}
}

// Context carries the document-wide state the strategies consult: common
// font size, per-level thresholds, language, page dimensions, the
// precomputed dominant pattern, and the per-page last accepted heading.
type Context struct {
	Doc        *model.Document
	Common     float64
	Thresholds Thresholds
	Language   string
	Config     ClassifierConfig

	dominant    *dominantPattern
	lastHeading map[int]*model.Block
}

// NewContext creates a classification context
func NewContext(doc *model.Document, common float64, thresholds Thresholds, language string, config ClassifierConfig) *Context {
	return &Context{
		Doc:         doc,
		Common:      common,
		Thresholds:  thresholds,
		Language:    language,
		Config:      config,
		lastHeading: make(map[int]*model.Block),
	}
}

// LastHeading returns the most recently accepted heading on a page, or nil
func (ctx *Context) LastHeading(page int) *model.Block {
	return ctx.lastHeading[page]
}

func (ctx *Context) advance(b *model.Block) {
	ctx.lastHeading[b.Page] = b
}

// Strategy is one tier of the classification cascade. Classify returns
// the assigned level and true on a match; strategies are tried in order
// and the first match wins.
type Strategy interface {
	Name() string
	Classify(b *model.Block, ctx *Context) (model.Level, bool)
}

// Classifier assigns heading levels through the ordered strategy cascade
type Classifier struct {
	config     ClassifierConfig
	strategies []Strategy
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultClassifierConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config ClassifierConfig) *Classifier {
	return &Classifier{
		config: config,
		strategies: []Strategy{
			&guaranteedStrategy{},
			&structuralStrategy{},
			&heuristicStrategy{},
		},
	}
}

// Classify assigns a level (or none) to every block in order. The blocks
// must already be feature-enriched and sorted.
func (c *Classifier) Classify(blocks []*model.Block, ctx *Context) {
	ctx.Config = c.config
	ctx.dominant = detectDominantPattern(blocks, ctx)

	for _, b := range blocks {
		if !c.Eligible(b, ctx) {
			continue
		}
		for _, s := range c.strategies {
			if level, ok := s.Classify(b, ctx); ok {
				b.Level = level
				b.Method = s.Name()
				ctx.advance(b)
				break
			}
		}
	}
}

// Eligible applies the hard rejection gates that no score can override
func (c *Classifier) Eligible(b *model.Block, ctx *Context) bool {
	if !b.IsCandidate() || b.BodyParagraph {
		return false
	}
	if text.HasUnmatchedBrackets(b.Text) {
		return false
	}
	if text.IsUninformative(b.Text, ctx.Language) {
		return false
	}
	if text.IsFunctionFragment(b.Text, ctx.Language) {
		return false
	}
	if text.TerminatorCount(b.Text) > 2 {
		return false
	}
	return true
}

// LenientScore re-runs the tier-3 scorer against the relaxed floors. The
// hierarchy resolver uses it for minimum-density enforcement only.
func (c *Classifier) LenientScore(b *model.Block, ctx *Context) (model.Level, float64, bool) {
	if !c.Eligible(b, ctx) {
		return model.LevelNone, 0, false
	}
	var h heuristicStrategy
	return h.bestLevel(b, ctx, c.config.LenientFloors)
}
