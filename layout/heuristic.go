package layout

import (
	"regexp"

	"github.com/tsawler/outliner/model"
)

// heuristicStrategy is tier 3: a weighted score per candidate level,
// accepted only when it clears the level's confidence floor.
type heuristicStrategy struct{}

func (h *heuristicStrategy) Name() string { return "heuristic" }

func (h *heuristicStrategy) Classify(b *model.Block, ctx *Context) (model.Level, bool) {
	level, _, ok := h.bestLevel(b, ctx, ctx.Config.MinConfidence)
	return level, ok
}

// patternTier maps marker patterns to their natural level with a
// confidence used to scale the regex boost.
type patternTier struct {
	re         *regexp.Regexp
	level      model.Level
	confidence float64
}

var patternTiers = []patternTier{
	// Deepest numbering first so "2.1.3.4" does not match as "2.1".
	{regexp.MustCompile(`^\d+(?:\.\d+){3}\s`), model.LevelH4, 0.68},
	{regexp.MustCompile(`^\d+(?:\.\d+){2}\s`), model.LevelH3, 0.78},
	{regexp.MustCompile(`^\d+\.\d+\s`), model.LevelH2, 0.88},
	{regexp.MustCompile(`(?i)^(?:chapter|section|article|part|appendix)\b`), model.LevelH1, 0.98},
	{regexp.MustCompile(`^\d+[.)]\s+\S`), model.LevelH1, 0.95},
	{regexp.MustCompile(`^[IVXLC]{1,7}[.)]\s`), model.LevelH2, 0.85},
	{regexp.MustCompile(`^[A-Z][.)]\s`), model.LevelH2, 0.82},
	{regexp.MustCompile(`^\([a-z]\)\s`), model.LevelH3, 0.75},
	{regexp.MustCompile(`^[•●*]\s`), model.LevelH3, 0.70},
	{regexp.MustCompile(`^\(\d{1,3}\)\s`), model.LevelH4, 0.65},
}

func matchTier(s string) (model.Level, float64) {
	for _, t := range patternTiers {
		if t.re.MatchString(s) {
			return t.level, t.confidence
		}
	}
	return model.LevelNone, 0
}

// bestLevel scores every level and returns the best one clearing the
// given floors. An over-long winner is demoted one level before giving
// up.
func (h *heuristicStrategy) bestLevel(b *model.Block, ctx *Context, floors LevelFloors) (model.Level, float64, bool) {
	best := model.LevelNone
	bestScore := 0.0

	for _, level := range []model.Level{model.LevelH1, model.LevelH2, model.LevelH3, model.LevelH4} {
		score := h.score(b, ctx, level)
		if score > bestScore {
			best, bestScore = level, score
		}
	}
	if best == model.LevelNone || bestScore < floors.For(best) {
		return model.LevelNone, bestScore, false
	}

	// Length ceiling with one demotion attempt.
	if b.Features.WordCount > ctx.Config.MaxWords[best.Depth()-1] {
		demoted := model.LevelFromDepth(best.Depth() + 1)
		if demoted == best || b.Features.WordCount > ctx.Config.MaxWords[demoted.Depth()-1] {
			return model.LevelNone, bestScore, false
		}
		if bestScore < floors.For(demoted) {
			return model.LevelNone, bestScore, false
		}
		best = demoted
	}

	return best, bestScore, true
}

// score computes the signed weighted score of one candidate level
func (h *heuristicStrategy) score(b *model.Block, ctx *Context, level model.Level) float64 {
	w := ctx.Config.Weights
	f := b.Features
	score := 0.0

	// Font prominence relative to the level's threshold.
	th := ctx.Thresholds.For(level)
	switch {
	case b.FontSize >= th:
		score += w.FontFit
	case th > ctx.Common && b.FontSize > ctx.Common:
		score += w.FontFit * (b.FontSize - ctx.Common) / (th - ctx.Common)
	}

	if b.Bold {
		score += w.Bold
	}
	if f.Centered {
		score += w.Centered
		if level == model.LevelH1 {
			score += w.CenteredH1Extra
		}
	}
	if f.LargeGapBefore {
		score += w.LargeGap
	}
	if f.ShortLine {
		score += w.ShortLine
	}
	if f.AllCaps {
		score += w.AllCaps
	}
	if f.StartsNumbered {
		if level >= model.LevelH2 {
			score += w.NumberStart
		} else {
			score += w.NumberStart / 2
		}
	}
	if f.FollowedBySmaller {
		score += w.FollowedBySmaller
	}

	if tierLevel, conf := matchTier(b.Text); tierLevel == level {
		score += w.RegexBoost * conf
	}

	// Context against the page's last accepted heading.
	if last := ctx.LastHeading(b.Page); last != nil {
		diff := level.Depth() - last.Level.Depth()
		switch {
		case diff == 1:
			// Only a genuinely smaller child earns the bonus; equal-size
			// siblings stay at the same level.
			if last.FontSize-b.FontSize >= 0.5 {
				score += w.ContextChild
			}
		case diff > 1:
			score -= w.SkipPenalty * float64(diff-1)
		case diff == 0:
			sizeOff := abs(b.FontSize-last.FontSize) > 1.0
			indentOff := abs(f.RelativeX0-last.Features.RelativeX0) > 20
			if sizeOff || indentOff {
				score -= w.SameLevelPenalty
			}
		}
	}

	if f.StandaloneDate || f.StandaloneTime {
		score -= w.DateTimePenalty
	}

	// Script-aware length and indentation penalties.
	longLine := f.CharCount > 60
	if f.Script == model.ScriptCJK {
		longLine = f.CharCount > 30
	}
	if longLine && level <= model.LevelH2 {
		score -= w.LengthPenalty
	}
	// Centered text sits right of the margin by construction, so the
	// indent penalty only applies to left-anchored blocks.
	if level == model.LevelH1 && !f.Centered && f.RelativeX0 > 50 {
		score -= w.IndentPenalty
	}

	return score
}
