package layout

import (
	"math"
	"regexp"
	"strings"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// structuralStrategy is tier 2: when one regex family dominates the
// document's blocks with consistent styling, every block matching the
// family maps deterministically to a level by pattern specificity.
type structuralStrategy struct{}

func (s *structuralStrategy) Name() string { return "structural" }

func (s *structuralStrategy) Classify(b *model.Block, ctx *Context) (model.Level, bool) {
	if ctx.dominant == nil {
		return model.LevelNone, false
	}
	level := ctx.dominant.family.levelOf(b, ctx)
	if level == model.LevelNone {
		return model.LevelNone, false
	}
	return level, true
}

// patternFamily is one candidate structural convention
type patternFamily struct {
	name    string
	matches func(b *model.Block, ctx *Context) bool
	levelOf func(b *model.Block, ctx *Context) model.Level
}

var (
	romanPrefix  = regexp.MustCompile(`^[IVXLC]{1,7}[.)]\s`)
	letterPrefix = regexp.MustCompile(`^[A-Z][.)]\s`)
	parenAlpha   = regexp.MustCompile(`^\([a-z]\)\s`)
	parenDigit   = regexp.MustCompile(`^\(\d{1,3}\)\s`)
)

// bullet marker specificity: primary, secondary, tertiary
var bulletLevels = map[rune]model.Level{
	'•': model.LevelH2, '●': model.LevelH2, '*': model.LevelH2,
	'◦': model.LevelH3, '○': model.LevelH3, '·': model.LevelH3,
	'▪': model.LevelH4, '‣': model.LevelH4,
}

var patternFamilies = []patternFamily{
	{
		name: "numbered",
		matches: func(b *model.Block, _ *Context) bool {
			return text.NumberingDepth(b.Text) > 0
		},
		levelOf: func(b *model.Block, _ *Context) model.Level {
			return model.LevelFromDepth(text.NumberingDepth(b.Text))
		},
	},
	{
		name: "outline",
		matches: func(b *model.Block, _ *Context) bool {
			t := strings.TrimLeft(b.Text, " \t")
			return romanPrefix.MatchString(t) || letterPrefix.MatchString(t) ||
				parenAlpha.MatchString(t) || parenDigit.MatchString(t)
		},
		levelOf: func(b *model.Block, _ *Context) model.Level {
			t := strings.TrimLeft(b.Text, " \t")
			switch {
			case romanPrefix.MatchString(t), letterPrefix.MatchString(t):
				return model.LevelH2
			case parenAlpha.MatchString(t):
				return model.LevelH3
			case parenDigit.MatchString(t):
				return model.LevelH4
			default:
				return model.LevelNone
			}
		},
	},
	{
		name: "bulleted",
		matches: func(b *model.Block, _ *Context) bool {
			t := strings.TrimLeft(b.Text, " \t")
			if t == "" {
				return false
			}
			_, ok := bulletLevels[[]rune(t)[0]]
			return ok
		},
		levelOf: func(b *model.Block, _ *Context) model.Level {
			t := strings.TrimLeft(b.Text, " \t")
			if t == "" {
				return model.LevelNone
			}
			if l, ok := bulletLevels[[]rune(t)[0]]; ok {
				return l
			}
			return model.LevelNone
		},
	},
	{
		name: "formatted",
		matches: func(b *model.Block, _ *Context) bool {
			return b.Features.AllCaps && b.Features.ShortLine &&
				b.Features.CharCount >= 4
		},
		levelOf: func(b *model.Block, ctx *Context) model.Level {
			if !b.Features.AllCaps || !b.Features.ShortLine {
				return model.LevelNone
			}
			if l := ctx.Thresholds.LevelFor(b.FontSize); l != model.LevelNone {
				return l
			}
			return model.LevelH2
		},
	},
}

// dominantPattern is the census winner used by the structural tier
type dominantPattern struct {
	family     *patternFamily
	count      int
	confidence float64
}

// detectDominantPattern scans all candidate blocks once and elects the
// regex family with the largest consistent coverage, or nil when none
// qualifies.
func detectDominantPattern(blocks []*model.Block, ctx *Context) *dominantPattern {
	total := 0
	for _, b := range blocks {
		if b.IsCandidate() && !b.BodyParagraph {
			total++
		}
	}
	if total == 0 {
		return nil
	}

	var best *dominantPattern
	for i := range patternFamilies {
		fam := &patternFamilies[i]
		var sizes []float64
		boldCount, count := 0, 0
		for _, b := range blocks {
			if !b.IsCandidate() || b.BodyParagraph {
				continue
			}
			if fam.matches(b, ctx) {
				count++
				sizes = append(sizes, b.FontSize)
				if b.Bold {
					boldCount++
				}
			}
		}
		if count == 0 {
			continue
		}

		share := float64(count) / float64(total)
		need := int(math.Ceil(ctx.Config.DominantMinShare * float64(total)))
		if need < ctx.Config.DominantMinCount {
			need = ctx.Config.DominantMinCount
		}
		if count < need {
			continue
		}

		conf := familyConfidence(share, sizes, boldCount, count)
		if conf < ctx.Config.DominantMinConfidence {
			continue
		}
		if best == nil || count > best.count {
			best = &dominantPattern{family: fam, count: count, confidence: conf}
		}
	}
	return best
}

// familyConfidence combines coverage with styling consistency: tight font
// sizes and a clear bold tendency both raise it.
func familyConfidence(share float64, sizes []float64, boldCount, count int) float64 {
	coverage := math.Min(1, share*4)

	consistency := 1.0
	if len(sizes) > 1 {
		mean := 0.0
		for _, s := range sizes {
			mean += s
		}
		mean /= float64(len(sizes))
		variance := 0.0
		for _, s := range sizes {
			variance += (s - mean) * (s - mean)
		}
		stddev := math.Sqrt(variance / float64(len(sizes)))
		consistency = 1 - math.Min(1, stddev/3)
	}

	boldShare := float64(boldCount) / float64(count)
	styling := math.Max(boldShare, 1-boldShare) // consistent either way

	return 0.45*coverage + 0.35*consistency + 0.20*styling
}
