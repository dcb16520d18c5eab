package layout

import (
	"sort"

	"github.com/tsawler/outliner/model"
)

// ThresholdConfig holds configuration for dynamic per-level font
// thresholds.
type ThresholdConfig struct {
	// MinRatio is the minimum multiple of the common font size for a
	// size to be a heading-size candidate (default: 1.05)
	MinRatio float64

	// LevelDrop is the point drop between consecutive candidate sizes
	// that opens a new level (default: 0.75)
	LevelDrop float64

	// Fill deltas applied when a level has no observed size, relative to
	// the level above (defaults: H2 = H1-2.0, H3 = H2-1.5, H4 = H3-1.0)
	FillH2, FillH3, FillH4 float64

	// Clamp ratios keep filled thresholds above the common size
	// (defaults: 1.15, 1.10, 1.05 for H2..H4)
	ClampH2, ClampH3, ClampH4 float64

	// DescentStep separates levels that collapsed onto one size during
	// the monotonicity pass (default: 0.5)
	DescentStep float64
}

// DefaultThresholdConfig returns sensible default configuration
func DefaultThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		MinRatio:    1.05,
		LevelDrop:   0.75,
		FillH2:      2.0,
		FillH3:      1.5,
		FillH4:      1.0,
		ClampH2:     1.15,
		ClampH3:     1.10,
		ClampH4:     1.05,
		DescentStep: 0.5,
	}
}

// Thresholds holds the minimum font size for each heading level. After
// computation H1 > H2 > H3 > H4 strictly, and every value exceeds the
// common font size.
type Thresholds struct {
	H1, H2, H3, H4 float64
}

// For returns the threshold for a level
func (t Thresholds) For(level model.Level) float64 {
	switch level {
	case model.LevelH1:
		return t.H1
	case model.LevelH2:
		return t.H2
	case model.LevelH3:
		return t.H3
	case model.LevelH4:
		return t.H4
	default:
		return 0
	}
}

// LevelFor returns the deepest level whose threshold the size still
// meets, or LevelNone when the size is below every threshold.
func (t Thresholds) LevelFor(size float64) model.Level {
	switch {
	case size >= t.H1:
		return model.LevelH1
	case size >= t.H2:
		return model.LevelH2
	case size >= t.H3:
		return model.LevelH3
	case size >= t.H4:
		return model.LevelH4
	default:
		return model.LevelNone
	}
}

// ComputeThresholds derives per-level font thresholds from the observed
// block sizes. Candidate sizes exceed the common size by MinRatio, sorted
// descending; the largest anchors H1 and a new level opens on every drop
// of at least LevelDrop, capped at H4. Missing levels are filled relative
// to their neighbor, clamped above the common size, and a final pass
// enforces strict descent.
func ComputeThresholds(blocks []*model.Block, common float64, config ThresholdConfig) Thresholds {
	distinct := make(map[float64]bool)
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		if b.FontSize >= common*config.MinRatio {
			distinct[b.FontSize] = true
		}
	}
	sizes := make([]float64, 0, len(distinct))
	for s := range distinct {
		sizes = append(sizes, s)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	var levels [4]float64
	levelIdx := 0
	for i, s := range sizes {
		if i == 0 {
			levels[0] = s
			continue
		}
		if sizes[i-1]-s >= config.LevelDrop {
			levelIdx++
			if levelIdx > 3 {
				break
			}
		}
		if levels[levelIdx] == 0 {
			levels[levelIdx] = s
		}
	}

	t := Thresholds{H1: levels[0], H2: levels[1], H3: levels[2], H4: levels[3]}

	// Fill unobserved levels from their neighbor and clamp above common.
	if t.H1 == 0 {
		t.H1 = common * 1.3
	}
	if t.H2 == 0 {
		t.H2 = t.H1 - config.FillH2
	}
	if t.H3 == 0 {
		t.H3 = t.H2 - config.FillH3
	}
	if t.H4 == 0 {
		t.H4 = t.H3 - config.FillH4
	}
	t.H2 = maxFloat(t.H2, common*config.ClampH2)
	t.H3 = maxFloat(t.H3, common*config.ClampH3)
	t.H4 = maxFloat(t.H4, common*config.ClampH4)

	// Strict descent as a correctness pass: each level sits at least a
	// step below the one above and high enough to leave room for the
	// levels beneath it, all strictly above the common size. When H1 sits
	// too close to the band floor for the configured step, the step
	// shrinks so three descents still fit.
	base := common * 1.01
	if t.H1 <= base {
		t.H1 = common * 1.3
	}
	step := config.DescentStep
	if room := (t.H1 - base) / 3; room < step {
		step = room * 0.9
	}
	t.H2 = clampBetween(t.H2, base+2*step, t.H1-step)
	t.H3 = clampBetween(t.H3, base+step, t.H2-step)
	t.H4 = clampBetween(t.H4, base, t.H3-step)

	return t
}

func clampBetween(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
