// Package config loads TOML tuning files for the command-line driver and
// overlays them onto the default pipeline configuration.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/layout"
)

// Load reads a TOML tuning file and overlays it onto the default
// pipeline configuration. Absent keys keep their defaults; unknown keys
// are an error.
func Load(path string) (outliner.Config, error) {
	return Overlay(outliner.DefaultConfig(), path)
}

// Overlay reads a TOML tuning file and applies it on top of base.
// Absent keys keep the base values.
func Overlay(base outliner.Config, path string) (outliner.Config, error) {
	file := fromConfig(base)
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return base, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	return file.toConfig(base), nil
}

// fileConfig mirrors the tunable subset of outliner.Config with TOML
// section and key names. Classifier weights are deliberately not
// exposed; retuning them belongs in code, not deployment files.
type fileConfig struct {
	HeaderFooter headerFooterSection `toml:"headerfooter"`
	Merger       mergerSection       `toml:"merger"`
	Features     featuresSection     `toml:"features"`
	Thresholds   thresholdsSection   `toml:"thresholds"`
	Classifier   classifierSection   `toml:"classifier"`
	Resolver     resolverSection     `toml:"resolver"`
	Title        titleSection        `toml:"title"`
}

type headerFooterSection struct {
	MarginRatio     float64 `toml:"margin_ratio"`
	MinRecurrence   float64 `toml:"min_recurrence"`
	DigitRecurrence float64 `toml:"digit_recurrence"`
	MaxDigitLen     int     `toml:"max_digit_len"`
	BucketSize      float64 `toml:"bucket_size"`
}

type mergerSection struct {
	FontSizeTolerance   float64 `toml:"font_size_tolerance"`
	XAlignTolerance     float64 `toml:"x_align_tolerance"`
	LineGapFactor       float64 `toml:"line_gap_factor"`
	ParagraphGapFactor  float64 `toml:"paragraph_gap_factor"`
	HorizontalGapFactor float64 `toml:"horizontal_gap_factor"`
	MaxMergedChars      int     `toml:"max_merged_chars"`
	BodyWordLimit       int     `toml:"body_word_limit"`
	BodyRatioLow        float64 `toml:"body_ratio_low"`
	BodyRatioHigh       float64 `toml:"body_ratio_high"`
	BodyIndentLow       float64 `toml:"body_indent_low"`
	BodyIndentHigh      float64 `toml:"body_indent_high"`
}

type featuresSection struct {
	CenterTolerance     float64 `toml:"center_tolerance"`
	CenterMaxWidthRatio float64 `toml:"center_max_width_ratio"`
	ShortLineChars      int     `toml:"short_line_chars"`
	ShortLineWords      int     `toml:"short_line_words"`
	ShortLineCJKChars   int     `toml:"short_line_cjk_chars"`
	LargeGapFactor      float64 `toml:"large_gap_factor"`
	SmallerFontDelta    float64 `toml:"smaller_font_delta"`
}

type thresholdsSection struct {
	MinRatio    float64 `toml:"min_ratio"`
	LevelDrop   float64 `toml:"level_drop"`
	FillH2      float64 `toml:"fill_h2"`
	FillH3      float64 `toml:"fill_h3"`
	FillH4      float64 `toml:"fill_h4"`
	ClampH2     float64 `toml:"clamp_h2"`
	ClampH3     float64 `toml:"clamp_h3"`
	ClampH4     float64 `toml:"clamp_h4"`
	DescentStep float64 `toml:"descent_step"`
}

type classifierSection struct {
	MarginRatio           float64    `toml:"margin_ratio"`
	MinConfidence         [4]float64 `toml:"min_confidence"`
	LenientFloors         [4]float64 `toml:"lenient_floors"`
	MaxWords              [4]int     `toml:"max_words"`
	DominantMinShare      float64    `toml:"dominant_min_share"`
	DominantMinCount      int        `toml:"dominant_min_count"`
	DominantMinConfidence float64    `toml:"dominant_min_confidence"`
}

type resolverSection struct {
	DensityFloor     float64 `toml:"density_floor"`
	DensityTarget    int     `toml:"density_target"`
	PromoteRatio     float64 `toml:"promote_ratio"`
	MaxPerPageFactor int     `toml:"max_per_page_factor"`
}

type titleSection struct {
	MaxSamplePages     int     `toml:"max_sample_pages"`
	SampleFraction     float64 `toml:"sample_fraction"`
	MinScore           float64 `toml:"min_score"`
	FontWeight         float64 `toml:"font_weight"`
	BoldBonus          float64 `toml:"bold_bonus"`
	PositionWeight     float64 `toml:"position_weight"`
	BandBonus          float64 `toml:"band_bonus"`
	BandPenalty        float64 `toml:"band_penalty"`
	RelatabilityWeight float64 `toml:"relatability_weight"`
}

// fromConfig seeds every section with the base values so that keys
// absent from the file keep their current settings after decoding.
func fromConfig(c outliner.Config) fileConfig {
	return fileConfig{
		HeaderFooter: headerFooterSection{
			MarginRatio:     c.HeaderFooter.MarginRatio,
			MinRecurrence:   c.HeaderFooter.MinRecurrence,
			DigitRecurrence: c.HeaderFooter.DigitRecurrence,
			MaxDigitLen:     c.HeaderFooter.MaxDigitLen,
			BucketSize:      c.HeaderFooter.BucketSize,
		},
		Merger: mergerSection{
			FontSizeTolerance:   c.Merger.FontSizeTolerance,
			XAlignTolerance:     c.Merger.XAlignTolerance,
			LineGapFactor:       c.Merger.LineGapFactor,
			ParagraphGapFactor:  c.Merger.ParagraphGapFactor,
			HorizontalGapFactor: c.Merger.HorizontalGapFactor,
			MaxMergedChars:      c.Merger.MaxMergedChars,
			BodyWordLimit:       c.Merger.BodyWordLimit,
			BodyRatioLow:        c.Merger.BodyRatioLow,
			BodyRatioHigh:       c.Merger.BodyRatioHigh,
			BodyIndentLow:       c.Merger.BodyIndentLow,
			BodyIndentHigh:      c.Merger.BodyIndentHigh,
		},
		Features: featuresSection{
			CenterTolerance:     c.Features.CenterTolerance,
			CenterMaxWidthRatio: c.Features.CenterMaxWidthRatio,
			ShortLineChars:      c.Features.ShortLineChars,
			ShortLineWords:      c.Features.ShortLineWords,
			ShortLineCJKChars:   c.Features.ShortLineCJKChars,
			LargeGapFactor:      c.Features.LargeGapFactor,
			SmallerFontDelta:    c.Features.SmallerFontDelta,
		},
		Thresholds: thresholdsSection{
			MinRatio:    c.Thresholds.MinRatio,
			LevelDrop:   c.Thresholds.LevelDrop,
			FillH2:      c.Thresholds.FillH2,
			FillH3:      c.Thresholds.FillH3,
			FillH4:      c.Thresholds.FillH4,
			ClampH2:     c.Thresholds.ClampH2,
			ClampH3:     c.Thresholds.ClampH3,
			ClampH4:     c.Thresholds.ClampH4,
			DescentStep: c.Thresholds.DescentStep,
		},
		Classifier: classifierSection{
			MarginRatio:           c.Classifier.MarginRatio,
			MinConfidence:         floorsToArray(c.Classifier.MinConfidence),
			LenientFloors:         floorsToArray(c.Classifier.LenientFloors),
			MaxWords:              c.Classifier.MaxWords,
			DominantMinShare:      c.Classifier.DominantMinShare,
			DominantMinCount:      c.Classifier.DominantMinCount,
			DominantMinConfidence: c.Classifier.DominantMinConfidence,
		},
		Resolver: resolverSection{
			DensityFloor:     c.Resolver.DensityFloor,
			DensityTarget:    c.Resolver.DensityTarget,
			PromoteRatio:     c.Resolver.PromoteRatio,
			MaxPerPageFactor: c.Resolver.MaxPerPageFactor,
		},
		Title: titleSection{
			MaxSamplePages:     c.Title.MaxSamplePages,
			SampleFraction:     c.Title.SampleFraction,
			MinScore:           c.Title.MinScore,
			FontWeight:         c.Title.FontWeight,
			BoldBonus:          c.Title.BoldBonus,
			PositionWeight:     c.Title.PositionWeight,
			BandBonus:          c.Title.BandBonus,
			BandPenalty:        c.Title.BandPenalty,
			RelatabilityWeight: c.Title.RelatabilityWeight,
		},
	}
}

// toConfig writes the decoded sections back onto base. Fields the file
// format does not expose, such as classifier weights, stay untouched.
func (f fileConfig) toConfig(base outliner.Config) outliner.Config {
	c := base

	c.HeaderFooter.MarginRatio = f.HeaderFooter.MarginRatio
	c.HeaderFooter.MinRecurrence = f.HeaderFooter.MinRecurrence
	c.HeaderFooter.DigitRecurrence = f.HeaderFooter.DigitRecurrence
	c.HeaderFooter.MaxDigitLen = f.HeaderFooter.MaxDigitLen
	c.HeaderFooter.BucketSize = f.HeaderFooter.BucketSize

	c.Merger.FontSizeTolerance = f.Merger.FontSizeTolerance
	c.Merger.XAlignTolerance = f.Merger.XAlignTolerance
	c.Merger.LineGapFactor = f.Merger.LineGapFactor
	c.Merger.ParagraphGapFactor = f.Merger.ParagraphGapFactor
	c.Merger.HorizontalGapFactor = f.Merger.HorizontalGapFactor
	c.Merger.MaxMergedChars = f.Merger.MaxMergedChars
	c.Merger.BodyWordLimit = f.Merger.BodyWordLimit
	c.Merger.BodyRatioLow = f.Merger.BodyRatioLow
	c.Merger.BodyRatioHigh = f.Merger.BodyRatioHigh
	c.Merger.BodyIndentLow = f.Merger.BodyIndentLow
	c.Merger.BodyIndentHigh = f.Merger.BodyIndentHigh

	c.Features.CenterTolerance = f.Features.CenterTolerance
	c.Features.CenterMaxWidthRatio = f.Features.CenterMaxWidthRatio
	c.Features.ShortLineChars = f.Features.ShortLineChars
	c.Features.ShortLineWords = f.Features.ShortLineWords
	c.Features.ShortLineCJKChars = f.Features.ShortLineCJKChars
	c.Features.LargeGapFactor = f.Features.LargeGapFactor
	c.Features.SmallerFontDelta = f.Features.SmallerFontDelta

	c.Thresholds.MinRatio = f.Thresholds.MinRatio
	c.Thresholds.LevelDrop = f.Thresholds.LevelDrop
	c.Thresholds.FillH2 = f.Thresholds.FillH2
	c.Thresholds.FillH3 = f.Thresholds.FillH3
	c.Thresholds.FillH4 = f.Thresholds.FillH4
	c.Thresholds.ClampH2 = f.Thresholds.ClampH2
	c.Thresholds.ClampH3 = f.Thresholds.ClampH3
	c.Thresholds.ClampH4 = f.Thresholds.ClampH4
	c.Thresholds.DescentStep = f.Thresholds.DescentStep

	c.Classifier.MarginRatio = f.Classifier.MarginRatio
	c.Classifier.MinConfidence = arrayToFloors(f.Classifier.MinConfidence)
	c.Classifier.LenientFloors = arrayToFloors(f.Classifier.LenientFloors)
	c.Classifier.MaxWords = f.Classifier.MaxWords
	c.Classifier.DominantMinShare = f.Classifier.DominantMinShare
	c.Classifier.DominantMinCount = f.Classifier.DominantMinCount
	c.Classifier.DominantMinConfidence = f.Classifier.DominantMinConfidence

	c.Resolver.DensityFloor = f.Resolver.DensityFloor
	c.Resolver.DensityTarget = f.Resolver.DensityTarget
	c.Resolver.PromoteRatio = f.Resolver.PromoteRatio
	c.Resolver.MaxPerPageFactor = f.Resolver.MaxPerPageFactor

	c.Title.MaxSamplePages = f.Title.MaxSamplePages
	c.Title.SampleFraction = f.Title.SampleFraction
	c.Title.MinScore = f.Title.MinScore
	c.Title.FontWeight = f.Title.FontWeight
	c.Title.BoldBonus = f.Title.BoldBonus
	c.Title.PositionWeight = f.Title.PositionWeight
	c.Title.BandBonus = f.Title.BandBonus
	c.Title.BandPenalty = f.Title.BandPenalty
	c.Title.RelatabilityWeight = f.Title.RelatabilityWeight

	return c
}

func floorsToArray(f layout.LevelFloors) [4]float64 {
	return [4]float64{f.H1, f.H2, f.H3, f.H4}
}

func arrayToFloors(a [4]float64) layout.LevelFloors {
	return layout.LevelFloors{H1: a[0], H2: a[1], H3: a[2], H4: a[3]}
}
