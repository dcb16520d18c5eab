package outliner

import (
	"github.com/tsawler/outliner/lang"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/nlp"
)

// Config bundles the tunables of every pipeline stage. The zero value is
// not usable; start from DefaultConfig and override fields.
type Config struct {
	// HeaderFooter configures recurring header/footer detection
	HeaderFooter layout.HeaderFooterConfig

	// Merger configures span-to-block merging
	Merger layout.MergerConfig

	// Features configures per-block feature computation
	Features layout.FeatureConfig

	// Thresholds configures dynamic per-level font thresholds
	Thresholds layout.ThresholdConfig

	// Classifier configures the three-tier classification cascade
	Classifier layout.ClassifierConfig

	// Resolver configures hierarchy smoothing and coverage enforcement
	Resolver layout.ResolverConfig

	// Title configures title selection
	Title layout.TitleConfig
}

// DefaultConfig returns the tuned default configuration for all stages
func DefaultConfig() Config {
	return Config{
		HeaderFooter: layout.DefaultHeaderFooterConfig(),
		Merger:       layout.DefaultMergerConfig(),
		Features:     layout.DefaultFeatureConfig(),
		Thresholds:   layout.DefaultThresholdConfig(),
		Classifier:   layout.DefaultClassifierConfig(),
		Resolver:     layout.DefaultResolverConfig(),
		Title:        layout.DefaultTitleConfig(),
	}
}

// pipelineOptions holds the per-run configuration of a Pipeline
type pipelineOptions struct {
	config   Config
	language string // "" means detect
	analyzer nlp.Analyzer
	detector lang.Detector
}

// defaultPipelineOptions returns the default pipeline options
func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		config:   DefaultConfig(),
		language: "",
		analyzer: nlp.RuleAnalyzer{},
		detector: lang.ScriptDetector{},
	}
}
