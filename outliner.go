// Package outliner provides a fluent API for deriving a heading outline
// and a document title from positioned text spans.
//
// Basic usage:
//
//	result, err := outliner.Open("document.json").Outline()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Title)
//	for _, node := range result.Outline {
//	    fmt.Printf("%s %s (page %d)\n", node.Level, node.Text, node.Page)
//	}
//
// With options:
//
//	result, err := outliner.Open("report.html").
//	    Language("de").
//	    WithConfig(cfg).
//	    Outline()
//
// For advanced use cases the lower-level layout package is also available.
package outliner

import (
	"errors"
	"strings"

	"github.com/tsawler/outliner/lang"
	"github.com/tsawler/outliner/layout"
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/nlp"
	"github.com/tsawler/outliner/source"
)

// ErrNoInput is returned by terminal operations on a pipeline created
// without a filename or document.
var ErrNoInput = errors.New("outliner: no input file or document")

// Pipeline carries the input reference and options through fluent
// configuration. Terminal operations (Outline, Title, Blocks) run the full
// analysis; a Pipeline may be reused and is safe to reconfigure between
// runs, but not concurrently.
type Pipeline struct {
	filename string
	doc      *model.Document
	options  pipelineOptions
}

// Open prepares a pipeline over an input file. The format is resolved by
// extension with a content-sniffing fallback; JSON and MessagePack span
// files, HTML documents, and EPUB archives are supported.
//
// Example:
//
//	result, err := outliner.Open("document.json").Outline()
func Open(filename string) *Pipeline {
	return &Pipeline{
		filename: filename,
		options:  defaultPipelineOptions(),
	}
}

// FromDocument prepares a pipeline over an already-loaded span document.
// Useful when spans come from a custom extractor rather than a file.
func FromDocument(doc *model.Document) *Pipeline {
	return &Pipeline{
		doc:     doc,
		options: defaultPipelineOptions(),
	}
}

// WithConfig replaces the stage configuration. Returns the pipeline for
// chaining.
func (p *Pipeline) WithConfig(config Config) *Pipeline {
	p.options.config = config
	return p
}

// Language pins the document language (a BCP-47 code such as "en" or
// "ja"), bypassing detection. Returns the pipeline for chaining.
func (p *Pipeline) Language(code string) *Pipeline {
	p.options.language = code
	return p
}

// WithAnalyzer replaces the linguistic analyzer used by feature
// enrichment and heading refinement. Passing nil disables linguistic
// refinement entirely. Returns the pipeline for chaining.
func (p *Pipeline) WithAnalyzer(a nlp.Analyzer) *Pipeline {
	p.options.analyzer = a
	return p
}

// WithDetector replaces the language detector consulted when no language
// is pinned. Returns the pipeline for chaining.
func (p *Pipeline) WithDetector(d lang.Detector) *Pipeline {
	p.options.detector = d
	return p
}

// Outline runs the full pipeline and returns the document title and the
// heading outline.
func (p *Pipeline) Outline() (*model.Result, error) {
	result, _, err := p.run()
	return result, err
}

// Title runs the full pipeline and returns only the document title. The
// title is never empty on success.
func (p *Pipeline) Title() (string, error) {
	result, _, err := p.run()
	if err != nil {
		return "", err
	}
	return result.Title, nil
}

// Blocks runs the full pipeline and returns the classified blocks, for
// hosts that render or post-process beyond the plain outline.
func (p *Pipeline) Blocks() ([]*model.Block, error) {
	_, blocks, err := p.run()
	return blocks, err
}

// run executes every stage in order: load, header/footer detection, span
// merging, feature enrichment, language resolution, threshold derivation,
// classification, refinement, hierarchy resolution, and title selection.
func (p *Pipeline) run() (*model.Result, []*model.Block, error) {
	doc := p.doc
	if doc == nil {
		if p.filename == "" {
			return nil, nil, ErrNoInput
		}
		loaded, err := source.Load(p.filename)
		if err != nil {
			return nil, nil, err
		}
		doc = loaded
	}
	model.SortSpans(doc.Spans)

	cfg := p.options.config

	headerFooter := layout.NewHeaderFooterDetectorWithConfig(cfg.HeaderFooter).
		Detect(doc.Spans, doc)
	blocks := layout.NewMergerWithConfig(cfg.Merger).Merge(doc, headerFooter)

	engine := layout.NewEngineWithConfig(cfg.Features)
	if p.options.analyzer != nil {
		engine.WithAnalyzer(p.options.analyzer)
	}
	common := engine.Enrich(blocks, doc)

	titleSelector := layout.NewTitleSelectorWithConfig(cfg.Title)

	language := p.options.language
	if language == "" {
		language = lang.Resolve(p.options.detector, languageSample(titleSelector, blocks, doc))
	}

	thresholds := layout.ComputeThresholds(blocks, common, cfg.Thresholds)
	ctx := layout.NewContext(doc, common, thresholds, language, cfg.Classifier)

	classifier := layout.NewClassifierWithConfig(cfg.Classifier)
	classifier.Classify(blocks, ctx)
	layout.NewRefiner(p.options.analyzer).Refine(blocks, ctx)
	layout.NewResolverWithConfig(cfg.Resolver).Resolve(blocks, ctx, classifier)

	result := &model.Result{
		Title:   titleSelector.Select(blocks, doc, language, p.filename),
		Outline: layout.BuildOutline(blocks),
	}
	return result, blocks, nil
}

// languageSample joins early-page block text for language detection,
// bounded so detection cost stays constant for huge documents.
func languageSample(selector *layout.TitleSelector, blocks []*model.Block, doc *model.Document) string {
	const maxRunes = 4000

	var b strings.Builder
	for _, block := range selector.SampleBlocks(blocks, doc) {
		if b.Len() >= maxRunes {
			break
		}
		b.WriteString(block.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	result := outliner.Must(outliner.Open("document.json").Outline())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
