// Package layout implements the heading and title analysis stages of the
// outline pipeline.
//
// The stages run in a fixed order over one document:
//
//  1. [HeaderFooterDetector] marks recurring page furniture on the raw
//     span population.
//  2. [Merger] reconstructs logical blocks from fragmented spans.
//  3. [Engine] attaches per-block features and document statistics, and
//     [ComputeThresholds] derives the per-level font thresholds.
//  4. [Classifier] assigns heading levels through an ordered strategy
//     cascade (guaranteed pattern, structural dominant pattern, weighted
//     heuristic score).
//  5. [Resolver] smooths levels into consistent nesting and enforces
//     per-page coverage bounds.
//  6. [TitleSelector] scores early-page candidates and derives the title.
//
// Every stage accepts a configuration struct with documented defaults
// (DefaultMergerConfig, DefaultClassifierConfig, and so on) and offers
// NewXxx / NewXxxWithConfig constructors.
//
// No stage returns an error: malformed input degrades to safe defaults
// (zeroed geometry, common font size, no classification) rather than
// aborting a document.
package layout
