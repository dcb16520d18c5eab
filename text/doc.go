// Package text provides script-aware text analysis helpers for the outline
// pipeline.
//
// This package handles the text-level questions the layout stages keep
// asking: what writing system is this, is it noise, does it end a sentence,
// are its brackets balanced, how should it be normalized or truncated.
//
// # Script Classification
//
// [DetectScript] classifies a string into one of the [model.Script] values
// (Latin, CJK, Cyrillic, Arabic, Devanagari) by counting runes per script
// range. It is computed once per block and passed explicitly to the helpers
// that need it.
//
// # Noise Filtering
//
// [IsUninformative] applies the rejection rules for text that should never
// become a heading or title: URLs, emails, bare dates and times, page and
// figure markers, symbol-only strings, lone stop words, and extraction
// artifacts with internal word repetition.
//
// # Normalization
//
// [NormalizeTitle] and [CollapseWhitespace] clean candidate strings for
// emission; [Truncate] applies the script-aware display budget with an
// ellipsis marker.
package text
