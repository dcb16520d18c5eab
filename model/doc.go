// Package model provides the intermediate representation for the outline
// extraction pipeline.
//
// This package defines the data structures that flow through the pipeline
// stages, making them the primary API for consuming results.
//
// # Spans and Blocks
//
// A [Span] is a single positioned text run supplied by an extraction source.
// Spans are immutable: the pipeline never modifies them. A [Block] is the
// mutable unit produced by merging one or more spans; later stages attach
// features to it and assign a heading [Level].
//
// # Documents
//
// The [Document] type bundles the ordered spans of one input document with
// its per-page dimensions:
//
//	doc := model.NewDocument()
//	doc.SetPageSize(0, 612, 792)
//	doc.AddSpan(span)
//
// # Results
//
// The pipeline produces a [Result] holding the derived title and a flat,
// page-ordered list of [OutlineNode] values (level, text, page).
//
// # Geometry
//
// [BBox] is a bounding box in top-left-origin page coordinates: Y grows
// downward, so Top < Bottom for any valid box. This matches the coordinate
// space most extraction sources report and keeps "higher on the page" the
// same as "smaller Top".
package model
