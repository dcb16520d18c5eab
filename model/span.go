package model

import "sort"

// Span is a single positioned text run supplied by an extraction source.
// Spans are immutable once created; the merger reads them but never writes.
type Span struct {
	// Text is the raw text content of the run
	Text string

	// FontSize is the nominal font size in points
	FontSize float64

	// FontName is the reported font name (may encode bold/italic)
	FontName string

	// Bold reports whether the run uses a bold face
	Bold bool

	// Italic reports whether the run uses an italic face
	Italic bool

	// BBox is the bounding box in top-left-origin page coordinates
	BBox BBox

	// Page is the zero-based page index
	Page int
}

// PageSize holds the dimensions of one page in points
type PageSize struct {
	Width  float64
	Height float64
}

// Document bundles the ordered spans of one input document with per-page
// dimensions. Extraction sources produce one Document per input.
type Document struct {
	// Spans are the positioned text runs in extraction order
	Spans []Span

	// Pages maps zero-based page index to page dimensions
	Pages map[int]PageSize
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		Pages: make(map[int]PageSize),
	}
}

// AddSpan appends a span to the document
func (d *Document) AddSpan(s Span) {
	d.Spans = append(d.Spans, s)
}

// SetPageSize records the dimensions of a page
func (d *Document) SetPageSize(page int, width, height float64) {
	if d.Pages == nil {
		d.Pages = make(map[int]PageSize)
	}
	d.Pages[page] = PageSize{Width: width, Height: height}
}

// PageCount returns the number of pages with recorded dimensions
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// PageSizeOf returns the dimensions of a page, or a standard letter-size
// fallback when the page is unknown. Downstream geometry never divides by
// zero because of a missing page record.
func (d *Document) PageSizeOf(page int) PageSize {
	if d != nil && d.Pages != nil {
		if ps, ok := d.Pages[page]; ok && ps.Width > 0 && ps.Height > 0 {
			return ps
		}
	}
	return PageSize{Width: 612, Height: 792}
}

// SortSpans orders spans by (page, top, x0), the canonical reading order
// every pipeline stage assumes.
func SortSpans(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Page != spans[j].Page {
			return spans[i].Page < spans[j].Page
		}
		if spans[i].BBox.Top != spans[j].BBox.Top {
			return spans[i].BBox.Top < spans[j].BBox.Top
		}
		return spans[i].BBox.X0 < spans[j].BBox.X0
	})
}
