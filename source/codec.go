package source

import (
	"fmt"
	"sort"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// spanRecord is the wire form of one positioned text run. The bounding box
// is [x0, top, x1, bottom] in top-left-origin page points.
type spanRecord struct {
	Text     string     `json:"text" msgpack:"text"`
	FontSize float64    `json:"font_size" msgpack:"font_size"`
	FontName string     `json:"font_name,omitempty" msgpack:"font_name,omitempty"`
	Bold     bool       `json:"bold,omitempty" msgpack:"bold,omitempty"`
	Italic   bool       `json:"italic,omitempty" msgpack:"italic,omitempty"`
	Page     int        `json:"page" msgpack:"page"`
	BBox     [4]float64 `json:"bbox" msgpack:"bbox"`
}

// pageRecord is the wire form of one page's dimensions
type pageRecord struct {
	Index  int     `json:"index" msgpack:"index"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}

// documentRecord is the wire form of a span document
type documentRecord struct {
	Pages []pageRecord `json:"pages,omitempty" msgpack:"pages,omitempty"`
	Spans []spanRecord `json:"spans" msgpack:"spans"`
}

// toDocument converts the wire form into the pipeline model: text is
// normalized once here, and pages missing from the page list get default
// dimensions so geometry never sees a zero-sized page.
func (rec *documentRecord) toDocument() (*model.Document, error) {
	doc := model.NewDocument()
	for _, p := range rec.Pages {
		if p.Index < 0 {
			return nil, fmt.Errorf("negative page index %d", p.Index)
		}
		doc.SetPageSize(p.Index, p.Width, p.Height)
	}

	for i, s := range rec.Spans {
		if s.Page < 0 {
			return nil, fmt.Errorf("span %d: negative page index %d", i, s.Page)
		}
		doc.AddSpan(model.Span{
			Text:     text.Normalize(s.Text),
			FontSize: s.FontSize,
			FontName: s.FontName,
			Bold:     s.Bold,
			Italic:   s.Italic,
			Page:     s.Page,
			BBox:     model.BBox{X0: s.BBox[0], Top: s.BBox[1], X1: s.BBox[2], Bottom: s.BBox[3]},
		})
		if _, ok := doc.Pages[s.Page]; !ok {
			ps := doc.PageSizeOf(s.Page)
			doc.SetPageSize(s.Page, ps.Width, ps.Height)
		}
	}
	model.SortSpans(doc.Spans)
	return doc, nil
}

// fromDocument converts a pipeline document back to the wire form, used by
// the span-dump facility.
func fromDocument(doc *model.Document) *documentRecord {
	rec := &documentRecord{}
	indexes := make([]int, 0, len(doc.Pages))
	for idx := range doc.Pages {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	for _, idx := range indexes {
		ps := doc.Pages[idx]
		rec.Pages = append(rec.Pages, pageRecord{Index: idx, Width: ps.Width, Height: ps.Height})
	}
	for _, s := range doc.Spans {
		rec.Spans = append(rec.Spans, spanRecord{
			Text:     s.Text,
			FontSize: s.FontSize,
			FontName: s.FontName,
			Bold:     s.Bold,
			Italic:   s.Italic,
			Page:     s.Page,
			BBox:     [4]float64{s.BBox.X0, s.BBox.Top, s.BBox.X1, s.BBox.Bottom},
		})
	}
	return rec
}
