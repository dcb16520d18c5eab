// Package htmldoc converts HTML documents into span documents for the
// outline pipeline.
//
// HTML carries no page geometry, so the reader synthesizes it: block
// elements are laid out top to bottom on US Letter pages with tag-derived
// font sizes. The synthetic layout preserves exactly the signals the
// pipeline scores (relative font size, boldness, vertical gaps, page
// position), which lets the same heuristics run unchanged over HTML input.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// Page geometry for the synthetic layout, in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	marginLeft   = 72.0
	marginTop    = 72.0
	marginBottom = 72.0
)

// tagStyle is the synthetic rendering of one block element
type tagStyle struct {
	fontSize float64
	bold     bool
	spaceTop float64
}

var tagStyles = map[string]tagStyle{
	"h1":         {fontSize: 24, bold: true, spaceTop: 20},
	"h2":         {fontSize: 18, bold: true, spaceTop: 16},
	"h3":         {fontSize: 14.5, bold: true, spaceTop: 12},
	"h4":         {fontSize: 13, bold: true, spaceTop: 10},
	"h5":         {fontSize: 12.5, bold: true, spaceTop: 8},
	"h6":         {fontSize: 12, bold: true, spaceTop: 8},
	"p":          {fontSize: 12, spaceTop: 6},
	"li":         {fontSize: 12, spaceTop: 2},
	"blockquote": {fontSize: 12, spaceTop: 6},
	"pre":        {fontSize: 10, spaceTop: 6},
	"td":         {fontSize: 12, spaceTop: 2},
	"th":         {fontSize: 12, bold: true, spaceTop: 2},
	"dt":         {fontSize: 12, bold: true, spaceTop: 4},
	"dd":         {fontSize: 12, spaceTop: 2},
}

var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "nav": true, "svg": true, "iframe": true,
}

// Reader converts one parsed HTML document into a span document
type Reader struct {
	title string
	meta  map[string]string
	doc   *model.Document

	page    int
	cursorY float64
	ordinal int // next ordered-list item number, 0 outside <ol>
}

// Open parses an HTML file.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return OpenReader(f)
}

// OpenReader parses HTML from a stream.
func OpenReader(r io.Reader) (*Reader, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		meta:    make(map[string]string),
		doc:     model.NewDocument(),
		cursorY: marginTop,
	}
	reader.doc.SetPageSize(0, pageWidth, pageHeight)
	reader.extractHead(root)
	reader.walk(root)
	return reader, nil
}

// Title returns the content of the <title> element, normalized, or ""
func (r *Reader) Title() string {
	return r.title
}

// Metadata returns the <meta> name/content pairs from the document head
func (r *Reader) Metadata() map[string]string {
	return r.meta
}

// Document returns the synthesized span document
func (r *Reader) Document() *model.Document {
	return r.doc
}

func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = text.Normalize(textContent(c))
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.meta[name] = content
				}
			}
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// walk visits block elements in document order and emits one span per
// non-empty block.
func (r *Reader) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipElements[n.Data] {
			return
		}
		if style, ok := tagStyles[n.Data]; ok {
			content := text.Normalize(textContent(n))
			if content != "" {
				if n.Data == "li" {
					content = r.listMarker() + content
				}
				r.emit(content, style)
			}
			return
		}
		if n.Data == "ol" {
			prev := r.ordinal
			r.ordinal = 1
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.walk(c)
			}
			r.ordinal = prev
			return
		}
		if n.Data == "ul" {
			prev := r.ordinal
			r.ordinal = 0
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				r.walk(c)
			}
			r.ordinal = prev
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *Reader) listMarker() string {
	if r.ordinal > 0 {
		m := fmt.Sprintf("%d. ", r.ordinal)
		r.ordinal++
		return m
	}
	return "• "
}

// emit appends one span at the current cursor, breaking to a new page when
// the block would cross the bottom margin.
func (r *Reader) emit(content string, style tagStyle) {
	r.cursorY += style.spaceTop
	if r.cursorY+style.fontSize > pageHeight-marginBottom {
		r.page++
		r.cursorY = marginTop
		r.doc.SetPageSize(r.page, pageWidth, pageHeight)
	}

	width := estimateWidth(content, style.fontSize)
	fontName := "Synthetic"
	if style.bold {
		fontName = "Synthetic-Bold"
	}
	r.doc.AddSpan(model.Span{
		Text:     content,
		FontSize: style.fontSize,
		FontName: fontName,
		Bold:     style.bold,
		Page:     r.page,
		BBox: model.BBox{
			X0:     marginLeft,
			Top:    r.cursorY,
			X1:     marginLeft + width,
			Bottom: r.cursorY + style.fontSize,
		},
	})
	r.cursorY += style.fontSize * 1.4
}

// estimateWidth approximates rendered width at half an em per rune, capped
// at the text column width.
func estimateWidth(s string, fontSize float64) float64 {
	w := float64(len([]rune(s))) * fontSize * 0.5
	max := pageWidth - 2*marginLeft
	if w > max {
		return max
	}
	return w
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
