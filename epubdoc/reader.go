// Package epubdoc converts EPUB archives into span documents for the
// outline pipeline.
//
// An EPUB is a zip of XHTML chapters plus a package document giving the
// reading order. Each linear spine chapter runs through the htmldoc
// synthetic layout; chapters concatenate with each one starting on a
// fresh page, so page indexes grow monotonically across the book.
package epubdoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

var (
	// ErrInvalidArchive indicates the file is not a readable zip archive.
	ErrInvalidArchive = errors.New("epub: invalid or corrupted archive")

	// ErrInvalidMimetype indicates the archive declares a non-EPUB mimetype.
	ErrInvalidMimetype = errors.New("epub: not an EPUB archive")

	// ErrEncrypted indicates DRM-protected content, which is not supported.
	ErrEncrypted = errors.New("epub: encrypted content is not supported")
)

// Reader provides the assembled span document of one EPUB
type Reader struct {
	title    string
	language string
	doc      *model.Document
}

// Open reads an EPUB file from a path.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, ErrInvalidArchive
	}
	defer zr.Close()
	return read(&zr.Reader)
}

// OpenReader reads an EPUB from an io.ReaderAt.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, ErrInvalidArchive
	}
	return read(zr)
}

// Title returns the package metadata title, normalized, or ""
func (r *Reader) Title() string {
	return r.title
}

// Language returns the package metadata language code, or ""
func (r *Reader) Language() string {
	return r.language
}

// Document returns the concatenated span document
func (r *Reader) Document() *model.Document {
	return r.doc
}

func read(zr *zip.Reader) (*Reader, error) {
	// A missing mimetype file is tolerated; a wrong one is not.
	if err := validateMimetype(zr); err != nil {
		return nil, err
	}
	if hasEncryption(zr) {
		return nil, ErrEncrypted
	}

	opfPath, err := findOPF(zr)
	if err != nil {
		return nil, err
	}
	pkg, baseDir, err := parseOPF(zr, opfPath)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		title:    text.Normalize(pkg.Metadata.Title),
		language: strings.TrimSpace(pkg.Metadata.Language),
		doc:      model.NewDocument(),
	}

	pageBase := 0
	for _, chapterPath := range pkg.chapterPaths(baseDir) {
		data, err := readFile(zr, chapterPath)
		if err != nil {
			continue // tolerate a missing chapter file
		}
		hr, err := htmldoc.OpenReader(bytes.NewReader(data))
		if err != nil {
			continue
		}
		chapter := hr.Document()
		if len(chapter.Spans) == 0 {
			continue
		}
		if r.title == "" {
			r.title = hr.Title()
		}
		pageBase = appendDocument(r.doc, chapter, pageBase)
	}

	if len(r.doc.Pages) == 0 {
		r.doc.SetPageSize(0, 612, 792)
	}
	model.SortSpans(r.doc.Spans)
	return r, nil
}

// appendDocument copies src into dst with all page indexes shifted by
// pageBase and returns the next free page index.
func appendDocument(dst, src *model.Document, pageBase int) int {
	indexes := make([]int, 0, len(src.Pages))
	for idx := range src.Pages {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	for _, idx := range indexes {
		ps := src.Pages[idx]
		dst.SetPageSize(pageBase+idx, ps.Width, ps.Height)
	}
	for _, s := range src.Spans {
		s.Page += pageBase
		dst.AddSpan(s)
	}
	return pageBase + len(indexes)
}

func validateMimetype(zr *zip.Reader) error {
	data, err := readFile(zr, "mimetype")
	if err != nil {
		return nil
	}
	if strings.TrimSpace(string(data)) != "application/epub+zip" {
		return ErrInvalidMimetype
	}
	return nil
}

// hasEncryption reports whether the archive carries an encryption
// manifest, the marker of DRM-protected EPUBs.
func hasEncryption(zr *zip.Reader) bool {
	for _, f := range zr.File {
		if f.Name == "META-INF/encryption.xml" {
			return true
		}
	}
	return false
}
