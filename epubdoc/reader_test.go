package epubdoc

import (
	"archive/zip"
	"bytes"
	"errors"
	"sort"
	"testing"
)

const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const contentOPF = `<?xml version="1.0"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="uid">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Field Notes</dc:title>
    <dc:language>en</dc:language>
    <dc:creator>A. Naturalist</dc:creator>
  </metadata>
  <manifest>
    <item id="ch1" href="ch1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="ch2.xhtml" media-type="application/xhtml+xml"/>
    <item id="notes" href="notes.xhtml" media-type="application/xhtml+xml"/>
    <item id="cover" href="cover.jpg" media-type="image/jpeg"/>
  </manifest>
  <spine>
    <itemref idref="ch1"/>
    <itemref idref="ch2"/>
    <itemref idref="notes" linear="no"/>
  </spine>
</package>`

const chapterOne = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>Chapter One</title></head>
<body><h1>Chapter One</h1><p>The first expedition began at dawn on the river.</p></body></html>`

const chapterTwo = `<?xml version="1.0" encoding="utf-8"?>
<html xmlns="http://www.w3.org/1999/xhtml"><head><title>Chapter Two</title></head>
<body><h1>Chapter Two</h1><p>The second expedition crossed the ridge before noon.</p></body></html>`

func sampleFiles() map[string]string {
	return map[string]string{
		"mimetype":               "application/epub+zip",
		"META-INF/container.xml": containerXML,
		"OEBPS/content.opf":      contentOPF,
		"OEBPS/ch1.xhtml":        chapterOne,
		"OEBPS/ch2.xhtml":        chapterTwo,
	}
}

func buildEPUB(t *testing.T, files map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func openSample(t *testing.T, files map[string]string) *Reader {
	t.Helper()
	data := buildEPUB(t, files)
	r, err := OpenReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	return r
}

func TestReadEPUB(t *testing.T) {
	r := openSample(t, sampleFiles())

	if r.Title() != "Field Notes" {
		t.Errorf("Title = %q, want %q", r.Title(), "Field Notes")
	}
	if r.Language() != "en" {
		t.Errorf("Language = %q, want en", r.Language())
	}

	doc := r.Document()
	if len(doc.Pages) != 2 {
		t.Fatalf("Pages = %d, want 2 (one per chapter)", len(doc.Pages))
	}
	if len(doc.Spans) != 4 {
		t.Fatalf("Spans = %d, want 4: %+v", len(doc.Spans), doc.Spans)
	}

	first := doc.Spans[0]
	if first.Text != "Chapter One" || !first.Bold || first.FontSize != 24 || first.Page != 0 {
		t.Errorf("First span = %+v", first)
	}

	// The second chapter starts on a fresh page.
	third := doc.Spans[2]
	if third.Text != "Chapter Two" || third.Page != 1 {
		t.Errorf("Second chapter span = %+v, want page 1", third)
	}
}

func TestReadEPUBSkipsNonLinearAndMissing(t *testing.T) {
	// notes.xhtml is in the spine as linear="no" and its file is absent;
	// both conditions must be tolerated silently.
	r := openSample(t, sampleFiles())
	for _, s := range r.Document().Spans {
		if s.Page > 1 {
			t.Errorf("Unexpected extra chapter page: %+v", s)
		}
	}
}

func TestReadEPUBWrongMimetype(t *testing.T) {
	files := sampleFiles()
	files["mimetype"] = "application/zip"
	data := buildEPUB(t, files)

	if _, err := OpenReader(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrInvalidMimetype) {
		t.Errorf("OpenReader = %v, want ErrInvalidMimetype", err)
	}
}

func TestReadEPUBMissingMimetype(t *testing.T) {
	files := sampleFiles()
	delete(files, "mimetype")
	r := openSample(t, files)
	if r.Title() != "Field Notes" {
		t.Errorf("Title = %q, want %q", r.Title(), "Field Notes")
	}
}

func TestReadEPUBEncrypted(t *testing.T) {
	files := sampleFiles()
	files["META-INF/encryption.xml"] = "<encryption/>"
	data := buildEPUB(t, files)

	if _, err := OpenReader(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrEncrypted) {
		t.Errorf("OpenReader = %v, want ErrEncrypted", err)
	}
}

func TestReadEPUBMissingContainer(t *testing.T) {
	files := sampleFiles()
	delete(files, "META-INF/container.xml")
	data := buildEPUB(t, files)

	if _, err := OpenReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("OpenReader should fail without container.xml")
	}
}

func TestReadEPUBNotAZip(t *testing.T) {
	data := []byte("definitely not a zip archive")
	if _, err := OpenReader(bytes.NewReader(data), int64(len(data))); !errors.Is(err, ErrInvalidArchive) {
		t.Errorf("OpenReader = %v, want ErrInvalidArchive", err)
	}
}
