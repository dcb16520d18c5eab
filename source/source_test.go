package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"spans.json", JSON},
		{"spans.JSON", JSON},
		{"dump.msgpack", MsgPack},
		{"dump.mpk", MsgPack},
		{"page.html", HTML},
		{"page.htm", HTML},
		{"book.epub", EPUB},
		{"document.pdf", Unknown},
		{"noextension", Unknown},
	}
	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.expected {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.expected)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"json object", []byte(`{"spans": []}`), JSON},
		{"json array", []byte(`[]`), JSON},
		{"json with leading space", []byte("\n\t {\"spans\": []}"), JSON},
		{"html doctype", []byte("<!DOCTYPE html><html></html>"), HTML},
		{"html tag", []byte("<html><body></body></html>"), HTML},
		{"msgpack fixmap", []byte{0x82, 0xa5}, MsgPack},
		{"msgpack map16", []byte{0xde, 0x00, 0x02}, MsgPack},
		{"zip archive", []byte("PK\x03\x04rest"), EPUB},
		{"pdf", []byte("%PDF-1.7"), Unknown},
		{"empty", nil, Unknown},
	}
	for _, tt := range tests {
		if got := DetectFromMagic(tt.data); got != tt.expected {
			t.Errorf("%s: DetectFromMagic = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestFormatString(t *testing.T) {
	if JSON.String() != "JSON" || MsgPack.String() != "MsgPack" || EPUB.String() != "EPUB" || Unknown.String() != "Unknown" {
		t.Error("Format.String mismatch")
	}
	if JSON.Extension() != ".json" || HTML.Extension() != ".html" || EPUB.Extension() != ".epub" {
		t.Error("Format.Extension mismatch")
	}
}

const sampleJSON = `{
  "pages": [{"index": 0, "width": 612, "height": 792}],
  "spans": [
    {"text": "Body   text", "font_size": 12, "font_name": "Times", "page": 0, "bbox": [72, 200, 300, 212]},
    {"text": "Title", "font_size": 24, "font_name": "Times-Bold", "bold": true, "page": 0, "bbox": [216, 80, 396, 104]},
    {"text": "Second page", "font_size": 12, "page": 1, "bbox": [72, 100, 200, 112]}
  ]
}`

func TestDecodeJSON(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(doc.Spans) != 3 {
		t.Fatalf("Spans = %d, want 3", len(doc.Spans))
	}

	// Sorted into reading order: the 24pt title precedes the body span.
	if doc.Spans[0].Text != "Title" {
		t.Errorf("First span = %q, want Title", doc.Spans[0].Text)
	}
	// Whitespace collapsed at ingestion.
	if doc.Spans[1].Text != "Body text" {
		t.Errorf("Normalized text = %q, want %q", doc.Spans[1].Text, "Body text")
	}
	// Page 1 appears only in spans; it still gets dimensions.
	if doc.PageCount() != 2 {
		t.Errorf("PageCount = %d, want 2", doc.PageCount())
	}
	if ps := doc.PageSizeOf(1); ps.Width != 612 || ps.Height != 792 {
		t.Errorf("Defaulted page size = %+v", ps)
	}
}

func TestDecodeJSONRejectsNegativePage(t *testing.T) {
	bad := `{"spans": [{"text": "x", "font_size": 12, "page": -1, "bbox": [0, 0, 1, 1]}]}`
	if _, err := DecodeJSON(strings.NewReader(bad)); err == nil {
		t.Error("Negative page index should fail decoding")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, doc); err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	again, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("Re-decode: %v", err)
	}
	if len(again.Spans) != len(doc.Spans) || again.PageCount() != doc.PageCount() {
		t.Errorf("Round trip changed shape: %d/%d spans, %d/%d pages",
			len(again.Spans), len(doc.Spans), again.PageCount(), doc.PageCount())
	}
	if again.Spans[0].Text != doc.Spans[0].Text || again.Spans[0].BBox != doc.Spans[0].BBox {
		t.Errorf("Round trip changed first span: %+v vs %+v", again.Spans[0], doc.Spans[0])
	}
}

func TestMsgPackRoundTrip(t *testing.T) {
	doc, err := DecodeJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeMsgPack(&buf, doc); err != nil {
		t.Fatalf("EncodeMsgPack: %v", err)
	}
	if DetectFromMagic(buf.Bytes()) != MsgPack {
		t.Error("Encoded msgpack not recognized by magic sniffing")
	}
	again, err := DecodeMsgPack(&buf)
	if err != nil {
		t.Fatalf("DecodeMsgPack: %v", err)
	}
	if len(again.Spans) != len(doc.Spans) {
		t.Errorf("Spans = %d, want %d", len(again.Spans), len(doc.Spans))
	}
	if again.Spans[0].FontSize != 24 || !again.Spans[0].Bold {
		t.Errorf("First span lost styling: %+v", again.Spans[0])
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spans.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Spans) != 3 {
		t.Errorf("Spans = %d, want 3", len(doc.Spans))
	}
}

func TestLoadMagicFallback(t *testing.T) {
	// No recognized extension; content sniffing identifies JSON.
	dir := t.TempDir()
	path := filepath.Join(dir, "spans.dump")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Spans) != 3 {
		t.Errorf("Spans = %d, want 3", len(doc.Spans))
	}
}

func TestLoadUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.bin2")
	if err := os.WriteFile(path, []byte("%PDF-1.7"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Unsupported content should fail")
	}
}
