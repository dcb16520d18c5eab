package outliner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/outliner/model"
)

func span(txt string, page int, x0, top, width, fontSize float64, fontName string, bold bool) model.Span {
	return model.Span{
		Text:     txt,
		FontSize: fontSize,
		FontName: fontName,
		Bold:     bold,
		Page:     page,
		BBox:     model.BBox{X0: x0, Top: top, X1: x0 + width, Bottom: top + fontSize},
	}
}

func TestOutlineNumberedSection(t *testing.T) {
	doc := model.NewDocument()
	doc.SetPageSize(0, 612, 792)
	doc.AddSpan(span("1. Introduction", 0, 72, 150, 130, 14, "Times-Bold", true))
	doc.AddSpan(span("The methodology follows the standard reporting", 0, 72, 200, 380, 11, "Times", false))
	doc.AddSpan(span("framework adopted by the council in the previous", 0, 72, 216, 390, 11, "Times", false))
	doc.AddSpan(span("cycle and remains unchanged this year.", 0, 72, 232, 310, 11, "Times", false))

	result, err := FromDocument(doc).Language("en").Outline()
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}

	if len(result.Outline) != 1 {
		t.Fatalf("Outline has %d nodes, want 1: %+v", len(result.Outline), result.Outline)
	}
	node := result.Outline[0]
	if node.Level != "H1" || node.Text != "1. Introduction" || node.Page != 0 {
		t.Errorf("Node = %+v", node)
	}
	if result.Title == "" {
		t.Error("Title is empty")
	}
}

func TestOutlineExcludesPageFooters(t *testing.T) {
	doc := model.NewDocument()
	for page := 0; page < 10; page++ {
		doc.SetPageSize(page, 612, 792)
		doc.AddSpan(span("Section overview", page, 72, 150, 140, 16, "Times-Bold", true))
		doc.AddSpan(span(
			"The content of this page discusses operational matters in considerable and exhaustive detail for the record this cycle.",
			page, 72, 300, 400, 12, "Times", false))
		doc.AddSpan(span(fmt.Sprintf("Page %d of 10", page+1), page, 270, 770, 70, 10, "Times", false))
	}

	result, err := FromDocument(doc).Language("en").Outline()
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}

	if len(result.Outline) != 10 {
		t.Fatalf("Outline has %d nodes, want 10", len(result.Outline))
	}
	for _, node := range result.Outline {
		if node.Level != "H1" {
			t.Errorf("Node level = %s, want H1", node.Level)
		}
		if strings.Contains(node.Text, "Page") {
			t.Errorf("Footer text leaked into outline: %q", node.Text)
		}
	}
	if strings.Contains(result.Title, "Page ") {
		t.Errorf("Footer text leaked into title: %q", result.Title)
	}
}

func TestTitleFromOpaqueFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "E0H1CM114.json")
	content := `{
  "pages": [{"index": 0, "width": 612, "height": 792}],
  "spans": [
    {"text": "12345 67890", "font_size": 12, "page": 0, "bbox": [72, 300, 200, 312]}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	title, err := Open(path).Language("en").Title()
	if err != nil {
		t.Fatalf("Title: %v", err)
	}
	if title != "Document E0H1CM114" {
		t.Errorf("Title = %q, want %q", title, "Document E0H1CM114")
	}
}

func TestOutlineFromHTML(t *testing.T) {
	html := `<!DOCTYPE html>
<html><head><title>ignored by pipeline</title></head><body>
<h1>User Guide</h1>
<p>This guide walks through everything needed to get the product running.</p>
<p>Each chapter covers one part of the setup in order from scratch onward.</p>
<p>Readers familiar with earlier releases can skim the opening material safely.</p>
<h2>Installation</h2>
<p>Download the release archive and unpack it into the target directory tree.</p>
<p>Verify the checksums before running anything from the unpacked archive itself.</p>
<p>Then run the installer with the defaults unless policy dictates otherwise here.</p>
<h2>Configuration</h2>
<p>All options live in one file read once at startup from the root directory.</p>
<p>Unknown keys are rejected loudly instead of being silently ignored at load.</p>
<p>Restart the service after any change for the settings to take effect fully.</p>
</body></html>`

	dir := t.TempDir()
	path := filepath.Join(dir, "guide.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Open(path).Language("en").Outline()
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}

	if result.Title != "User Guide" {
		t.Errorf("Title = %q, want %q", result.Title, "User Guide")
	}

	var levels, texts []string
	for _, n := range result.Outline {
		levels = append(levels, n.Level)
		texts = append(texts, n.Text)
	}
	if len(result.Outline) != 3 {
		t.Fatalf("Outline = %v %v, want 3 nodes", levels, texts)
	}
	want := []struct{ level, text string }{
		{"H1", "User Guide"},
		{"H2", "Installation"},
		{"H2", "Configuration"},
	}
	for i, w := range want {
		if levels[i] != w.level || texts[i] != w.text {
			t.Errorf("Node %d = %s %q, want %s %q", i, levels[i], texts[i], w.level, w.text)
		}
	}
}

func TestOutlineNoInput(t *testing.T) {
	if _, err := (&Pipeline{options: defaultPipelineOptions()}).Outline(); err != ErrNoInput {
		t.Errorf("Outline without input = %v, want ErrNoInput", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("/nonexistent/file.json").Outline(); err == nil {
		t.Error("Missing file should fail")
	}
}

func TestMust(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(Open("/nonexistent/file.json").Outline())
}
