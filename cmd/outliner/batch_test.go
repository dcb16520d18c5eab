package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/model"
)

const sectionJSON = `{
  "pages": [{"index": 0, "width": 612, "height": 792}],
  "spans": [
    {"text": "1. Introduction", "font_size": 14, "font_name": "Times-Bold", "bold": true, "page": 0, "bbox": [72, 150, 202, 164]},
    {"text": "The methodology follows the standard reporting", "font_size": 11, "font_name": "Times", "page": 0, "bbox": [72, 200, 452, 211]},
    {"text": "framework adopted by the council in the previous", "font_size": 11, "font_name": "Times", "page": 0, "bbox": [72, 216, 462, 227]},
    {"text": "cycle and remains unchanged this year.", "font_size": 11, "font_name": "Times", "page": 0, "bbox": [72, 232, 382, 243]}
  ]
}`

func TestOutlinePath(t *testing.T) {
	tests := []struct {
		path, root, outDir string
		want               string
	}{
		{"docs/report.json", "docs", "", "docs/report.outline.json"},
		{"docs/report.html", "docs", "out", filepath.Join("out", "report.outline.json")},
		{"docs/sub/a.json", "docs", "out", filepath.Join("out", "sub", "a.outline.json")},
	}
	for _, tt := range tests {
		if got := outlinePath(tt.path, tt.root, tt.outDir); got != tt.want {
			t.Errorf("outlinePath(%q, %q, %q) = %q, want %q",
				tt.path, tt.root, tt.outDir, got, tt.want)
		}
	}
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.html":           "<html><body><p>x</p></body></html>",
		"a.json":           sectionJSON,
		"notes.txt":        "plain text",
		"old.outline.json": "{}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := listDocuments(dir)
	if err != nil {
		t.Fatalf("listDocuments: %v", err)
	}
	want := []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.html")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("listDocuments = %v, want %v", got, want)
	}
}

func TestProcessOne(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.json")
	if err := os.WriteFile(input, []byte(sectionJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := processOne(input, dir, "", "en", outliner.DefaultConfig()); err != nil {
		t.Fatalf("processOne: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.outline.json"))
	if err != nil {
		t.Fatalf("reading outline: %v", err)
	}
	var result model.Result
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decoding outline: %v", err)
	}
	if result.Title == "" {
		t.Error("Title is empty")
	}
	if len(result.Outline) != 1 || result.Outline[0].Text != "1. Introduction" {
		t.Errorf("Outline = %+v, want the single numbered section", result.Outline)
	}
}

func TestProcessOneFailure(t *testing.T) {
	dir := t.TempDir()
	if err := processOne(filepath.Join(dir, "missing.json"), dir, "", "", outliner.DefaultConfig()); err == nil {
		t.Error("processOne should fail on a missing input")
	}
}
