package layout

import (
	"testing"

	"github.com/tsawler/outliner/model"
)

func TestTitleSelectProminent(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("Annual Report 2024", 0, 216, 100, 180, 24, true),
		makeBlock("Prepared by the finance team", 0, 72, 200, 300, 12, false),
	}
	doc := testDoc(1)
	NewEngine().Enrich(blocks, doc)

	got := NewTitleSelector().Select(blocks, doc, "en", "report.pdf")
	if got != "Annual Report 2024" {
		t.Errorf("Title = %q, want %q", got, "Annual Report 2024")
	}
}

func TestTitleFilenameFallback(t *testing.T) {
	got := NewTitleSelector().Select(nil, testDoc(1), "en", "/tmp/quarterly_report_2024.pdf")
	if got != "Quarterly Report 2024" {
		t.Errorf("Title = %q, want %q", got, "Quarterly Report 2024")
	}
}

func TestTitleOpaqueFilename(t *testing.T) {
	got := NewTitleSelector().Select(nil, testDoc(1), "en", "E0H1CM114.pdf")
	if got != "Document E0H1CM114" {
		t.Errorf("Title = %q, want %q", got, "Document E0H1CM114")
	}
}

func TestTitleNeverEmpty(t *testing.T) {
	filenames := []string{"", ".", "...", "___.pdf", "12345.pdf"}
	for _, name := range filenames {
		got := NewTitleSelector().Select(nil, testDoc(1), "en", name)
		if got == "" {
			t.Errorf("Select with filename %q returned an empty title", name)
		}
	}
}

func TestTitleTruncated(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("Annual Comprehensive Financial Report For Fiscal Year Two Thousand", 0, 72, 100, 400, 20, true),
	}
	doc := testDoc(1)
	NewEngine().Enrich(blocks, doc)

	got := NewTitleSelector().Select(blocks, doc, "en", "report.pdf")
	want := "Annual Comprehensive Financial Report For Fiscal Year"
	if got != want {
		t.Errorf("Title = %q, want truncation to %q", got, want)
	}
}

func TestTitleGibberishFilter(t *testing.T) {
	selector := NewTitleSelector()

	tests := []struct {
		input    string
		expected bool
	}{
		{"Continued from previous...", true},
		{"123 456 789", true},
		{"a b c d", true},
		{"Suite 100 on Main Street", true},
		{"", true},
		{"Annual Report", false},
	}
	for _, tt := range tests {
		if got := selector.gibberish(tt.input); got != tt.expected {
			t.Errorf("gibberish(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestTitleSamplePageCount(t *testing.T) {
	selector := NewTitleSelector()

	tests := []struct {
		pages    int
		expected int
	}{
		{1, 1},
		{5, 1},
		{10, 2},
		{15, 3},
		{100, 3},
	}
	for _, tt := range tests {
		if got := selector.samplePageCount(tt.pages); got != tt.expected {
			t.Errorf("samplePageCount(%d) = %d, want %d", tt.pages, got, tt.expected)
		}
	}
}

func TestTitleIgnoresLaterPages(t *testing.T) {
	blocks := []*model.Block{
		makeBlock("Front matter note", 0, 72, 100, 160, 12, false),
		// Largest text in the document, but far past the sample window.
		makeBlock("APPENDIX", 9, 216, 100, 180, 30, true),
	}
	doc := testDoc(10)
	NewEngine().Enrich(blocks, doc)

	got := NewTitleSelector().Select(blocks, doc, "en", "notes.pdf")
	if got == "APPENDIX" {
		t.Error("Title drawn from outside the sample window")
	}
}
