package summary

import (
	"reflect"
	"testing"

	"github.com/tsawler/outliner/model"
)

const solarText = "Solar panels convert sunlight into power. " +
	"The panels need cleaning twice yearly. " +
	"Inverters fail more often than panels. " +
	"Paperwork takes one afternoon only."

func TestSummarizePicksDominantTopic(t *testing.T) {
	s := NewSummarizerWithConfig(Config{MaxSentences: 1, MinWords: 5})

	got := s.Summarize(solarText, "en")
	want := "Solar panels convert sunlight into power."
	if got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarizeKeepsReadingOrder(t *testing.T) {
	s := NewSummarizerWithConfig(Config{MaxSentences: 2, MinWords: 5})

	got := s.Summarize(solarText, "en")
	want := "Solar panels convert sunlight into power. " +
		"The panels need cleaning twice yearly."
	if got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarizeDropsShortSentences(t *testing.T) {
	s := NewSummarizerWithConfig(Config{MaxSentences: 2, MinWords: 3})

	got := s.Summarize("Cats chase mice. Cats chase birds. Dogs sleep.", "en")
	want := "Cats chase mice. Cats chase birds."
	if got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := NewSummarizer()

	cases := []string{
		"",
		"   ",
		"12 34. 56 78.",
	}
	for _, body := range cases {
		if got := s.Summarize(body, "en"); got != "" {
			t.Errorf("Summarize(%q) = %q, want empty", body, got)
		}
	}

	zero := NewSummarizerWithConfig(Config{MaxSentences: 0, MinWords: 1})
	if got := zero.Summarize(solarText, "en"); got != "" {
		t.Errorf("MaxSentences 0 = %q, want empty", got)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{
			"The rate rose to 3.5 percent. Numbers vary.",
			[]string{"The rate rose to 3.5 percent.", "Numbers vary."},
		},
		{
			"Really! Why? Done.",
			[]string{"Really!", "Why?", "Done."},
		},
		{
			"最初の文です。次の文です。",
			[]string{"最初の文です。", "次の文です。"},
		},
		{
			"No terminator at all",
			[]string{"No terminator at all"},
		},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitSentences(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitSentences(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSummarizeBlocks(t *testing.T) {
	blocks := []*model.Block{
		{Text: "Introduction", Level: model.LevelH1},
		{Text: "Cats chase mice."},
		{Text: "Page 1 of 10", HeaderFooter: true},
		{Text: "Cats chase birds."},
	}

	s := NewSummarizerWithConfig(Config{MaxSentences: 1, MinWords: 3})
	got := s.SummarizeBlocks(blocks, "en")
	want := "Cats chase mice."
	if got != want {
		t.Errorf("SummarizeBlocks = %q, want %q", got, want)
	}
}
