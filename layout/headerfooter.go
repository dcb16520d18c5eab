package layout

import (
	"math"
	"regexp"
	"strings"

	"github.com/tsawler/outliner/model"
)

// HeaderFooterConfig holds configuration for recurring header/footer
// detection.
type HeaderFooterConfig struct {
	// MarginRatio is the fraction of page height treated as the top and
	// bottom margin bands (default: 0.15)
	MarginRatio float64

	// MinRecurrence is the fraction of pages a (position, text) pair must
	// recur on to be marked (default: 0.30)
	MinRecurrence float64

	// DigitRecurrence is the relaxed recurrence fraction for short
	// all-digit strings such as bare page numbers (default: 0.50)
	DigitRecurrence float64

	// MaxDigitLen is the maximum length of a string eligible for the
	// relaxed all-digit rule (default: 5)
	MaxDigitLen int

	// BucketSize is the vertical quantization in points used to group
	// spans at "the same" position across pages (default: 5)
	BucketSize float64
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		MarginRatio:     0.15,
		MinRecurrence:   0.30,
		DigitRecurrence: 0.50,
		MaxDigitLen:     5,
		BucketSize:      5,
	}
}

// HeaderFooterDetector marks spans that recur at a consistent vertical
// position across pages. Detection runs over the unmerged span population
// so that fragmented headers still group by their normalized text.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{config: DefaultHeaderFooterConfig()}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom
// configuration.
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{config: config}
}

var digitRun = regexp.MustCompile(`\d+`)

// normalizeRecurring maps variable page text onto a stable grouping key:
// digit runs become "#" so "Page 3" and "Page 17" land in one group.
func normalizeRecurring(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = digitRun.ReplaceAllString(s, "#")
	return strings.Join(strings.Fields(s), " ")
}

// allDigits reports whether s consists solely of digits after trimming
func allDigits(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Detect returns the indexes of spans judged to be headers or footers.
// Requires more than one page; single-page documents return nothing.
func (d *HeaderFooterDetector) Detect(spans []model.Span, doc *model.Document) map[int]bool {
	marked := make(map[int]bool)
	if doc == nil || doc.PageCount() <= 1 {
		return marked
	}

	type key struct {
		bucket float64
		text   string
	}
	occurrences := make(map[key]map[int]bool) // key -> set of pages
	members := make(map[key][]int)            // key -> span indexes

	for i, s := range spans {
		ps := doc.PageSizeOf(s.Page)
		margin := ps.Height * d.config.MarginRatio
		inTop := s.BBox.Top <= margin
		inBottom := s.BBox.Bottom >= ps.Height-margin
		if !inTop && !inBottom {
			continue
		}

		norm := normalizeRecurring(s.Text)
		if norm == "" {
			continue
		}
		bucket := math.Round(s.BBox.Top/d.config.BucketSize) * d.config.BucketSize
		k := key{bucket: bucket, text: norm}
		if occurrences[k] == nil {
			occurrences[k] = make(map[int]bool)
		}
		occurrences[k][s.Page] = true
		members[k] = append(members[k], i)
	}

	pages := float64(doc.PageCount())
	for k, pageSet := range occurrences {
		recurrence := float64(len(pageSet)) / pages

		threshold := d.config.MinRecurrence
		// Bare page numbers recur but alternate corners; demand a
		// higher rate before discarding short digit strings.
		if k.text == "#" || isDigitKey(k.text, d.config.MaxDigitLen) {
			threshold = d.config.DigitRecurrence
		}

		if recurrence >= threshold && len(pageSet) > 1 {
			for _, idx := range members[k] {
				marked[idx] = true
			}
		}
	}

	// Short all-digit spans in the margin bands also match by value-free
	// identity: every page number differs, but they all normalize to "#".
	// That case is covered above; here we catch digit strings that kept
	// punctuation ("- 3 -").
	counts := make(map[string]map[int]bool)
	byText := make(map[string][]int)
	for i, s := range spans {
		ps := doc.PageSizeOf(s.Page)
		margin := ps.Height * d.config.MarginRatio
		if s.BBox.Top > margin && s.BBox.Bottom < ps.Height-margin {
			continue
		}
		stripped := strings.Trim(strings.TrimSpace(s.Text), "-– ")
		if !allDigits(stripped) || len(stripped) > d.config.MaxDigitLen {
			continue
		}
		k := "digits"
		if counts[k] == nil {
			counts[k] = make(map[int]bool)
		}
		counts[k][s.Page] = true
		byText[k] = append(byText[k], i)
	}
	for k, pageSet := range counts {
		if float64(len(pageSet))/pages >= d.config.DigitRecurrence && len(pageSet) > 1 {
			for _, idx := range byText[k] {
				marked[idx] = true
			}
		}
	}

	return marked
}

func isDigitKey(norm string, maxLen int) bool {
	return norm == "#" || (len(norm) <= maxLen && !strings.ContainsAny(norm, "abcdefghijklmnopqrstuvwxyz"))
}
