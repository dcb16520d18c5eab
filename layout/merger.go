package layout

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// MergerConfig holds configuration for span merging
type MergerConfig struct {
	// FontSizeTolerance is the maximum font-size difference in points for
	// two spans to count as the same size (default: 0.5)
	FontSizeTolerance float64

	// XAlignTolerance is the maximum left-edge difference in points for
	// two spans to count as aligned (default: 15)
	XAlignTolerance float64

	// LineGapFactor bounds the vertical gap for line continuation as a
	// multiple of the line height (default: 1.5)
	LineGapFactor float64

	// ParagraphGapFactor bounds the vertical gap for sentence, hyphen,
	// and bracket continuation as a multiple of the line height
	// (default: 2.5)
	ParagraphGapFactor float64

	// HorizontalGapFactor bounds the horizontal gap for same-line joins
	// as a multiple of the font size (default: 0.6)
	HorizontalGapFactor float64

	// MaxMergedChars stops further merging into one block once its text
	// reaches this length; a guard, not an error (default: 1000)
	MaxMergedChars int

	// BodyWordLimit is the word count above which a body-profile block is
	// excluded from classification outright (default: 15)
	BodyWordLimit int

	// BodyRatioLow and BodyRatioHigh bound the font ratio of the body
	// paragraph profile (defaults: 0.9 and 1.15)
	BodyRatioLow  float64
	BodyRatioHigh float64

	// BodyIndentLow and BodyIndentHigh bound the left indent of the body
	// paragraph profile relative to the page margin, in points
	// (defaults: -5 and 20)
	BodyIndentLow  float64
	BodyIndentHigh float64
}

// DefaultMergerConfig returns sensible default configuration
func DefaultMergerConfig() MergerConfig {
	return MergerConfig{
		FontSizeTolerance:   0.5,
		XAlignTolerance:     15.0,
		LineGapFactor:       1.5,
		ParagraphGapFactor:  2.5,
		HorizontalGapFactor: 0.6,
		MaxMergedChars:      1000,
		BodyWordLimit:       15,
		BodyRatioLow:        0.9,
		BodyRatioHigh:       1.15,
		BodyIndentLow:       -5.0,
		BodyIndentHigh:      20.0,
	}
}

// Merger reconstructs logical blocks from fragmented spans with a single
// forward sweep. A growing candidate block absorbs the next span when one
// of the continuation rules applies, in priority order: line continuation,
// hyphenation, unmatched bracket, sentence continuation, list marker.
type Merger struct {
	config MergerConfig
}

// NewMerger creates a merger with default configuration
func NewMerger() *Merger {
	return &Merger{config: DefaultMergerConfig()}
}

// NewMergerWithConfig creates a merger with custom configuration
func NewMergerWithConfig(config MergerConfig) *Merger {
	return &Merger{config: config}
}

// candidate is the growing block during the sweep
type candidate struct {
	text      string
	bbox      model.BBox
	fontSize  float64
	fontName  string
	bold      bool
	italic    bool
	page      int
	spanCount int
	height    float64 // representative line height
	sealed    bool    // length ceiling reached
}

// Merge converts the document's spans into blocks. Spans whose index
// appears in headerFooter become standalone blocks flagged permanently;
// they never merge with content. The result is sorted by (page, top, x0).
func (m *Merger) Merge(doc *model.Document, headerFooter map[int]bool) []*model.Block {
	if doc == nil || len(doc.Spans) == 0 {
		return nil
	}

	var blocks []*model.Block
	var content []model.Span

	for i, s := range doc.Spans {
		if !s.BBox.IsValid() {
			s.BBox = model.BBox{}
		}
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		if headerFooter[i] {
			blocks = append(blocks, &model.Block{
				Text:         text.Normalize(s.Text),
				BBox:         s.BBox,
				FontSize:     s.FontSize,
				FontName:     s.FontName,
				Bold:         s.Bold,
				Italic:       s.Italic,
				Page:         s.Page,
				SpanCount:    1,
				HeaderFooter: true,
			})
			continue
		}
		content = append(content, s)
	}

	model.SortSpans(content)
	lines := m.mergeHorizontal(content)

	var cand *candidate
	flush := func() {
		if cand == nil {
			return
		}
		blocks = append(blocks, &model.Block{
			Text:      text.Normalize(cand.text),
			BBox:      cand.bbox,
			FontSize:  cand.fontSize,
			FontName:  cand.fontName,
			Bold:      cand.bold,
			Italic:    cand.italic,
			Page:      cand.page,
			SpanCount: cand.spanCount,
		})
		cand = nil
	}

	for _, s := range lines {
		if cand == nil {
			cand = newCandidate(s)
			continue
		}
		if cand.sealed || s.Page != cand.page || !m.shouldAbsorb(cand, s) {
			flush()
			cand = newCandidate(s)
			continue
		}
		m.absorb(cand, s)
		if len(cand.text) >= m.config.MaxMergedChars {
			cand.sealed = true
		}
	}
	flush()

	m.flagBodyParagraphs(blocks)
	model.SortBlocks(blocks)
	return blocks
}

func newCandidate(s model.Span) *candidate {
	h := s.BBox.Height()
	if h <= 0 {
		h = s.FontSize
	}
	return &candidate{
		text:      s.Text,
		bbox:      s.BBox,
		fontSize:  s.FontSize,
		fontName:  s.FontName,
		bold:      s.Bold,
		italic:    s.Italic,
		page:      s.Page,
		spanCount: 1,
		height:    h,
	}
}

// shouldAbsorb applies the continuation rules in priority order
func (m *Merger) shouldAbsorb(c *candidate, s model.Span) bool {
	gap := s.BBox.Top - c.bbox.Bottom
	if gap < 0 {
		gap = 0
	}
	lineHeight := c.height
	if lineHeight <= 0 {
		lineHeight = 12
	}
	aligned := abs(s.BBox.X0-c.bbox.X0) <= m.config.XAlignTolerance
	fontMatch := abs(s.FontSize-c.fontSize) <= m.config.FontSizeTolerance

	// (a) line continuation: tight gap, aligned, same face
	if gap <= m.config.LineGapFactor*lineHeight && aligned && fontMatch &&
		s.FontName == c.fontName {
		return true
	}

	paraGap := m.config.ParagraphGapFactor * lineHeight

	// (b) hyphenation across lines
	if text.EndsWithHyphen(c.text) && gap <= paraGap {
		return true
	}

	// (c) unmatched opening bracket closed by the next span
	if closer := text.UnmatchedOpenBracket(c.text); closer != 0 &&
		strings.ContainsRune(s.Text, closer) && gap <= paraGap {
		return true
	}

	// (d) sentence continuation
	if !text.EndsSentence(c.text) && aligned && fontMatch &&
		text.StartsContinuation(s.Text) && gap <= paraGap {
		return true
	}

	// (e) short marker waiting for its content
	if text.IsShortMarker(c.text) && gap <= paraGap &&
		text.CountWords(s.Text, model.ScriptLatin) <= 12 {
		return true
	}

	return false
}

// absorb merges the span into the candidate: union box, max font size,
// ORed emphasis, separator chosen by punctuation adjacency.
func (m *Merger) absorb(c *candidate, s model.Span) {
	sep := " "
	switch {
	case text.EndsWithHyphen(c.text):
		c.text = strings.TrimRight(c.text, "-­ ")
		sep = ""
	case text.OpensBracket(c.text), text.NeedsNoSpaceBefore(s.Text):
		sep = ""
	case cjkAdjacent(c.text, s.Text):
		sep = ""
	}
	c.text += sep + s.Text

	c.bbox = c.bbox.Union(s.BBox)
	if s.FontSize > c.fontSize {
		c.fontSize = s.FontSize
		c.fontName = s.FontName
	}
	c.bold = c.bold || s.Bold
	c.italic = c.italic || s.Italic
	c.spanCount++
	if h := s.BBox.Height(); h > 0 {
		c.height = h
	}
}

// cjkAdjacent reports whether joining the two texts crosses a CJK-CJK
// boundary, which takes no space.
func cjkAdjacent(left, right string) bool {
	l, _ := utf8.DecodeLastRuneInString(left)
	r, _ := utf8.DecodeRuneInString(right)
	isCJK := func(r rune) bool {
		return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r)
	}
	return isCJK(l) && isCJK(r)
}

// horizontal pre-merge: repair spans an extractor split within one visual
// line, including the classic fragment pairs ("Page" + "3", date + time,
// currency + amount, number + "%").

var (
	currencyFragment = regexp.MustCompile(`^[$€£¥₹]$`)
	numberFragment   = regexp.MustCompile(`^[\d,.]+$`)
	percentFragment  = regexp.MustCompile(`^%`)
)

func (m *Merger) mergeHorizontal(spans []model.Span) []model.Span {
	if len(spans) < 2 {
		return spans
	}

	var out []model.Span
	i := 0
	for i < len(spans) {
		cur := spans[i]
		j := i + 1
		for j < len(spans) && m.sameLine(cur, spans[j]) && m.joinable(cur, spans[j]) {
			next := spans[j]
			sep := " "
			gap := next.BBox.X0 - cur.BBox.X1
			if gap < cur.FontSize*0.15 || currencyFragment.MatchString(strings.TrimSpace(cur.Text)) ||
				percentFragment.MatchString(strings.TrimSpace(next.Text)) {
				sep = ""
			}
			cur.Text = cur.Text + sep + next.Text
			cur.BBox = cur.BBox.Union(next.BBox)
			if next.FontSize > cur.FontSize {
				cur.FontSize = next.FontSize
				cur.FontName = next.FontName
			}
			cur.Bold = cur.Bold || next.Bold
			cur.Italic = cur.Italic || next.Italic
			j++
		}
		out = append(out, cur)
		i = j
	}
	return out
}

func (m *Merger) sameLine(a, b model.Span) bool {
	if a.Page != b.Page {
		return false
	}
	tol := a.BBox.Height() / 2
	if tol <= 0 {
		tol = a.FontSize / 2
	}
	if tol <= 0 {
		tol = 3
	}
	return abs(a.BBox.Top-b.BBox.Top) <= tol
}

func (m *Merger) joinable(a, b model.Span) bool {
	gap := b.BBox.X0 - a.BBox.X1
	if gap < 0 {
		return false
	}
	ref := a.FontSize
	if ref <= 0 {
		ref = 12
	}
	if gap <= m.config.HorizontalGapFactor*ref {
		return true
	}

	// Wider gaps still join for known split patterns.
	left := strings.TrimSpace(a.Text)
	right := strings.TrimSpace(b.Text)
	switch {
	case strings.EqualFold(left, "page") && numberFragment.MatchString(right):
		return true
	case text.IsStandaloneDate(left) && text.IsStandaloneTime(right):
		return true
	case currencyFragment.MatchString(left) && numberFragment.MatchString(right):
		return true
	case numberFragment.MatchString(left) && percentFragment.MatchString(right):
		return true
	}
	return false
}

// flagBodyParagraphs marks blocks whose merged profile matches ordinary
// body text, using the median block font size as a provisional common
// size. Long body candidates are excluded from classification entirely.
func (m *Merger) flagBodyParagraphs(blocks []*model.Block) {
	var sizes []float64
	for _, b := range blocks {
		if !b.HeaderFooter && b.FontSize > 0 {
			sizes = append(sizes, b.FontSize)
		}
	}
	if len(sizes) == 0 {
		return
	}
	sort.Float64s(sizes)
	common := sizes[len(sizes)/2]
	if common <= 0 {
		return
	}

	// Left margin per page, for the indent band.
	margins := make(map[int]float64)
	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		if x, ok := margins[b.Page]; !ok || b.BBox.X0 < x {
			margins[b.Page] = b.BBox.X0
		}
	}

	for _, b := range blocks {
		if b.HeaderFooter {
			continue
		}
		ratio := b.FontSize / common
		indent := b.BBox.X0 - margins[b.Page]
		words := text.CountWords(b.Text, text.DetectScript(b.Text))

		profile := ratio >= m.config.BodyRatioLow && ratio <= m.config.BodyRatioHigh &&
			!b.Bold &&
			indent >= m.config.BodyIndentLow && indent <= m.config.BodyIndentHigh

		if profile && words >= m.config.BodyWordLimit/2 {
			b.BodyParagraph = true
		}
		if profile && words > m.config.BodyWordLimit {
			b.ExcludedFromClassification = true
		}
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
