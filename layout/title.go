package layout

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// TitleConfig holds configuration for title selection
type TitleConfig struct {
	// MaxSamplePages and SampleFraction bound the early-page sample:
	// min(MaxSamplePages, ceil(SampleFraction * pages)), at least one
	// page (defaults: 3 and 0.2)
	MaxSamplePages int
	SampleFraction float64

	// MinScore is the acceptance floor; below it the filename fallback
	// applies (default: 3)
	MinScore float64

	// FontWeight scales the font-size percentile term (default: 10)
	FontWeight float64

	// BoldBonus is added for bold candidates (default: 5)
	BoldBonus float64

	// PositionWeight scales the front-of-document bonus (default: 5)
	PositionWeight float64

	// BandBonus and BandPenalty reward and punish the script-aware
	// title length band (defaults: 4 and 5)
	BandBonus   float64
	BandPenalty float64

	// RelatabilityWeight scales the Latin-only heading-overlap bonus
	// (default: 10)
	RelatabilityWeight float64
}

// DefaultTitleConfig returns sensible default configuration
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		MaxSamplePages:     3,
		SampleFraction:     0.2,
		MinScore:           3.0,
		FontWeight:         10.0,
		BoldBonus:          5.0,
		PositionWeight:     5.0,
		BandBonus:          4.0,
		BandPenalty:        5.0,
		RelatabilityWeight: 10.0,
	}
}

// TitleSelector scores early-page candidates and derives the document
// title. It never returns an empty string: when no visual candidate
// survives, the filename supplies a fallback.
type TitleSelector struct {
	config TitleConfig
}

// NewTitleSelector creates a selector with default configuration
func NewTitleSelector() *TitleSelector {
	return &TitleSelector{config: DefaultTitleConfig()}
}

// NewTitleSelectorWithConfig creates a selector with custom configuration
func NewTitleSelectorWithConfig(config TitleConfig) *TitleSelector {
	return &TitleSelector{config: config}
}

// Select derives the title from classified blocks, the page count, the
// document language, and the input filename.
func (t *TitleSelector) Select(blocks []*model.Block, doc *model.Document, language, filename string) string {
	samplePages := t.samplePageCount(doc.PageCount())

	headingWords := make(map[string]bool)
	for _, b := range blocks {
		if b.Level.IsHeading() {
			for _, w := range text.SignificantWords(b.Text, language) {
				headingWords[w] = true
			}
		}
	}

	var sample []*model.Block
	for _, b := range blocks {
		if b.Page >= samplePages || b.HeaderFooter {
			continue
		}
		if t.gibberish(b.Text) {
			continue
		}
		sample = append(sample, b)
	}

	best := ""
	bestScore := math.Inf(-1)
	bestScript := model.ScriptLatin
	for i, b := range sample {
		score := t.score(b, i, len(sample), sample, headingWords)
		if score > bestScore {
			bestScore = score
			best = b.Text
			bestScript = b.Features.Script
		}
	}

	if best != "" && bestScore >= t.config.MinScore {
		title := text.NormalizeTitle(best, language)
		title = text.TruncateTitle(title, bestScript)
		if title != "" {
			return title
		}
	}

	return t.fromFilename(filename, language)
}

func (t *TitleSelector) samplePageCount(pages int) int {
	n := int(math.Ceil(t.config.SampleFraction * float64(pages)))
	if n > t.config.MaxSamplePages {
		n = t.config.MaxSamplePages
	}
	if n < 1 {
		n = 1
	}
	return n
}

// gibberish eliminates candidates no plausible title looks like
func (t *TitleSelector) gibberish(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if strings.HasSuffix(s, "...") || strings.HasSuffix(s, "…") {
		return true
	}
	if text.LooksLikeAddress(s) || text.HasRepeatedFragments(s) {
		return true
	}
	if text.LetterRatio(s) < 0.5 {
		return true
	}

	words := strings.Fields(s)
	if len(words) > 0 {
		runes := 0
		for _, w := range words {
			runes += len([]rune(w))
		}
		if float64(runes)/float64(len(words)) < 2 {
			return true
		}
	}
	return false
}

func (t *TitleSelector) score(b *model.Block, index, total int, sample []*model.Block, headingWords map[string]bool) float64 {
	score := 0.0

	// Font-size percentile within the sample.
	below := 0
	for _, other := range sample {
		if other.FontSize <= b.FontSize {
			below++
		}
	}
	score += t.config.FontWeight * float64(below) / float64(len(sample))

	if b.Bold {
		score += t.config.BoldBonus
	}

	// Front-loaded position bonus.
	switch b.Page {
	case 0:
		score += t.config.PositionWeight
	case 1:
		score += t.config.PositionWeight / 2
	case 2:
		score += t.config.PositionWeight / 5
	}
	if total > 1 {
		score += 2 * (1 - float64(index)/float64(total-1))
	}
	if b.Features.Centered {
		score += 3
	}

	// Script-aware length band.
	script := b.Features.Script
	if script == model.ScriptUnknown {
		script = text.DetectScript(b.Text)
	}
	if script == model.ScriptCJK {
		chars := len([]rune(text.CollapseWhitespace(b.Text)))
		if chars >= 4 && chars <= 20 {
			score += t.config.BandBonus
		} else if chars > 30 {
			score -= t.config.BandPenalty
		}
	} else {
		words := len(strings.Fields(b.Text))
		if words >= 2 && words <= 6 {
			score += t.config.BandBonus
		} else if words > 10 || words < 2 {
			score -= t.config.BandPenalty
		}
	}

	// Heading relatability, Latin scripts only.
	if script == model.ScriptLatin && len(headingWords) > 0 {
		candidate := text.SignificantWords(b.Text, "en")
		if len(candidate) > 0 {
			shared := 0
			union := len(headingWords)
			seen := make(map[string]bool)
			for _, w := range candidate {
				if seen[w] {
					continue
				}
				seen[w] = true
				if headingWords[w] {
					shared++
				} else {
					union++
				}
			}
			score += t.config.RelatabilityWeight * float64(shared) / float64(union)
		}
	}

	// Completeness: multiple sentences make a paragraph, not a title.
	if text.TerminatorCount(b.Text) > 1 {
		score -= 4
	}

	return score
}

// fromFilename derives the fallback title from the input file name. A
// generic labeled title is the last resort; the result is never empty.
func (t *TitleSelector) fromFilename(filename, language string) string {
	base := filepath.Base(filename)
	if derived := text.TitleFromFilename(base, language); derived != "" {
		return derived
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSpace(stem)
	if stem == "" || stem == "." {
		return "Untitled Document"
	}
	return "Document " + stem
}

// SampleBlocks returns the blocks the selector would sample for a
// document, exposed for hosts that feed the same sample to language
// detection.
func (t *TitleSelector) SampleBlocks(blocks []*model.Block, doc *model.Document) []*model.Block {
	pages := t.samplePageCount(doc.PageCount())
	var out []*model.Block
	for _, b := range blocks {
		if b.Page < pages && !b.HeaderFooter {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].BBox.Top < out[j].BBox.Top
	})
	return out
}
