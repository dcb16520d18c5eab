package text

import (
	"strings"

	"github.com/tsawler/outliner/model"
)

const (
	// headingWordBudget is the display budget for heading text in scripts
	// with whitespace word boundaries
	headingWordBudget = 5

	// headingRuneBudget is the display budget for scripts without
	// whitespace word boundaries
	headingRuneBudget = 20
)

// Truncate applies the script-aware display budget to heading text, marking
// cut text with an ellipsis.
func Truncate(s string, script model.Script) string {
	s = CollapseWhitespace(s)
	if script == model.ScriptCJK {
		runes := []rune(s)
		if len(runes) > headingRuneBudget {
			return string(runes[:headingRuneBudget]) + "..."
		}
		return s
	}
	words := strings.Fields(s)
	if len(words) > headingWordBudget {
		return strings.Join(words[:headingWordBudget], " ") + "..."
	}
	return s
}

// TruncateTitle applies the looser title budget: 7 words for word-bounded
// scripts, 20 runes otherwise.
func TruncateTitle(s string, script model.Script) string {
	s = CollapseWhitespace(s)
	if script == model.ScriptCJK {
		runes := []rune(s)
		if len(runes) > 20 {
			return string(runes[:20])
		}
		return s
	}
	words := strings.Fields(s)
	if len(words) > 7 {
		return strings.Join(words[:7], " ")
	}
	return s
}
