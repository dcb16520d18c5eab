// Package render converts the flat outline into presentation forms: a
// nested tree for programmatic consumers and HTML for display.
package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/tsawler/outliner/model"
)

// Node is one entry in the nested outline tree
type Node struct {
	// Level is the heading level label ("H1".."H4")
	Level string `json:"level" msgpack:"level"`

	// Text is the heading text
	Text string `json:"text" msgpack:"text"`

	// Page is the zero-based page index
	Page int `json:"page" msgpack:"page"`

	// Children are the headings nested under this one
	Children []*Node `json:"children,omitempty" msgpack:"children,omitempty"`
}

// Tree nests the flat outline by level: each node's children are the
// following deeper nodes up to the next node at its own level or
// shallower. The input order is preserved; level jumps larger than one
// step attach to the nearest shallower node.
func Tree(outline []model.OutlineNode) []*Node {
	var roots []*Node
	var stack []*Node // stack[i] is the open node at depth i+1

	for _, n := range outline {
		level := model.ParseLevel(n.Level)
		if !level.IsHeading() {
			continue
		}
		node := &Node{Level: n.Level, Text: n.Text, Page: n.Page}
		depth := level.Depth()

		for len(stack) >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

// WriteHTML renders the result as a standalone HTML fragment: the title in
// a header element, headings as h1..h4 tags with page annotations.
func WriteHTML(w io.Writer, result *model.Result) error {
	var b strings.Builder
	b.WriteString("<article class=\"outline\">\n")
	if result.Title != "" {
		fmt.Fprintf(&b, "<header><h1>%s</h1></header>\n", html.EscapeString(result.Title))
	}
	b.WriteString("<nav>\n")
	for _, n := range result.Outline {
		level := model.ParseLevel(n.Level)
		if !level.IsHeading() {
			continue
		}
		tag := level.HTMLTag()
		fmt.Fprintf(&b, "<%s data-page=\"%d\">%s</%s>\n",
			tag, n.Page, html.EscapeString(n.Text), tag)
	}
	b.WriteString("</nav>\n</article>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteText renders the outline as indented plain text, two spaces per
// level, with the page number in a trailing column.
func WriteText(w io.Writer, result *model.Result) error {
	var b strings.Builder
	if result.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", result.Title)
	}
	for _, n := range result.Outline {
		level := model.ParseLevel(n.Level)
		if !level.IsHeading() {
			continue
		}
		indent := strings.Repeat("  ", level.Depth()-1)
		fmt.Fprintf(&b, "%s%s  [p.%d]\n", indent, n.Text, n.Page+1)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
