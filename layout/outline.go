package layout

import (
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/text"
)

// BuildOutline converts resolved blocks into the final outline: one node
// per heading block, in (page, top, x0) order, text truncated to the
// script-aware display budget.
func BuildOutline(blocks []*model.Block) []model.OutlineNode {
	model.SortBlocks(blocks)

	var nodes []model.OutlineNode
	for _, b := range blocks {
		if !b.Level.IsHeading() || b.HeaderFooter {
			continue
		}
		nodes = append(nodes, model.OutlineNode{
			Level: b.Level.String(),
			Text:  text.Truncate(b.Text, b.Features.Script),
			Page:  b.Page,
		})
	}
	return nodes
}
