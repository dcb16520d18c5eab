package source

import (
	"github.com/tsawler/outliner/htmldoc"
	"github.com/tsawler/outliner/model"
)

// HTMLSource reads HTML documents through the htmldoc reader, which
// synthesizes page geometry for the markup.
type HTMLSource struct{}

// Extract implements [Source]
func (HTMLSource) Extract(path string) (*model.Document, error) {
	r, err := htmldoc.Open(path)
	if err != nil {
		return nil, err
	}
	return r.Document(), nil
}
