package source

import (
	"github.com/tsawler/outliner/epubdoc"
	"github.com/tsawler/outliner/model"
)

// EPUBSource reads EPUB archives through the epubdoc reader, which runs
// every spine chapter through the synthetic HTML layout.
type EPUBSource struct{}

// Extract implements [Source]
func (EPUBSource) Extract(path string) (*model.Document, error) {
	r, err := epubdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return r.Document(), nil
}
