package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/outliner/model"
)

// JSONSource reads span documents from JSON files. The expected shape is
//
//	{
//	  "pages": [{"index": 0, "width": 612, "height": 792}],
//	  "spans": [
//	    {"text": "Title", "font_size": 24, "font_name": "Times-Bold",
//	     "bold": true, "page": 0, "bbox": [216, 80, 396, 104]}
//	  ]
//	}
//
// The pages list is optional; pages referenced only by spans default to US
// Letter dimensions.
type JSONSource struct{}

// Extract implements [Source]
func (JSONSource) Extract(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeJSON(f)
}

// DecodeJSON reads a span document from a stream
func DecodeJSON(r io.Reader) (*model.Document, error) {
	var rec documentRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode span JSON: %w", err)
	}
	return rec.toDocument()
}

// EncodeJSON writes a span document to a stream, indented for readability
func EncodeJSON(w io.Writer, doc *model.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDocument(doc)); err != nil {
		return fmt.Errorf("encode span JSON: %w", err)
	}
	return nil
}
