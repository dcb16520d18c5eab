package source

import (
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tsawler/outliner/model"
)

// MsgPackSource reads span documents from MessagePack files carrying the
// same record shape as the JSON codec. The binary form is what the batch
// driver emits for span dumps; it round-trips through [EncodeMsgPack].
type MsgPackSource struct{}

// Extract implements [Source]
func (MsgPackSource) Extract(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeMsgPack(f)
}

// DecodeMsgPack reads a span document from a stream
func DecodeMsgPack(r io.Reader) (*model.Document, error) {
	var rec documentRecord
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode span msgpack: %w", err)
	}
	return rec.toDocument()
}

// EncodeMsgPack writes a span document to a stream
func EncodeMsgPack(w io.Writer, doc *model.Document) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(fromDocument(doc)); err != nil {
		return fmt.Errorf("encode span msgpack: %w", err)
	}
	return nil
}
