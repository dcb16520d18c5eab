// Package source loads positioned text spans from the supported input
// formats and hands them to the outline pipeline as a model.Document.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/outliner/model"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON indicates a JSON span file.
	JSON
	// MsgPack indicates a MessagePack span file.
	MsgPack
	// HTML indicates an HTML document.
	HTML
	// EPUB indicates an EPUB archive.
	EPUB
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case MsgPack:
		return "MsgPack"
	case HTML:
		return "HTML"
	case EPUB:
		return "EPUB"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case MsgPack:
		return ".msgpack"
	case HTML:
		return ".html"
	case EPUB:
		return ".epub"
	default:
		return ""
	}
}

// Detect determines the input format from the filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".msgpack", ".mpk", ".bin":
		return MsgPack
	case ".html", ".htm":
		return HTML
	case ".epub":
		return EPUB
	default:
		return Unknown
	}
}

// DetectFromMagic inspects leading bytes to determine the format. More
// reliable than extension-based detection; returns Unknown when the bytes
// are ambiguous.
func DetectFromMagic(data []byte) Format {
	// Trim leading whitespace.
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\t' ||
		data[start] == '\n' || data[start] == '\r') {
		start++
	}
	if start >= len(data) {
		return Unknown
	}
	data = data[start:]

	if data[0] == '{' || data[0] == '[' {
		return JSON
	}
	if len(data) >= 4 && data[0] == 'P' && data[1] == 'K' && data[2] == 0x03 && data[3] == 0x04 {
		return EPUB
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	// MessagePack documents start with a map or array header.
	switch {
	case data[0] >= 0x80 && data[0] <= 0x9f:
		return MsgPack
	case data[0] == 0xde || data[0] == 0xdf || data[0] == 0xdc || data[0] == 0xdd:
		return MsgPack
	}
	return Unknown
}

// detectHTMLMagic checks whether the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(string(data[:minInt(512, len(data))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	if strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML") {
		return true
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Source extracts a span document from one input file
type Source interface {
	Extract(path string) (*model.Document, error)
}

// For returns the source implementation for a format, or nil for Unknown
func For(f Format) Source {
	switch f {
	case JSON:
		return JSONSource{}
	case MsgPack:
		return MsgPackSource{}
	case HTML:
		return HTMLSource{}
	case EPUB:
		return EPUBSource{}
	default:
		return nil
	}
}

// Load opens a file, resolves its format by extension with a magic-byte
// fallback, and extracts its span document.
func Load(path string) (*model.Document, error) {
	f := Detect(path)
	if f == Unknown {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		f = DetectFromMagic(data)
	}
	src := For(f)
	if src == nil {
		return nil, fmt.Errorf("unsupported input format for %s", path)
	}
	return src.Extract(path)
}
