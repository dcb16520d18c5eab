package model

// OutlineNode is a final emitted heading record. Nodes are produced once at
// pipeline end and never mutated; each traces back to exactly one block.
type OutlineNode struct {
	// Level is the heading level label ("H1".."H4")
	Level string `json:"level" msgpack:"level"`

	// Text is the heading text, truncated to a language-aware budget
	Text string `json:"text" msgpack:"text"`

	// Page is the zero-based page index the heading appears on
	Page int `json:"page" msgpack:"page"`
}

// Result is the pipeline output for one document: a derived title and a
// flat, page-ordered outline.
type Result struct {
	Title   string        `json:"title" msgpack:"title"`
	Outline []OutlineNode `json:"outline" msgpack:"outline"`
}
