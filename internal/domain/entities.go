package domain

import (
	"fmt"
	"time"
)

// DocType identifies the source format of an uploaded document.
type DocType string

const (
	DocTypePDF      DocType = "pdf"
	DocTypeMarkdown DocType = "markdown"
	DocTypeHTML     DocType = "html"
	DocTypeText     DocType = "text"
)

// Document is the metadata record for one uploaded document. It is
// immutable after creation except for deletion.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Type       DocType   `json:"type"`
	PageCount  int       `json:"pages,omitempty"`
	ChunkCount int       `json:"chunks"`
	CreatedAt  time.Time `json:"created_at"`
}

// Chunk is one overlapping window of a document's extracted text.
// Seq is the position in the single deterministic chunking pass;
// CharStart/CharEnd are absolute offsets into the cleaned source text.
// Page is 0 when the source format has no page boundaries.
type Chunk struct {
	DocID     string `json:"doc_id"`
	Seq       int    `json:"seq"`
	Text      string `json:"text"`
	CharStart int    `json:"char_start"`
	CharEnd   int    `json:"char_end"`
	Page      int    `json:"page,omitempty"`
}

// ID returns the chunk's stable identifier, derived from its document
// and sequence index.
func (c Chunk) ID() string {
	return fmt.Sprintf("%s:%d", c.DocID, c.Seq)
}

// Label names the chunk for citation display, preferring the page
// number when one is known.
func (c Chunk) Label() string {
	if c.Page > 0 {
		return fmt.Sprintf("page %d", c.Page)
	}
	return fmt.Sprintf("chunk %d", c.Seq)
}

// PageSpan maps a page number to its character range in the cleaned
// document text. Spans are non-overlapping and ordered by Start.
type PageSpan struct {
	Page  int
	Start int
	End   int
}

// ScoredChunk pairs a chunk with its retrieval similarity score.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

// Source cites one chunk used to build an answer. Text holds a short
// excerpt, not the full chunk.
type Source struct {
	ChunkID string  `json:"chunk_id"`
	Label   string  `json:"label"`
	Page    int     `json:"page,omitempty"`
	Score   float64 `json:"score"`
	Text    string  `json:"text"`
}

// Answer is the synthesized response to one query. It is derived per
// request and never persisted.
type Answer struct {
	Text       string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Sources    []Source `json:"sources"`
}
