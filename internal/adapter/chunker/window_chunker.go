package chunker

import (
	"fmt"
	"unicode"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// Ensure WindowChunker implements the interface.
var _ port.Chunker = (*WindowChunker)(nil)

// WindowChunker splits text into overlapping word-token windows. Each
// window holds size tokens and the start advances by size-overlap, so
// consecutive chunks share exactly overlap tokens; the final window may
// be shorter but is always emitted when non-empty. Chunk text is a
// direct slice of the source, so offsets are exact for citations.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker validates 0 < overlap < size and returns a chunker.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be greater than zero, got %d", size)
	}
	if overlap <= 0 || overlap >= size {
		return nil, fmt.Errorf("chunker: overlap %d must be in (0, %d)", overlap, size)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// tokenSpan is the character range of one whitespace-delimited token.
type tokenSpan struct {
	start int
	end   int
}

// Chunk performs the single deterministic chunking pass. Empty input
// yields an empty sequence, not an error.
func (c *WindowChunker) Chunk(docID, text string, pages []domain.PageSpan) ([]domain.Chunk, error) {
	tokens := scanTokens(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	step := c.size - c.overlap
	chunks := make([]domain.Chunk, 0, (len(tokens)+step-1)/step)

	for start, seq := 0, 0; start < len(tokens); start, seq = start+step, seq+1 {
		end := start + c.size
		if end > len(tokens) {
			end = len(tokens)
		}

		charStart := tokens[start].start
		charEnd := tokens[end-1].end
		chunks = append(chunks, domain.Chunk{
			DocID:     docID,
			Seq:       seq,
			Text:      text[charStart:charEnd],
			CharStart: charStart,
			CharEnd:   charEnd,
			Page:      pageFor(charStart, pages),
		})

		if end == len(tokens) {
			break
		}
	}

	return chunks, nil
}

// scanTokens finds the character spans of all whitespace-delimited
// tokens in text.
func scanTokens(text string) []tokenSpan {
	var spans []tokenSpan
	start := -1

	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, tokenSpan{start: start, end: i})
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, tokenSpan{start: start, end: len(text)})
	}

	return spans
}

// pageFor resolves the page containing a character offset, 0 when the
// document has no page boundaries.
func pageFor(pos int, pages []domain.PageSpan) int {
	for _, span := range pages {
		if pos >= span.Start && pos < span.End {
			return span.Page
		}
	}
	return 0
}
