package port

import "docqa/internal/domain"

// Chunker splits extracted text into overlapping windows with stable
// identifiers. Identical input always yields an identical sequence.
type Chunker interface {
	Chunk(docID, text string, pages []domain.PageSpan) ([]domain.Chunk, error)
}
