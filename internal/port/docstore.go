package port

import "docqa/internal/domain"

// DocumentStore maps document IDs to their metadata, chunks and owned
// vector index. A document becomes visible only through Publish, after
// all chunks are embedded and inserted; there is no partial state.
type DocumentStore interface {
	// Publish atomically stores a fully built document.
	Publish(doc domain.Document, chunks []domain.Chunk, index VectorIndex) error

	// Get returns document metadata, or domain.ErrUnknownDocument.
	Get(id string) (domain.Document, error)

	// Chunks returns the document's chunk sequence, or
	// domain.ErrUnknownDocument.
	Chunks(id string) ([]domain.Chunk, error)

	// Index returns the document's vector index, or
	// domain.ErrUnknownDocument.
	Index(id string) (VectorIndex, error)

	// List returns all published documents in a stable order.
	List() []domain.Document

	// Delete removes a document and destroys its index. Returns
	// domain.ErrUnknownDocument when absent.
	Delete(id string) error
}
