package port

import "context"

// Embedder maps text to fixed-dimension dense vectors. Implementations
// apply identical normalization to chunk and query text, return
// L2-normalized vectors, and must be safe for concurrent use.
type Embedder interface {
	// Embed generates the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for the given texts, one vector
	// per input, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelID identifies the provider and model. Indices are tagged
	// with this value; mixing vectors from different models silently
	// corrupts similarity semantics and must be prevented.
	ModelID() string
}
