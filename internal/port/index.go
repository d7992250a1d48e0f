package port

// VectorEntry is one (chunk sequence, vector) pair inserted at
// ingestion time.
type VectorEntry struct {
	Seq    int
	Vector []float32
}

// VectorHit is one search result: a chunk sequence index and its
// similarity score.
type VectorHit struct {
	Seq   int
	Score float64
}

// VectorIndex is the per-document nearest-neighbor structure. It is
// populated in one batch during ingestion and read-only afterwards, so
// implementations need no locking.
type VectorIndex interface {
	// Insert adds entries to the index. All vectors must match the
	// index dimension.
	Insert(entries []VectorEntry) error

	// Search returns up to k hits ordered by non-increasing score,
	// ties broken by ascending sequence index. An empty index yields
	// an empty result, not an error.
	Search(query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// ModelID returns the embedding model tag the index was created with.
	ModelID() string

	// Dimension returns the vector dimension.
	Dimension() int
}
