package index

import (
	"fmt"
	"sort"

	"docqa/internal/port"
)

var _ port.VectorIndex = (*Flat)(nil)

// Flat is an exact inner-product index. Vectors are stored as-is and
// every search scans all of them, which is plenty for per-document
// collections of a few thousand chunks. All vectors are L2-normalized
// by the embedder, so inner product equals cosine similarity.
//
// A Flat index is built once during ingestion and read-only afterwards,
// so it carries no lock: Insert must not race with Search.
type Flat struct {
	modelID string
	dim     int
	entries []port.VectorEntry
}

// NewFlat returns an empty index for vectors of the given dimension
// produced by the given model.
func NewFlat(modelID string, dim int) *Flat {
	return &Flat{modelID: modelID, dim: dim}
}

// Insert appends entries, rejecting any vector of the wrong dimension.
func (f *Flat) Insert(entries []port.VectorEntry) error {
	for _, e := range entries {
		if len(e.Vector) != f.dim {
			return fmt.Errorf("index: vector for seq %d has dimension %d, expected %d",
				e.Seq, len(e.Vector), f.dim)
		}
	}
	f.entries = append(f.entries, entries...)
	return nil
}

// Search returns the k entries with the highest inner product against
// the query, best first. Ties break on ascending sequence so results
// are deterministic.
func (f *Flat) Search(query []float32, k int) ([]port.VectorHit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("index: query has dimension %d, expected %d", len(query), f.dim)
	}
	if k <= 0 || len(f.entries) == 0 {
		return nil, nil
	}

	hits := make([]port.VectorHit, len(f.entries))
	for i, e := range f.entries {
		var sum float64
		for j, v := range e.Vector {
			sum += float64(v) * float64(query[j])
		}
		hits[i] = port.VectorHit{Seq: e.Seq, Score: sum}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Seq < hits[j].Seq
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func (f *Flat) Len() int { return len(f.entries) }

func (f *Flat) ModelID() string { return f.modelID }

func (f *Flat) Dimension() int { return f.dim }
