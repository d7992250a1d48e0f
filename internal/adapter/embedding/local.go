package embedding

import (
	"context"
	"hash/fnv"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/port"
)

var _ port.Embedder = (*LocalEmbedder)(nil)

// LocalEmbedder is a deterministic hashed bag-of-words embedder. Each
// token is hashed into one of dim buckets and the resulting count
// vector is L2-normalized, so the dot product of two vectors is their
// cosine similarity. It needs no network or model files, which makes
// it the default provider and the backbone of offline tests. Quality
// is far below a learned model; prefer an API provider for real use.
type LocalEmbedder struct {
	dim       int
	tokenizer *analyzer.Tokenizer
}

// NewLocalEmbedder returns a hashed bag-of-words embedder producing
// vectors of the given dimension.
func NewLocalEmbedder(dim int) *LocalEmbedder {
	if dim <= 0 {
		dim = 384
	}
	return &LocalEmbedder{dim: dim, tokenizer: analyzer.NewTokenizer()}
}

func (e *LocalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dim)
	for _, tok := range e.tokenizer.Tokenize(NormalizeText(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[int(h.Sum32())%e.dim]++
	}
	return l2Normalize(vec), nil
}

func (e *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func (e *LocalEmbedder) Dimension() int { return e.dim }

func (e *LocalEmbedder) ModelID() string { return "local/hash-v1" }
