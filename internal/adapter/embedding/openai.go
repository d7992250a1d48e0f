package embedding

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.Embedder = (*OpenAIEmbedder)(nil)

// modelDimensions maps known embedding models to their output sizes.
var modelDimensions = map[string]int{
	"all-minilm":             384,
	"nomic-embed-text":       768,
	"mxbai-embed-large":      1024,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint. With a
// BaseURL override it also speaks to Ollama and other compatible
// servers. Returned vectors are L2-normalized so the flat index's dot
// product equals cosine similarity.
type OpenAIEmbedder struct {
	client    *openai.Client
	provider  string
	model     string
	dim       int
	batchSize int
	timeout   time.Duration
}

// OpenAIOptions configures an OpenAIEmbedder.
type OpenAIOptions struct {
	Provider  string
	Model     string
	APIKey    string
	BaseURL   string
	Dimension int
	BatchSize int
	Timeout   time.Duration
}

// NewOpenAIEmbedder builds a client for the configured endpoint. The
// dimension comes from the model table unless overridden.
func NewOpenAIEmbedder(opts OpenAIOptions) (*OpenAIEmbedder, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("embedding: model is required")
	}
	dim := opts.Dimension
	if dim == 0 {
		dim = modelDimensions[opts.Model]
	}
	if dim <= 0 {
		return nil, fmt.Errorf("embedding: unknown model %q, set an explicit dimension", opts.Model)
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	batch := opts.BatchSize
	if batch <= 0 {
		batch = 100
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	provider := opts.Provider
	if provider == "" {
		provider = "openai"
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(cfg),
		provider:  provider,
		model:     opts.Model,
		dim:       dim,
		batchSize: batch,
		timeout:   timeout,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vecs := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vecs = append(vecs, batch...)
	}
	return vecs, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	inputs := make([]string, len(texts))
	for i, text := range texts {
		inputs[i] = NormalizeText(text)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: inputs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingFailure, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d inputs",
			domain.ErrEmbeddingFailure, len(resp.Data), len(texts))
	}

	vecs := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		if len(item.Embedding) != e.dim {
			return nil, fmt.Errorf("%w: model returned dimension %d, expected %d",
				domain.ErrEmbeddingFailure, len(item.Embedding), e.dim)
		}
		vec := make([]float32, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float32(v)
		}
		vecs[i] = l2Normalize(vec)
	}
	return vecs, nil
}

func (e *OpenAIEmbedder) Dimension() int { return e.dim }

func (e *OpenAIEmbedder) ModelID() string { return e.provider + "/" + e.model }
