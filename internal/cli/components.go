package cli

import (
	"fmt"
	"os"

	"docqa/config"
	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/store"
	"docqa/internal/adapter/synth"
	"docqa/internal/port"
	"docqa/internal/usecase"
)

// components holds the wired pipeline shared by serve, ingest and
// query.
type components struct {
	embedder port.Embedder
	persist  *store.BoltStore
	ingest   *usecase.IngestUseCase
	query    *usecase.QueryUseCase
}

// buildComponents wires the pipeline from config, opens persistence
// when enabled and rehydrates previously ingested documents.
func buildComponents(cfg *config.Config) (*components, error) {
	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	ch, err := chunker.NewWindowChunker(cfg.Ingest.ChunkTokens, cfg.Ingest.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	var persist *store.BoltStore
	if cfg.Storage.Persist {
		if err := config.EnsureDataDir(cfg.Storage.DataDir); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		persist, err = store.OpenBolt(config.StoreDBPath(cfg.Storage.DataDir))
		if err != nil {
			return nil, err
		}
		reset, err := persist.EnsureModel(embedder.ModelID(), embedder.Dimension())
		if err != nil {
			persist.Close()
			return nil, err
		}
		if reset {
			logg.Warn("embedding model changed, dropped persisted indexes",
				"model", embedder.ModelID())
		}
	}

	var qc *cache.QueryCache
	if cfg.Retrieve.CacheEnabled {
		qc = cache.NewQueryCache(cfg.Retrieve.CacheSize, cfg.Retrieve.CacheTTL())
	}

	mem := store.NewMemoryStore()
	ingest := usecase.NewIngestUseCase(extract.NewRegistry(), ch, embedder, mem, persist, qc, logg)
	query := usecase.NewQueryUseCase(embedder, mem, synth.NewRuleSynthesizer(), qc, cfg.Retrieve.TopK, logg)

	if _, err := ingest.Rehydrate(); err != nil {
		if persist != nil {
			persist.Close()
		}
		return nil, err
	}

	return &components{embedder: embedder, persist: persist, ingest: ingest, query: query}, nil
}

func (c *components) close() {
	if c.persist != nil {
		c.persist.Close()
	}
}

func buildEmbedder(cfg config.EmbeddingConfig) (port.Embedder, error) {
	switch cfg.Provider {
	case "", "local":
		return embedding.NewLocalEmbedder(cfg.Dimension), nil
	case "openai":
		apiKey := os.Getenv(cfg.APIKeyEnv)
		if apiKey == "" {
			return nil, fmt.Errorf("embedding provider openai requires %s to be set", cfg.APIKeyEnv)
		}
		return embedding.NewOpenAIEmbedder(embedding.OpenAIOptions{
			Provider:  "openai",
			Model:     cfg.Model,
			APIKey:    apiKey,
			BaseURL:   cfg.BaseURL,
			Dimension: cfg.Dimension,
			BatchSize: cfg.BatchSize,
			Timeout:   cfg.Timeout(),
		})
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return embedding.NewOpenAIEmbedder(embedding.OpenAIOptions{
			Provider:  "ollama",
			Model:     cfg.Model,
			APIKey:    "ollama",
			BaseURL:   baseURL,
			Dimension: cfg.Dimension,
			BatchSize: cfg.BatchSize,
			Timeout:   cfg.Timeout(),
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
