package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/google/uuid"

	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/index"
	"docqa/internal/adapter/store"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// IngestUseCase runs the upload pipeline: pick an extractor, extract
// and clean text, chunk it, embed every chunk and build the document's
// vector index. The document becomes queryable only after the whole
// pipeline succeeds; a failure at any stage leaves no trace.
type IngestUseCase struct {
	registry *extract.Registry
	chunker  port.Chunker
	embedder port.Embedder
	store    port.DocumentStore
	persist  *store.BoltStore
	cache    *cache.QueryCache
	log      *log.Logger
}

// NewIngestUseCase wires the ingestion pipeline. persist and cache may
// be nil when persistence or caching is disabled.
func NewIngestUseCase(
	registry *extract.Registry,
	chunker port.Chunker,
	embedder port.Embedder,
	docStore port.DocumentStore,
	persist *store.BoltStore,
	queryCache *cache.QueryCache,
	logger *log.Logger,
) *IngestUseCase {
	return &IngestUseCase{
		registry: registry,
		chunker:  chunker,
		embedder: embedder,
		store:    docStore,
		persist:  persist,
		cache:    queryCache,
		log:      logger,
	}
}

// Ingest processes one uploaded file and returns the published
// document metadata.
func (u *IngestUseCase) Ingest(ctx context.Context, filename, declaredType string, data []byte) (domain.Document, error) {
	extractor, err := u.registry.Resolve(filename, declaredType, data)
	if err != nil {
		return domain.Document{}, err
	}

	result, err := extractor.Extract(data)
	if err != nil {
		return domain.Document{}, err
	}
	if strings.TrimSpace(result.Text) == "" {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, filename)
	}

	docID := uuid.NewString()
	chunks, err := u.chunker.Chunk(docID, result.Text, result.Pages)
	if err != nil {
		return domain.Document{}, fmt.Errorf("chunk %s: %w", filename, err)
	}
	if len(chunks) == 0 {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, filename)
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	vectors, err := u.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return domain.Document{}, err
	}
	if len(vectors) != len(chunks) {
		return domain.Document{}, fmt.Errorf("%w: got %d vectors for %d chunks",
			domain.ErrEmbeddingFailure, len(vectors), len(chunks))
	}

	entries := make([]port.VectorEntry, len(chunks))
	for i, ch := range chunks {
		entries[i] = port.VectorEntry{Seq: ch.Seq, Vector: vectors[i]}
	}
	idx := index.NewFlat(u.embedder.ModelID(), u.embedder.Dimension())
	if err := idx.Insert(entries); err != nil {
		return domain.Document{}, fmt.Errorf("index %s: %w", filename, err)
	}

	pageCount := 0
	for _, span := range result.Pages {
		if span.Page > pageCount {
			pageCount = span.Page
		}
	}

	doc := domain.Document{
		ID:         docID,
		Filename:   filename,
		Type:       extractor.Type(),
		PageCount:  pageCount,
		ChunkCount: len(chunks),
		CreatedAt:  time.Now().UTC(),
	}

	// Persist first so a crash between the two writes loses the upload
	// rather than surfacing a document that vanishes on restart.
	if u.persist != nil {
		if err := u.persist.SaveDocument(doc, chunks, entries); err != nil {
			return domain.Document{}, err
		}
	}
	if err := u.store.Publish(doc, chunks, idx); err != nil {
		return domain.Document{}, err
	}

	u.log.Info("document ingested",
		"id", doc.ID, "file", doc.Filename, "type", doc.Type, "chunks", doc.ChunkCount)
	return doc, nil
}

// Delete removes a document everywhere and drops its cached answers.
func (u *IngestUseCase) Delete(id string) error {
	if err := u.store.Delete(id); err != nil {
		return err
	}
	if u.persist != nil {
		if err := u.persist.DeleteDocument(id); err != nil {
			return err
		}
	}
	if u.cache != nil {
		u.cache.InvalidateDoc(id)
	}
	u.log.Info("document deleted", "id", id)
	return nil
}

// Get returns one document's metadata.
func (u *IngestUseCase) Get(id string) (domain.Document, error) {
	return u.store.Get(id)
}

// List returns all queryable documents.
func (u *IngestUseCase) List() []domain.Document {
	return u.store.List()
}

// Rehydrate republishes every persisted document into the in-memory
// store, rebuilding each vector index from stored vectors. Called once
// at startup; returns the number of documents restored.
func (u *IngestUseCase) Rehydrate() (int, error) {
	if u.persist == nil {
		return 0, nil
	}

	records, err := u.persist.LoadAll()
	if err != nil {
		return 0, fmt.Errorf("load persisted documents: %w", err)
	}
	for _, rec := range records {
		idx := index.NewFlat(u.embedder.ModelID(), u.embedder.Dimension())
		if err := idx.Insert(rec.Vectors); err != nil {
			return 0, fmt.Errorf("rebuild index for %s: %w", rec.Doc.ID, err)
		}
		if err := u.store.Publish(rec.Doc, rec.Chunks, idx); err != nil {
			return 0, err
		}
	}
	if len(records) > 0 {
		u.log.Info("documents restored", "count", len(records))
	}
	return len(records), nil
}
