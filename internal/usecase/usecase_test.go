package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/extract"
	"docqa/internal/adapter/store"
	"docqa/internal/adapter/synth"
	"docqa/internal/domain"
	"docqa/internal/logger"
	"docqa/internal/port"
)

func newTestPipeline(t *testing.T, persist *store.BoltStore) (*IngestUseCase, *QueryUseCase, *store.MemoryStore) {
	t.Helper()

	ch, err := chunker.NewWindowChunker(50, 10)
	require.NoError(t, err)
	emb := embedding.NewLocalEmbedder(384)
	mem := store.NewMemoryStore()
	qc := cache.NewQueryCache(16, time.Minute)
	log := logger.Discard()

	ingest := NewIngestUseCase(extract.NewRegistry(), ch, emb, mem, persist, qc, log)
	query := NewQueryUseCase(emb, mem, synth.NewRuleSynthesizer(), qc, 5, log)
	return ingest, query, mem
}

const factsText = `The Eiffel Tower stands in Paris and was completed in 1889.
It was designed by the engineer Gustave Eiffel for the World's Fair.
The tower is about 330 meters tall and made of wrought iron.
Millions of visitors climb the Eiffel Tower every year.`

func TestIngestAndQuery(t *testing.T) {
	ingest, query, _ := newTestPipeline(t, nil)
	ctx := context.Background()

	doc, err := ingest.Ingest(ctx, "facts.txt", "text/plain", []byte(factsText))
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, domain.DocTypeText, doc.Type)
	assert.Greater(t, doc.ChunkCount, 0)

	answer, err := query.Query(ctx, doc.ID, "How tall is the tower?")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "330 meters")
	assert.Greater(t, answer.Confidence, 0.0)
	require.NotEmpty(t, answer.Sources)
}

func TestIngest_UnsupportedType(t *testing.T) {
	ingest, _, _ := newTestPipeline(t, nil)

	_, err := ingest.Ingest(context.Background(), "archive.zip", "application/zip", []byte{0x50, 0x4b, 0x03, 0x04})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestIngest_EmptyDocument(t *testing.T) {
	ingest, _, mem := newTestPipeline(t, nil)

	_, err := ingest.Ingest(context.Background(), "empty.txt", "text/plain", []byte("   \n\t "))
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	assert.Empty(t, mem.List())
}

type failingEmbedder struct {
	dim int
}

func (f *failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, domain.ErrEmbeddingFailure
}

func (f *failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, domain.ErrEmbeddingFailure
}

func (f *failingEmbedder) Dimension() int { return f.dim }

func (f *failingEmbedder) ModelID() string { return "test/failing" }

func TestIngest_EmbeddingFailureLeavesNoTrace(t *testing.T) {
	ch, err := chunker.NewWindowChunker(50, 10)
	require.NoError(t, err)
	mem := store.NewMemoryStore()
	ingest := NewIngestUseCase(extract.NewRegistry(), ch, &failingEmbedder{dim: 8}, mem, nil, nil, logger.Discard())

	_, err = ingest.Ingest(context.Background(), "doc.txt", "text/plain", []byte(factsText))
	assert.ErrorIs(t, err, domain.ErrEmbeddingFailure)
	assert.Empty(t, mem.List())
}

func TestQuery_UnknownDocument(t *testing.T) {
	_, query, _ := newTestPipeline(t, nil)

	_, err := query.Query(context.Background(), "nope", "anything?")
	assert.ErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestQuery_EmptyQuestion(t *testing.T) {
	_, query, _ := newTestPipeline(t, nil)

	_, err := query.Query(context.Background(), "any", "   ")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestQuery_CachedAnswerStable(t *testing.T) {
	ingest, query, _ := newTestPipeline(t, nil)
	ctx := context.Background()

	doc, err := ingest.Ingest(ctx, "facts.txt", "text/plain", []byte(factsText))
	require.NoError(t, err)

	first, err := query.Query(ctx, doc.ID, "Who designed the tower?")
	require.NoError(t, err)
	second, err := query.Query(ctx, doc.ID, "Who designed the tower?")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDelete_RemovesDocument(t *testing.T) {
	ingest, query, _ := newTestPipeline(t, nil)
	ctx := context.Background()

	doc, err := ingest.Ingest(ctx, "facts.txt", "text/plain", []byte(factsText))
	require.NoError(t, err)

	require.NoError(t, ingest.Delete(doc.ID))
	assert.ErrorIs(t, ingest.Delete(doc.ID), domain.ErrUnknownDocument)

	_, err = query.Query(ctx, doc.ID, "How tall is the tower?")
	assert.ErrorIs(t, err, domain.ErrUnknownDocument)
}

func TestRehydrate_RestoresPersistedDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docqa.db")
	persist, err := store.OpenBolt(path)
	require.NoError(t, err)

	ingest, _, _ := newTestPipeline(t, persist)
	ctx := context.Background()

	doc, err := ingest.Ingest(ctx, "facts.txt", "text/plain", []byte(factsText))
	require.NoError(t, err)
	require.NoError(t, persist.Close())

	// Fresh process: new store, same database file.
	persist2, err := store.OpenBolt(path)
	require.NoError(t, err)
	defer persist2.Close()

	ingest2, query2, mem2 := newTestPipeline(t, persist2)
	restored, err := ingest2.Rehydrate()
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	require.Len(t, mem2.List(), 1)

	answer, err := query2.Query(ctx, doc.ID, "How tall is the tower?")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "330 meters")

	idx, err := mem2.Index(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ChunkCount, idx.Len())
}

var _ port.Embedder = (*failingEmbedder)(nil)

func TestIngest_ErrorKinds(t *testing.T) {
	ingest, _, _ := newTestPipeline(t, nil)

	_, err := ingest.Ingest(context.Background(), "broken.pdf", "application/pdf", []byte("not a pdf"))
	if !errors.Is(err, domain.ErrExtractionFailure) && !errors.Is(err, domain.ErrEmptyDocument) {
		t.Fatalf("expected extraction failure for malformed pdf, got %v", err)
	}
}
