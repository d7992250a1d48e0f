package usecase

import (
	"context"
	"fmt"
	"strings"

	log "github.com/charmbracelet/log"

	"docqa/internal/adapter/cache"
	"docqa/internal/domain"
	"docqa/internal/port"
)

// QueryUseCase answers questions against one document: embed the
// question, search that document's index and synthesize an extractive
// answer with citations.
type QueryUseCase struct {
	embedder port.Embedder
	store    port.DocumentStore
	synth    port.Synthesizer
	cache    *cache.QueryCache
	topK     int
	log      *log.Logger
}

// NewQueryUseCase wires the query pipeline. cache may be nil to
// disable memoization.
func NewQueryUseCase(
	embedder port.Embedder,
	docStore port.DocumentStore,
	synth port.Synthesizer,
	queryCache *cache.QueryCache,
	topK int,
	logger *log.Logger,
) *QueryUseCase {
	if topK <= 0 {
		topK = 5
	}
	return &QueryUseCase{
		embedder: embedder,
		store:    docStore,
		synth:    synth,
		cache:    queryCache,
		topK:     topK,
		log:      logger,
	}
}

// Query answers a question against the given document.
func (u *QueryUseCase) Query(ctx context.Context, docID, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("question must not be empty")
	}

	if u.cache != nil {
		if answer, ok := u.cache.Get(docID, question, u.topK); ok {
			u.log.Debug("cache hit", "doc", docID)
			return answer, nil
		}
	}

	idx, err := u.store.Index(docID)
	if err != nil {
		return domain.Answer{}, err
	}
	chunks, err := u.store.Chunks(docID)
	if err != nil {
		return domain.Answer{}, err
	}

	qVec, err := u.embedder.Embed(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}

	hits, err := idx.Search(qVec, u.topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("search %s: %w", docID, err)
	}

	results := make([]domain.ScoredChunk, 0, len(hits))
	for _, hit := range hits {
		if hit.Seq < 0 || hit.Seq >= len(chunks) {
			return domain.Answer{}, fmt.Errorf("%w: hit references missing chunk %d",
				domain.ErrSynthesisFailure, hit.Seq)
		}
		results = append(results, domain.ScoredChunk{Chunk: chunks[hit.Seq], Score: hit.Score})
	}

	answer, err := u.synth.Synthesize(question, results)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: %v", domain.ErrSynthesisFailure, err)
	}

	if u.cache != nil {
		u.cache.Put(docID, question, u.topK, answer)
	}
	u.log.Debug("query answered",
		"doc", docID, "hits", len(hits), "confidence", fmt.Sprintf("%.2f", answer.Confidence))
	return answer, nil
}
