package port

import "docqa/internal/domain"

// Synthesizer assembles an answer from retrieved chunks. Implementations
// are deterministic rule-based assemblers, not learned generators.
type Synthesizer interface {
	Synthesize(question string, results []domain.ScoredChunk) (domain.Answer, error)
}
