package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
)

func scored(docID string, seq int, text string, score float64) domain.ScoredChunk {
	return domain.ScoredChunk{
		Chunk: domain.Chunk{DocID: docID, Seq: seq, Text: text, Page: seq + 1},
		Score: score,
	}
}

func TestSynthesize_NoResults(t *testing.T) {
	s := NewRuleSynthesizer()

	answer, err := s.Synthesize("anything?", nil)
	require.NoError(t, err)
	assert.Equal(t, noAnswerText, answer.Text)
	assert.Zero(t, answer.Confidence)
	assert.Empty(t, answer.Sources)
}

func TestSynthesize_ExtractsMatchingSentence(t *testing.T) {
	s := NewRuleSynthesizer()
	results := []domain.ScoredChunk{
		scored("d1", 0,
			"The weather was mild that year. Paris is the capital of France. Local cuisine is famous.",
			0.82),
		scored("d1", 1, "Berlin is the capital of Germany.", 0.41),
	}

	answer, err := s.Synthesize("What is the capital of France?", results)
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "Paris is the capital of France.")
	assert.NotContains(t, answer.Text, "weather")
	require.NotEmpty(t, answer.Sources)
	assert.Equal(t, "d1:0", answer.Sources[0].ChunkID)
	assert.Equal(t, "page 1", answer.Sources[0].Label)
	assert.InDelta(t, 0.82, answer.Sources[0].Score, 1e-6)
}

func TestSynthesize_FallbackToLeadingSentences(t *testing.T) {
	s := NewRuleSynthesizer()
	results := []domain.ScoredChunk{
		scored("d1", 0, "First sentence here. Second sentence here. Third one. Fourth one.", 0.1),
	}

	answer, err := s.Synthesize("zebra spaceship?", results)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(answer.Text, "First sentence here."))
	assert.NotContains(t, answer.Text, "Fourth")
}

func TestSynthesize_SentenceOrderPreserved(t *testing.T) {
	s := NewRuleSynthesizer()
	results := []domain.ScoredChunk{
		scored("d1", 0,
			"Filler text about nothing. The engine burns hydrogen fuel. More filler words here. The engine produces thrust efficiently.",
			0.7),
	}

	answer, err := s.Synthesize("How does the engine work?", results)
	require.NoError(t, err)
	burns := strings.Index(answer.Text, "burns hydrogen")
	thrust := strings.Index(answer.Text, "produces thrust")
	require.GreaterOrEqual(t, burns, 0)
	require.GreaterOrEqual(t, thrust, 0)
	assert.Less(t, burns, thrust)
}

func TestSynthesize_SourcesOnlyUsedChunks(t *testing.T) {
	s := NewRuleSynthesizer()
	results := []domain.ScoredChunk{
		scored("d1", 0, "Photosynthesis converts sunlight into chemical energy.", 0.9),
		scored("d1", 1, "Unrelated filler content entirely.", 0.2),
	}

	answer, err := s.Synthesize("What does photosynthesis convert?", results)
	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "d1:0", answer.Sources[0].ChunkID)
}

func TestSynthesize_ExcerptCapped(t *testing.T) {
	s := NewRuleSynthesizer()
	long := strings.Repeat("photosynthesis energy conversion ", 20)
	results := []domain.ScoredChunk{scored("d1", 0, long, 0.8)}

	answer, err := s.Synthesize("What about photosynthesis energy?", results)
	require.NoError(t, err)
	require.NotEmpty(t, answer.Sources)
	assert.Len(t, answer.Sources[0].Text, excerptLen+3)
	assert.True(t, strings.HasSuffix(answer.Sources[0].Text, "..."))
}

func TestConfidence_MonotonicInTopScore(t *testing.T) {
	prev := -1.0
	for _, top := range []float64{0, 0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		conf := confidence([]domain.ScoredChunk{
			{Score: top},
			{Score: top * 0.5},
		})
		assert.GreaterOrEqual(t, conf, prev)
		assert.GreaterOrEqual(t, conf, 0.0)
		assert.LessOrEqual(t, conf, 1.0)
		prev = conf
	}
}

func TestConfidence_MarginRaises(t *testing.T) {
	separated := confidence([]domain.ScoredChunk{{Score: 0.8}, {Score: 0.1}})
	crowded := confidence([]domain.ScoredChunk{{Score: 0.8}, {Score: 0.79}})
	assert.Greater(t, separated, crowded)
}

func TestConfidence_NegativeScoresClamp(t *testing.T) {
	conf := confidence([]domain.ScoredChunk{{Score: -0.2}, {Score: -0.5}})
	assert.Zero(t, conf)
}

func TestClassifyQuestion(t *testing.T) {
	assert.Equal(t, questionWho, classifyQuestion("Who wrote this?"))
	assert.Equal(t, questionWhen, classifyQuestion("  when did it happen"))
	assert.Equal(t, questionWhere, classifyQuestion("Where is it?"))
	assert.Equal(t, questionWhy, classifyQuestion("Why though?"))
	assert.Equal(t, questionHow, classifyQuestion("How does it work?"))
	assert.Equal(t, questionGeneric, classifyQuestion("Tell me about it"))
}

func TestSplitSentences(t *testing.T) {
	sents := splitSentences("One. Two! Three? And a trailing fragment")
	require.Len(t, sents, 4)
	assert.Equal(t, "One.", sents[0])
	assert.Equal(t, "Two!", sents[1])
	assert.Equal(t, "Three?", sents[2])
	assert.Equal(t, "And a trailing fragment", sents[3])
}
