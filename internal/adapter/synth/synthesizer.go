package synth

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/domain"
	"docqa/internal/port"
)

var _ port.Synthesizer = (*RuleSynthesizer)(nil)

// noAnswerText is returned when retrieval produced nothing usable.
const noAnswerText = "I couldn't find relevant information in the document to answer your question."

const (
	maxAnswerSentences = 3
	maxSourceChunks    = 3
	excerptLen         = 200
)

// questionType biases sentence scoring toward the kind of fact the
// question asks for.
type questionType int

const (
	questionGeneric questionType = iota
	questionWho
	questionWhen
	questionWhere
	questionWhy
	questionHow
)

// RuleSynthesizer builds an answer extractively: it splits the
// retrieved chunks into sentences, scores each against the question's
// terms and stitches the best ones together in document order. No
// language model is involved, so answers are always verbatim quotes
// from the document with exact citations.
type RuleSynthesizer struct {
	tokenizer *analyzer.Tokenizer
}

func NewRuleSynthesizer() *RuleSynthesizer {
	return &RuleSynthesizer{tokenizer: analyzer.NewTokenizer()}
}

type scoredSentence struct {
	text     string
	score    float64
	chunkIdx int
	order    int
}

// Synthesize composes an extractive answer from retrieval results,
// which must be sorted best-first.
func (s *RuleSynthesizer) Synthesize(question string, results []domain.ScoredChunk) (domain.Answer, error) {
	if len(results) == 0 {
		return domain.Answer{Text: noAnswerText, Confidence: 0}, nil
	}

	qTerms := s.tokenizer.TermSet(question)
	qType := classifyQuestion(question)

	limit := maxSourceChunks
	if limit > len(results) {
		limit = len(results)
	}
	candidates := results[:limit]

	var sentences []scoredSentence
	order := 0
	for ci, result := range candidates {
		for _, sent := range splitSentences(result.Chunk.Text) {
			sentences = append(sentences, scoredSentence{
				text:     sent,
				score:    s.scoreSentence(sent, qTerms, qType),
				chunkIdx: ci,
				order:    order,
			})
			order++
		}
	}
	if len(sentences) == 0 {
		return domain.Answer{Text: noAnswerText, Confidence: 0}, nil
	}

	selected := selectSentences(sentences)
	usedChunks := map[int]bool{}
	parts := make([]string, 0, len(selected))
	for _, sent := range selected {
		parts = append(parts, sent.text)
		usedChunks[sent.chunkIdx] = true
	}

	sources := make([]domain.Source, 0, len(usedChunks))
	for ci, result := range candidates {
		if !usedChunks[ci] {
			continue
		}
		sources = append(sources, domain.Source{
			ChunkID: result.Chunk.ID(),
			Label:   result.Chunk.Label(),
			Page:    result.Chunk.Page,
			Score:   result.Score,
			Text:    excerpt(result.Chunk.Text),
		})
	}

	return domain.Answer{
		Text:       strings.Join(parts, " "),
		Confidence: confidence(results),
		Sources:    sources,
	}, nil
}

// selectSentences keeps the best-scoring sentences and restores their
// document order. When nothing matches the question it falls back to
// the leading sentences of the top chunk.
func selectSentences(sentences []scoredSentence) []scoredSentence {
	ranked := make([]scoredSentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if ranked[0].score <= 0 {
		var lead []scoredSentence
		for _, sent := range sentences {
			if sent.chunkIdx != 0 {
				break
			}
			lead = append(lead, sent)
			if len(lead) == maxAnswerSentences {
				break
			}
		}
		return lead
	}

	n := maxAnswerSentences
	if n > len(ranked) {
		n = len(ranked)
	}
	picked := make([]scoredSentence, 0, n)
	for _, sent := range ranked[:n] {
		if sent.score > 0 {
			picked = append(picked, sent)
		}
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].order < picked[j].order })
	return picked
}

// scoreSentence measures term overlap with the question, normalized by
// sentence length so short precise sentences beat long rambling ones,
// plus a small bonus when the sentence carries the kind of token the
// question type asks for.
func (s *RuleSynthesizer) scoreSentence(sentence string, qTerms map[string]struct{}, qType questionType) float64 {
	terms := s.tokenizer.Tokenize(sentence)
	if len(terms) == 0 || len(qTerms) == 0 {
		return 0
	}

	overlap := 0
	seen := map[string]struct{}{}
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		if _, ok := qTerms[term]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	score := float64(overlap) / math.Sqrt(float64(len(terms)))

	switch qType {
	case questionWho, questionWhere:
		if hasProperNoun(sentence) {
			score += 0.15
		}
	case questionWhen:
		if hasNumber(sentence) {
			score += 0.15
		}
	case questionWhy:
		if containsAny(sentence, "because", "due to", "reason", "since", "therefore") {
			score += 0.15
		}
	case questionHow:
		if containsAny(sentence, "by ", "through", "using", "steps", "process") {
			score += 0.1
		}
	}
	return score
}

// confidence derives a score from the retrieval distribution: the
// strength of the best match plus how far it separates from the
// runner-up, clamped to [0,1].
func confidence(results []domain.ScoredChunk) float64 {
	top1 := math.Max(0, results[0].Score)
	var top2 float64
	if len(results) > 1 {
		top2 = math.Max(0, results[1].Score)
	}
	margin := math.Max(0, top1-top2)

	conf := 0.75*top1 + 0.25*margin
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

func classifyQuestion(question string) questionType {
	q := strings.ToLower(strings.TrimSpace(question))
	switch {
	case strings.HasPrefix(q, "who"):
		return questionWho
	case strings.HasPrefix(q, "when"):
		return questionWhen
	case strings.HasPrefix(q, "where"):
		return questionWhere
	case strings.HasPrefix(q, "why"):
		return questionWhy
	case strings.HasPrefix(q, "how"):
		return questionHow
	default:
		return questionGeneric
	}
}

var sentenceEnd = regexp.MustCompile(`[^.!?]+[.!?]+`)

// splitSentences performs a crude sentence split. Trailing text without
// terminal punctuation still counts as a sentence.
func splitSentences(text string) []string {
	var sentences []string
	consumed := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		if sent := strings.TrimSpace(text[loc[0]:loc[1]]); sent != "" {
			sentences = append(sentences, sent)
		}
		consumed = loc[1]
	}
	if rest := strings.TrimSpace(text[consumed:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// hasProperNoun reports whether any non-leading word starts with an
// uppercase letter.
func hasProperNoun(sentence string) bool {
	words := strings.Fields(sentence)
	for i, word := range words {
		if i == 0 {
			continue
		}
		for _, r := range word {
			if unicode.IsLetter(r) {
				if unicode.IsUpper(r) {
					return true
				}
				break
			}
		}
	}
	return false
}

func hasNumber(sentence string) bool {
	for _, r := range sentence {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsAny(sentence string, needles ...string) bool {
	lower := strings.ToLower(sentence)
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

// excerpt caps a source snippet for the citation payload.
func excerpt(text string) string {
	if len(text) <= excerptLen {
		return text
	}
	return text[:excerptLen] + "..."
}
