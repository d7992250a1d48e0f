package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tok := NewTokenizer()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and drops stopwords",
			text: "The capital of France is Paris.",
			want: []string{"capital", "france", "paris"},
		},
		{
			name: "question words removed",
			text: "What is the capital of France?",
			want: []string{"capital", "france"},
		},
		{
			name: "punctuation splits words",
			text: "sugar, flour; butter-milk",
			want: []string{"sugar", "flour", "butter", "milk"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
		{
			name: "single characters dropped",
			text: "a b c item",
			want: []string{"item"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tok.Tokenize(tt.text))
		})
	}
}

func TestTermSet(t *testing.T) {
	tok := NewTokenizer()
	set := tok.TermSet("Paris, paris, PARIS!")
	assert.Len(t, set, 1)
	_, ok := set["paris"]
	assert.True(t, ok)
}
