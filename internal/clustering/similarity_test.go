package clustering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identity(t *testing.T) {
	for _, s := range []string{"sut", "ekmek", "cikolatali gofret", "süt", "ab"} {
		assert.Equal(t, 1.0, Similarity(s, s), s)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	words := []string{"sut", "tam yagli sut", "ekmek", "bimbo ekmek", "night", "nacht", "", "a"}

	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, Similarity(a, b), Similarity(b, a), "%q vs %q", a, b)
		}
	}
}

func TestSimilarity_EmptyOrNoBigramsIsZero(t *testing.T) {
	tests := []struct{ a, b string }{
		{"", ""},
		{"", "sut"},
		{"sut", ""},
		{"a", "a"},
		{"a", "sut"},
	}

	for _, tt := range tests {
		score := Similarity(tt.a, tt.b)
		assert.Equal(t, 0.0, score, "%q vs %q", tt.a, tt.b)
		assert.False(t, math.IsNaN(score))
	}
}

func TestSimilarity_KnownValues(t *testing.T) {
	// ni ig gh ht / na ac ch ht share one bigram.
	assert.InDelta(t, 0.25, Similarity("night", "nacht"), 1e-9)
	assert.Equal(t, 0.0, Similarity("sut", "ekmek"))
	// {su ut} vs {ta am "m " " y" ya ag gl li "i " " s" su ut} = 4 / 14.
	assert.InDelta(t, 4.0/14.0, Similarity("sut", "tam yagli sut"), 1e-9)
}

func TestSimilarity_SetsNotMultisets(t *testing.T) {
	// "aaaa" has the single bigram "aa".
	assert.Equal(t, 1.0, Similarity("aaaa", "aa"))
}

func TestSimilarity_InRange(t *testing.T) {
	words := []string{"sut", "sutas", "tam sut", "yogurt", "ayran", "peynir", "beyaz peynir"}

	for _, a := range words {
		for _, b := range words {
			s := Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestBigrams(t *testing.T) {
	assert.Nil(t, Bigrams(""))
	assert.Nil(t, Bigrams("a"))
	assert.Equal(t, map[string]struct{}{"sü": {}, "üt": {}}, Bigrams("süt"))

	// Whitespace-only bigrams are dropped, mixed ones are kept.
	assert.Equal(t, map[string]struct{}{"a ": {}, " b": {}}, Bigrams("a  b"))
}

func TestScorerFunc(t *testing.T) {
	called := false
	s := ScorerFunc(func(a, b string) float64 {
		called = true
		return 0.5
	})

	assert.Equal(t, 0.5, s.Score("x", "y"))
	assert.True(t, called)
	assert.Equal(t, 1.0, Dice.Score("sut", "sut"))
}
