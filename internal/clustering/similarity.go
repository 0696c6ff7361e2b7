package clustering

import "unicode"

// Scorer rates how alike two canonical forms are, from 0 to 1.
// Implementations must be symmetric and deterministic.
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(a, b string) float64

// Score calls f(a, b).
func (f ScorerFunc) Score(a, b string) float64 {
	return f(a, b)
}

// Dice is the default scorer: Dice's coefficient over character bigram sets.
var Dice Scorer = ScorerFunc(Similarity)

// Similarity returns 2|A∩B| / (|A|+|B|) where A and B are the sets of
// rune bigrams of a and b. Bigrams made only of whitespace are ignored.
// Empty input, or input without bigrams, scores exactly 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	setA := Bigrams(a)
	setB := Bigrams(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	// Walk the smaller set.
	if len(setA) > len(setB) {
		setA, setB = setB, setA
	}
	shared := 0
	for bg := range setA {
		if _, ok := setB[bg]; ok {
			shared++
		}
	}

	return float64(2*shared) / float64(len(setA)+len(setB))
}

// Bigrams returns the set of contiguous two-rune substrings of s.
func Bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}

	set := make(map[string]struct{}, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		if unicode.IsSpace(runes[i]) && unicode.IsSpace(runes[i+1]) {
			continue
		}
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}
