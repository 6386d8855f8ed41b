// Package tokenize turns strings into ordered token lists and the equivalent
// multisets consumed by the contingency engine.
package tokenize

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
)

// Tokenizer splits a string into tokens. Implementations must be
// deterministic and free of side effects.
type Tokenizer interface {
	Tokenize(s string) Tokens
}

// FixedLength is implemented by tokenizers whose tokens all have the same
// length, which lets a population size be inferred from an alphabet.
type FixedLength interface {
	TokenLength() int
	// Sentinels returns the padding symbols added around the input, if any.
	Sentinels() string
}

// Tokens is the result of tokenizing one string
type Tokens struct {
	List   []string           // tokens in order of appearance
	Counts *multiset.Multiset // occurrence counts, after scaling
}

// Scaler rescales raw occurrence counts. It must be monotone.
type Scaler func(float64) float64

// ScaleSet maps every count to 1, turning the multiset into a set.
func ScaleSet(float64) float64 { return 1 }

// ScaleLog maps a count n to log(1+n).
func ScaleLog(n float64) float64 { return math.Log1p(n) }

func newTokens(list []string, scaler Scaler) Tokens {
	counts := multiset.FromTokens(list)
	if scaler != nil {
		counts = counts.Scale(scaler)
	}
	return Tokens{List: list, Counts: counts}
}
