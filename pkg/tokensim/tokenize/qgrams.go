package tokenize

import (
	"fmt"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// DefaultStartStop holds the start and stop sentinels used to pad q-grams.
const DefaultStartStop = "$#"

// QGrams produces overlapping q-grams over runes.
//
// For Q > 1 and a non-empty StartStop the input is padded with Q-1 copies of
// the first sentinel in front and Q-1 copies of the last sentinel behind, so
// "cat" with Q=2 yields "$c", "ca", "at", "t#". Skip inserts a gap of Skip
// runes between consecutive characters of each gram.
type QGrams struct {
	Q         int
	StartStop string
	Skip      int
	Scaler    Scaler
}

// NewQGrams returns a validated q-gram tokenizer.
func NewQGrams(q int, startStop string) (*QGrams, error) {
	if q < 1 {
		return nil, fmt.Errorf("%w: q-gram length %d", internalerr.ErrInvalidConfig, q)
	}
	return &QGrams{Q: q, StartStop: startStop}, nil
}

// Bigrams is the default tokenizer: padded 2-grams.
func Bigrams() *QGrams {
	return &QGrams{Q: 2, StartStop: DefaultStartStop}
}

// Characters tokenizes into single runes.
func Characters() *QGrams {
	return &QGrams{Q: 1}
}

func (g *QGrams) q() int {
	if g.Q < 1 {
		return 1
	}
	return g.Q
}

// TokenLength implements FixedLength.
func (g *QGrams) TokenLength() int { return g.q() }

// Sentinels implements FixedLength.
func (g *QGrams) Sentinels() string {
	if g.q() > 1 {
		return g.StartStop
	}
	return ""
}

// Tokenize implements Tokenizer.
func (g *QGrams) Tokenize(s string) Tokens {
	q := g.q()
	if s == "" {
		return newTokens(nil, g.Scaler)
	}

	runes := []rune(s)
	if q > 1 && g.StartStop != "" {
		ss := []rune(g.StartStop)
		start, stop := ss[0], ss[len(ss)-1]
		padded := make([]rune, 0, len(runes)+2*(q-1))
		for i := 0; i < q-1; i++ {
			padded = append(padded, start)
		}
		padded = append(padded, runes...)
		for i := 0; i < q-1; i++ {
			padded = append(padded, stop)
		}
		runes = padded
	}

	skip := g.Skip
	if skip < 0 {
		skip = 0
	}
	span := (q-1)*(skip+1) + 1
	if len(runes) < span {
		return newTokens(nil, g.Scaler)
	}

	grams := make([]string, 0, len(runes)-span+1)
	gram := make([]rune, q)
	for i := 0; i+span <= len(runes); i++ {
		for j := 0; j < q; j++ {
			gram[j] = runes[i+j*(skip+1)]
		}
		grams = append(grams, string(gram))
	}
	return newTokens(grams, g.Scaler)
}
