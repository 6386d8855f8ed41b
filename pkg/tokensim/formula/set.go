package formula

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
)

// The set-overlap measures treat two empty inputs as identical (1) and a
// single empty input as disjoint (0).
func emptyConvention(c engine.Cardinalities) (float64, bool) {
	switch {
	case c.SrcCard == 0 && c.TarCard == 0:
		return 1, true
	case c.SrcCard == 0 || c.TarCard == 0:
		return 0, true
	}
	return 0, false
}

// Jaccard is a / (a+b+c).
func Jaccard(c engine.Cardinalities) float64 {
	if v, ok := emptyConvention(c); ok {
		return v
	}
	return c.A / (c.A + c.B + c.C)
}

// Dice is 2a / (2a+b+c).
func Dice(c engine.Cardinalities) float64 {
	if v, ok := emptyConvention(c); ok {
		return v
	}
	return 2 * c.A / (2*c.A + c.B + c.C)
}

// Overlap is a / min(a+b, a+c).
func Overlap(c engine.Cardinalities) float64 {
	if v, ok := emptyConvention(c); ok {
		return v
	}
	return c.A / math.Min(c.SrcCard, c.TarCard)
}

// JaccardNM is Naseem's a / (n+a+b+c). It reaches at most 1/2 and needs a
// resolved population.
func JaccardNM(c engine.Cardinalities) float64 {
	return c.A / (c.N + c.A + c.B + c.C)
}

// Cosine (Ochiai) is a / sqrt((a+b)(a+c)).
func Cosine(c engine.Cardinalities) float64 {
	if v, ok := emptyConvention(c); ok {
		return v
	}
	return c.A / math.Sqrt(c.SrcCard*c.TarCard)
}
