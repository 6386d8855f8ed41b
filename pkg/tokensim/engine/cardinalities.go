package engine

import (
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// Cardinalities is the contingency table of one comparison.
//
//	A: tokens in both      B: tokens only in src
//	C: tokens only in tar  D: population tokens in neither
//
// N equals A+B+C+D when Resolved; an unresolved population leaves D and N 0.
type Cardinalities struct {
	A, B, C, D, N    float64
	SrcCard, TarCard float64
	Population       float64 // resolved population size before adjustment
	Resolved         bool
}

// Union returns card(src) + card(tar) - a
func (c Cardinalities) Union() float64 { return c.SrcCard + c.TarCard - c.A }

// Total returns a + b + c + d
func (c Cardinalities) Total() float64 { return c.A + c.B + c.C + c.D }

// Comparison carries both tokenizations alongside their cardinalities.
type Comparison struct {
	Src, Tar tokenize.Tokens
	Cardinalities
}
