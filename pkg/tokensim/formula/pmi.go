package formula

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
)

// Calculator computes smoothed pointwise mutual information over the
// contingency table, reading a as the joint count, a+b and a+c as the
// marginals and n as the total.
type Calculator struct {
	epsilon float64 // smoothing constant
}

// NewCalculator creates a PMI calculator; epsilon <= 0 selects 1.
func NewCalculator(epsilon float64) *Calculator {
	if epsilon <= 0 {
		epsilon = 1.0
	}
	return &Calculator{epsilon: epsilon}
}

// Value computes
//
//	PMI = log((n_ab + ε) * N / ((n_a + ε)(n_b + ε)))
//
// An unresolved or empty population scores 0.
func (c *Calculator) Value(nAB, nA, nB, n float64) float64 {
	if n == 0 {
		return 0
	}
	numerator := (nAB + c.epsilon) * n
	denominator := (nA + c.epsilon) * (nB + c.epsilon)
	if denominator == 0 {
		return 0
	}
	return math.Log(numerator / denominator)
}

// Normalized computes NPMI = PMI / -log(P(a,b)) in [-1,1].
func (c *Calculator) Normalized(nAB, nA, nB, n float64) float64 {
	if n == 0 || nAB == 0 {
		return 0
	}
	pAB := (nAB + c.epsilon) / n
	logPAB := math.Log(pAB)
	if logPAB == 0 {
		return 0
	}
	return c.Value(nAB, nA, nB, n) / -logPAB
}

// PMI returns the calculator as a formula
func (c *Calculator) PMI() Func {
	return func(t engine.Cardinalities) float64 {
		return c.Value(t.A, t.SrcCard, t.TarCard, t.N)
	}
}

// NPMI returns normalized PMI as a formula
func (c *Calculator) NPMI() Func {
	return func(t engine.Cardinalities) float64 {
		return c.Normalized(t.A, t.SrcCard, t.TarCard, t.N)
	}
}
