package formula

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
)

// DefaultSigma weights the 0-0 cell in AZZOO.
const DefaultSigma = 0.5

// DennisScore is (a - (a+b)(a+c)/n) / sqrt((a+b)(a+c)/n). Two empty inputs
// and a zero numerator both score 0.
func DennisScore(c engine.Cardinalities) float64 {
	if c.SrcCard == 0 && c.TarCard == 0 {
		return 0
	}
	expected := c.SrcCard * c.TarCard / c.N
	num := c.A - expected
	if num == 0 {
		return 0
	}
	return num / math.Sqrt(expected)
}

// DennisCorr is DennisScore / sqrt(n).
func DennisCorr(c engine.Cardinalities) float64 {
	return DennisScore(c) / math.Sqrt(c.N)
}

// DennisSim maps DennisCorr into [0,1].
func DennisSim(c engine.Cardinalities) float64 {
	return (1 + DennisCorr(c)) / 2
}

// Doolittle is (ad-bc)^2 / ((a+b)(a+c)(b+d)(c+d)).
func Doolittle(c engine.Cardinalities) float64 {
	num := c.A*c.D - c.B*c.C
	return num * num / marginals(c)
}

// PearsonPhi is (ad-bc) / sqrt((a+b)(a+c)(b+d)(c+d)).
func PearsonPhi(c engine.Cardinalities) float64 {
	return (c.A*c.D - c.B*c.C) / math.Sqrt(marginals(c))
}

// PearsonIII is Pearson's coefficient of racial likeness, sqrt(phi/(n+phi)).
// Negative phi yields NaN.
func PearsonIII(c engine.Cardinalities) float64 {
	phi := PearsonPhi(c)
	return math.Sqrt(phi / (c.N + phi))
}

// TullossS is 1 / sqrt(log2(2 + min(b,c)/(a+1))). It needs no population.
func TullossS(c engine.Cardinalities) float64 {
	return 1 / math.Sqrt(math.Log2(2+math.Min(c.B, c.C)/(c.A+1)))
}

// GiniICorr is Gini's I correlation on the table normalized to proportions
// of n.
func GiniICorr(c engine.Cardinalities) float64 {
	a, b, cc, d := c.A/c.N, c.B/c.N, c.C/c.N, c.D/c.N
	num := (a + d) - ((a+b)*(a+cc) + (cc+d)*(b+d))
	den := (1 + epsilon - ((a+b)*(a+b) + (cc+d)*(cc+d))) *
		(1 + epsilon - ((a+cc)*(a+cc) + (b+d)*(b+d)))
	return num / math.Sqrt(den)
}

// GiniISim maps GiniICorr into [0,1].
func GiniISim(c engine.Cardinalities) float64 {
	return (1 + GiniICorr(c)) / 2
}

// SokalSneathI is 2(a+d) / (2(a+d)+b+c). A table with nothing in it, two
// empty inputs under an unresolved population, scores 1.
func SokalSneathI(c engine.Cardinalities) float64 {
	agree := 2 * (c.A + c.D)
	if agree+c.B+c.C == 0 {
		return 1
	}
	return agree / (agree + c.B + c.C)
}

// KentFosterI is (a - e) / (a - e + b + c) with e = (a+b)(a+c)/(a+b+c), the
// overlap expected from the marginals. Identical inputs give 0/0.
func KentFosterI(c engine.Cardinalities) float64 {
	expected := c.SrcCard * c.TarCard / (c.A + c.B + c.C)
	num := c.A - expected
	return num / (num + c.B + c.C)
}

// AZZOO returns (a + sigma*d) / n: shared absences count sigma each.
func AZZOO(sigma float64) Func {
	return func(c engine.Cardinalities) float64 {
		return (c.A + sigma*c.D) / c.N
	}
}

// epsilon is the float64 machine epsilon
const epsilon = 2.220446049250313e-16

func marginals(c engine.Cardinalities) float64 {
	return (c.A + c.B) * (c.A + c.C) * (c.B + c.D) * (c.C + c.D)
}
