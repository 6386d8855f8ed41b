package formula

import (
	"math"
	"testing"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
)

func TestPMIPositiveAssociation(t *testing.T) {
	calc := NewCalculator(1.0)

	// tokens shared far more often than chance over a large population
	pmi := calc.Value(8, 10, 10, 20)
	if pmi <= 0 {
		t.Errorf("PMI for strong association should be positive, got %f", pmi)
	}
}

func TestPMIIndependent(t *testing.T) {
	calc := NewCalculator(1.0)

	pmi := calc.Value(25, 50, 50, 100)
	if math.Abs(pmi) > 0.5 {
		t.Errorf("PMI for independent counts should be near 0, got %f", pmi)
	}
}

func TestPMINegative(t *testing.T) {
	calc := NewCalculator(1.0)

	pmi := calc.Value(5, 50, 50, 100)
	if pmi >= 0 {
		t.Errorf("PMI for rarely shared counts should be negative, got %f", pmi)
	}
}

func TestPMIEpsilonDefaultsToOne(t *testing.T) {
	zero := NewCalculator(0)
	one := NewCalculator(1)

	if zero.Value(0, 10, 10, 100) != one.Value(0, 10, 10, 100) {
		t.Error("non-positive epsilon should fall back to 1")
	}
	if math.IsInf(zero.Value(0, 10, 10, 100), -1) {
		t.Error("smoothing should prevent -Inf")
	}
}

func TestPMIUnresolvedPopulation(t *testing.T) {
	calc := NewCalculator(1)
	if got := calc.PMI()(engine.Cardinalities{A: 2, SrcCard: 3, TarCard: 3}); got != 0 {
		t.Errorf("PMI without population = %f, want 0", got)
	}
	if got := calc.NPMI()(engine.Cardinalities{A: 2, SrcCard: 3, TarCard: 3}); got != 0 {
		t.Errorf("NPMI without population = %f, want 0", got)
	}
}

func TestNPMIRange(t *testing.T) {
	calc := NewCalculator(1)
	for _, tt := range []struct{ ab, a, b, n float64 }{
		{8, 10, 10, 20},
		{1, 50, 50, 100},
		{2, 4, 4, 784},
	} {
		npmi := calc.Normalized(tt.ab, tt.a, tt.b, tt.n)
		if npmi < -1 || npmi > 1 {
			t.Errorf("NPMI%v = %f outside [-1,1]", tt, npmi)
		}
	}
}
