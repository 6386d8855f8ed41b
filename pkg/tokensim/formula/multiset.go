package formula

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
)

// Fidelity is (Σ sqrt(p_i q_i))^2 where p and q are the token counts of each
// side divided by their totals (at least 1).
func Fidelity(c engine.Comparison) float64 {
	src, tar := c.Src.Counts, c.Tar.Counts
	srcMag := math.Max(1, src.Card())
	tarMag := math.Max(1, tar.Card())

	var sum float64
	for _, tok := range src.Union(tar).Keys() {
		sum += math.Sqrt(math.Abs(src.Count(tok) / srcMag * tar.Count(tok) / tarMag))
	}
	return sum * sum
}

// Chebyshev is the L-infinity distance between the two count vectors.
func Chebyshev(c engine.Comparison) float64 {
	src, tar := c.Src.Counts, c.Tar.Counts

	var worst float64
	for _, tok := range src.Union(tar).Keys() {
		worst = math.Max(worst, math.Abs(src.Count(tok)-tar.Count(tok)))
	}
	return worst
}
