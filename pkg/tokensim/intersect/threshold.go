package intersect

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
)

// threshold performs a greedy fuzzy match. Source tokens are visited in
// insertion order; each walks the target tokens in insertion order and claims
// min(remaining) from every target whose similarity reaches the cutoff, until
// its own count is used up. The result is deterministic but not an optimal
// assignment.
type threshold struct {
	metric metric.Metric
	cutoff float64
}

type tokenPair struct{ src, tar string }

func (th threshold) Card(src, tar *multiset.Multiset) float64 {
	if src.Len() == 0 || tar.Len() == 0 {
		return 0
	}

	tarKeys := tar.Keys()
	remaining := make(map[string]float64, len(tarKeys))
	for _, t := range tarKeys {
		remaining[t] = tar.Count(t)
	}
	seen := make(map[tokenPair]float64)

	var total float64
	for _, s := range src.Keys() {
		left := src.Count(s)
		for _, t := range tarKeys {
			if left <= 0 {
				break
			}
			r := remaining[t]
			if r <= 0 {
				continue
			}
			key := tokenPair{s, t}
			sim, ok := seen[key]
			if !ok {
				sim = th.metric.Similarity(s, t)
				seen[key] = sim
			}
			if sim < th.cutoff {
				continue
			}
			claim := math.Min(left, r)
			left -= claim
			remaining[t] = r - claim
			total += claim
		}
	}
	return total
}
