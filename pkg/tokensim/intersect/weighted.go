package intersect

import (
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
)

// weighted sums sim(s,t)*min(Xs[s],Xt[t]) over every distinct pair. The total
// can exceed either cardinality; callers clamp it.
type weighted struct {
	metric metric.Metric
}

func (w weighted) Card(src, tar *multiset.Multiset) float64 {
	var total float64
	tarKeys := tar.Keys()
	for _, s := range src.Keys() {
		ns := src.Count(s)
		for _, t := range tarKeys {
			sim := w.metric.Similarity(s, t)
			if sim <= 0 || math.IsNaN(sim) {
				continue
			}
			total += sim * math.Min(ns, tar.Count(t))
		}
	}
	return total
}
