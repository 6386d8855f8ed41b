package hybrid

import (
	"context"
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// DefaultSoftThreshold is the inner similarity a token pair needs to count
// as a soft match.
const DefaultSoftThreshold = 0.9

// SoftTFIDF is Cohen, Ravikumar and Fienberg's soft TF-IDF: each side is a
// unit vector of log(1+tf)*idf weights, and every source token contributes
// through its most similar target token when that similarity reaches
// Threshold.
type SoftTFIDF struct {
	Tokenizer tokenize.Tokenizer // nil: padded bigrams
	Metric    metric.Metric      // nil: Jaro-Winkler
	Threshold float64            // <= 0: DefaultSoftThreshold
	Corpus    IDFSource          // nil: a corpus of the two inputs
}

// Sim returns the soft TF-IDF similarity, or NaN if the corpus fails.
func (s SoftTFIDF) Sim(src, tar string) float64 {
	v, err := s.SimContext(context.Background(), src, tar)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Dist is 1 - Sim.
func (s SoftTFIDF) Dist(src, tar string) float64 { return 1 - s.Sim(src, tar) }

// SimContext is Sim with a context for corpus lookups. An empty side scores
// 0, even against another empty string; otherwise identical strings score 1.
func (s SoftTFIDF) SimContext(ctx context.Context, src, tar string) (float64, error) {
	if src == "" || tar == "" {
		return 0, nil
	}
	if src == tar {
		return 1, nil
	}

	tok := tokenizerOrDefault(s.Tokenizer)
	inner := s.Metric
	if inner == nil {
		inner = metric.JaroWinkler{}
	}
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultSoftThreshold
	}
	idf := s.Corpus
	if idf == nil {
		var err error
		if idf, err = pairCorpus(ctx, tok, src, tar); err != nil {
			return 0, err
		}
	}

	srcToks := tok.Tokenize(src).Counts
	tarToks := tok.Tokenize(tar).Counts
	if srcToks.Len() == 0 || tarToks.Len() == 0 {
		return 0, nil
	}

	vs, err := unitWeights(ctx, idf, srcToks)
	if err != nil {
		return 0, err
	}
	vt, err := unitWeights(ctx, idf, tarToks)
	if err != nil {
		return 0, err
	}

	tarKeys := tarToks.Keys()
	var score float64
	for _, a := range srcToks.Keys() {
		if vs[a] == 0 {
			continue
		}
		best, bestSim := "", -1.0
		for _, b := range tarKeys {
			if sim := inner.Similarity(a, b); sim > bestSim {
				best, bestSim = b, sim
			}
		}
		if bestSim >= threshold {
			score += vs[a] * vt[best] * bestSim
		}
	}
	return score, nil
}

// unitWeights returns log(1+tf)*idf per token, scaled to unit length. A
// vector with no weight stays all zero.
func unitWeights(ctx context.Context, idf IDFSource, counts *multiset.Multiset) (map[string]float64, error) {
	w := make(map[string]float64, counts.Len())
	var norm float64
	for _, t := range counts.Keys() {
		v, err := idf.IDF(ctx, t)
		if err != nil {
			return nil, err
		}
		x := math.Log1p(counts.Count(t)) * v
		w[t] = x
		norm += x * x
	}
	if norm == 0 {
		return w, nil
	}
	norm = math.Sqrt(norm)
	for t := range w {
		w[t] /= norm
	}
	return w, nil
}
