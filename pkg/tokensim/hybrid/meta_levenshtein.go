package hybrid

import (
	"context"
	"math"
	"unicode/utf8"

	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// MetaLevenshtein is a Levenshtein alignment over token sequences where
// substituting token s by t costs dist(s,t)*w(s)*w(t), with w the
// log(1+tf)*idf weight of the token on its side. Insertions and deletions
// cost 1.
type MetaLevenshtein struct {
	Tokenizer  tokenize.Tokenizer // nil: padded bigrams
	Metric     metric.Metric      // nil: Jaro-Winkler
	Corpus     IDFSource          // nil: a corpus of the two inputs
	Normalizer Normalizer         // nil: NormalizeMax
}

// Normalizer turns the rune lengths of the two inputs into the divisor of a
// raw distance.
type Normalizer func(srcLen, tarLen int) float64

// NormalizeMax divides by the longer input.
func NormalizeMax(srcLen, tarLen int) float64 { return float64(max(srcLen, tarLen)) }

// NormalizeSum divides by the combined length of both inputs.
func NormalizeSum(srcLen, tarLen int) float64 { return float64(srcLen + tarLen) }

// DistAbsContext returns the raw alignment cost. An empty side costs the
// length of the other token sequence.
func (m MetaLevenshtein) DistAbsContext(ctx context.Context, src, tar string) (float64, error) {
	if src == tar {
		return 0, nil
	}
	tok := tokenizerOrDefault(m.Tokenizer)
	s := tok.Tokenize(src)
	t := tok.Tokenize(tar)
	if len(s.List) == 0 || len(t.List) == 0 {
		return float64(max(len(s.List), len(t.List))), nil
	}

	inner := m.Metric
	if inner == nil {
		inner = metric.JaroWinkler{}
	}
	idf := m.Corpus
	if idf == nil {
		var err error
		if idf, err = pairCorpus(ctx, tok, src, tar); err != nil {
			return 0, err
		}
	}

	ws, err := weights(ctx, idf, s)
	if err != nil {
		return 0, err
	}
	wt, err := weights(ctx, idf, t)
	if err != nil {
		return 0, err
	}

	type pair struct{ a, b string }
	dists := make(map[pair]float64)
	sub := func(a, b string) float64 {
		if a == b {
			return 0
		}
		k := pair{a, b}
		d, ok := dists[k]
		if !ok {
			d = 1 - inner.Similarity(a, b)
			dists[k] = d
		}
		return d * ws[a] * wt[b]
	}

	prev := make([]float64, len(t.List)+1)
	curr := make([]float64, len(t.List)+1)
	for j := range prev {
		prev[j] = float64(j)
	}
	for i := 1; i <= len(s.List); i++ {
		curr[0] = float64(i)
		for j := 1; j <= len(t.List); j++ {
			curr[j] = math.Min(
				math.Min(curr[j-1]+1, prev[j]+1),
				prev[j-1]+sub(s.List[i-1], t.List[j-1]),
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(t.List)], nil
}

// Dist divides the alignment cost by the Normalizer applied to the rune
// lengths of the inputs, capped at 1. It returns NaN if the corpus fails.
func (m MetaLevenshtein) Dist(src, tar string) float64 {
	if src == tar {
		return 0
	}
	d, err := m.DistAbsContext(context.Background(), src, tar)
	if err != nil {
		return math.NaN()
	}
	norm := m.Normalizer
	if norm == nil {
		norm = NormalizeMax
	}
	div := norm(utf8.RuneCountInString(src), utf8.RuneCountInString(tar))
	if div <= 0 {
		return 0
	}
	return math.Min(1, d/div)
}

// Sim is 1 - Dist.
func (m MetaLevenshtein) Sim(src, tar string) float64 { return 1 - m.Dist(src, tar) }

func weights(ctx context.Context, idf IDFSource, toks tokenize.Tokens) (map[string]float64, error) {
	w := make(map[string]float64, toks.Counts.Len())
	for _, t := range toks.Counts.Keys() {
		v, err := idf.IDF(ctx, t)
		if err != nil {
			return nil, err
		}
		w[t] = math.Log1p(toks.Counts.Count(t)) * v
	}
	return w, nil
}
