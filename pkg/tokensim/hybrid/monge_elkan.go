package hybrid

import (
	"math"
	"sort"

	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// MongeElkan averages, over the source tokens, the best inner similarity
// against any target token. It is asymmetric unless Symmetric is set, in
// which case both directions are averaged.
type MongeElkan struct {
	Tokenizer tokenize.Tokenizer // nil: padded bigrams
	Metric    metric.Metric      // nil: normalized Levenshtein
	Symmetric bool
}

// Sim returns the Monge-Elkan similarity. Identical strings score 1 and an
// empty side scores 0.
func (m MongeElkan) Sim(src, tar string) float64 {
	if src == tar {
		return 1
	}
	tok := tokenizerOrDefault(m.Tokenizer)
	inner := m.Metric
	if inner == nil {
		inner = metric.Default()
	}

	s := sortedTokens(tok, src)
	t := sortedTokens(tok, tar)
	if len(s) == 0 || len(t) == 0 {
		return 0
	}

	sim := mongeElkan(inner, s, t)
	if m.Symmetric {
		sim = (sim + mongeElkan(inner, t, s)) / 2
	}
	return sim
}

// Dist is 1 - Sim.
func (m MongeElkan) Dist(src, tar string) float64 { return 1 - m.Sim(src, tar) }

func mongeElkan(inner metric.Metric, src, tar []string) float64 {
	var sum float64
	for _, s := range src {
		best := math.Inf(-1)
		for _, t := range tar {
			best = math.Max(best, inner.Similarity(s, t))
		}
		sum += best
	}
	return sum / float64(len(src))
}

func sortedTokens(tok tokenize.Tokenizer, s string) []string {
	list := append([]string(nil), tok.Tokenize(s).List...)
	sort.Strings(list)
	return list
}
