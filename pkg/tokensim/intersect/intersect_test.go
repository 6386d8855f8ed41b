package intersect

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
)

func counts(kv ...any) *multiset.Multiset {
	m := multiset.New()
	for i := 0; i < len(kv); i += 2 {
		m.Add(kv[i].(string), float64(kv[i+1].(int)))
	}
	return m
}

type countingMetric struct {
	inner metric.Metric
	calls map[[2]string]int
}

func (c *countingMetric) Similarity(a, b string) float64 {
	c.calls[[2]string{a, b}]++
	return c.inner.Similarity(a, b)
}

func TestExact(t *testing.T) {
	in, err := New(Spec{})
	require.NoError(t, err)

	src := counts("ab", 2, "cd", 1)
	tar := counts("ac", 1, "ab", 1, "cd", 3)
	assert.Equal(t, 2.0, in.Card(src, tar))
	assert.Equal(t, 0.0, in.Card(multiset.New(), tar))
}

func TestThresholdGreedyClaims(t *testing.T) {
	cm := &countingMetric{inner: metric.Levenshtein{}, calls: map[[2]string]int{}}
	in, err := New(Spec{Mode: Threshold, Metric: cm, Cutoff: 0.5})
	require.NoError(t, err)

	src := counts("ab", 2, "cd", 1)
	tar := counts("ac", 1, "ab", 1, "cd", 3)

	// ab claims ac (sim 0.5) and ab; cd finds ac and ab exhausted and claims cd.
	assert.Equal(t, 3.0, in.Card(src, tar))
	assert.Equal(t, map[[2]string]int{
		{"ab", "ac"}: 1,
		{"ab", "ab"}: 1,
		{"cd", "cd"}: 1,
	}, cm.calls)
}

func TestThresholdIsOrderDependent(t *testing.T) {
	in, err := New(Spec{Mode: Threshold, Metric: metric.Levenshtein{}, Cutoff: 0.5})
	require.NoError(t, err)

	tar := counts("xb", 1, "ab", 1)
	// ab takes xb first and xc is left without a partner
	assert.Equal(t, 1.0, in.Card(counts("ab", 1, "xc", 1), tar))
	assert.Equal(t, 2.0, in.Card(counts("xc", 1, "ab", 1), tar))
}

func TestThresholdMetricCalledOncePerDistinctPair(t *testing.T) {
	cm := &countingMetric{inner: metric.Exact{}, calls: map[[2]string]int{}}
	in, err := New(Spec{Mode: Threshold, Metric: cm, Cutoff: 0.9})
	require.NoError(t, err)

	src := counts("xx", 5, "yy", 3)
	tar := counts("zz", 4, "yy", 1)
	assert.Equal(t, 1.0, in.Card(src, tar))
	for pair, n := range cm.calls {
		assert.Equal(t, 1, n, "pair %v", pair)
	}
}

func TestWeightedBilinearSum(t *testing.T) {
	in, err := New(Spec{Mode: Weighted, Metric: metric.Levenshtein{}})
	require.NoError(t, err)

	src := counts("ab", 1)
	tar := counts("ab", 1, "ac", 2)
	// 1*min(1,1) + 0.5*min(1,2); pairs are not consumed
	assert.InDelta(t, 1.5, in.Card(src, tar), 1e-12)
}

var tokenGen = gen.SliceOf(gen.OneConstOf("t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"))

func TestReducesToExact(t *testing.T) {
	exactIn, _ := New(Spec{})
	thresholdIn, err := New(Spec{Mode: Threshold, Metric: metric.Exact{}, Cutoff: 1})
	require.NoError(t, err)
	weightedIn, err := New(Spec{Mode: Weighted, Metric: metric.Exact{}})
	require.NoError(t, err)

	properties := gopter.NewProperties(nil)

	properties.Property("threshold with exact metric and cutoff 1 equals exact", prop.ForAll(
		func(xs, ys []string) bool {
			src, tar := multiset.FromTokens(xs), multiset.FromTokens(ys)
			return thresholdIn.Card(src, tar) == exactIn.Card(src, tar)
		},
		tokenGen, tokenGen,
	))

	properties.Property("weighted with exact metric equals exact", prop.ForAll(
		func(xs, ys []string) bool {
			src, tar := multiset.FromTokens(xs), multiset.FromTokens(ys)
			return weightedIn.Card(src, tar) == exactIn.Card(src, tar)
		},
		tokenGen, tokenGen,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestExactProperties(t *testing.T) {
	in, _ := New(Spec{})

	properties := gopter.NewProperties(nil)

	properties.Property("exact is symmetric", prop.ForAll(
		func(xs, ys []string) bool {
			src, tar := multiset.FromTokens(xs), multiset.FromTokens(ys)
			return in.Card(src, tar) == in.Card(tar, src)
		},
		tokenGen, tokenGen,
	))

	properties.Property("exact is bounded by both cardinalities", prop.ForAll(
		func(xs, ys []string) bool {
			src, tar := multiset.FromTokens(xs), multiset.FromTokens(ys)
			a := in.Card(src, tar)
			return a >= 0 && a <= src.Card() && a <= tar.Card()
		},
		tokenGen, tokenGen,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestNewValidation(t *testing.T) {
	_, err := New(Spec{Mode: Threshold, Cutoff: 0.5})
	assert.ErrorIs(t, err, internalerr.ErrMissingMetric)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = New(Spec{Mode: Weighted})
	assert.ErrorIs(t, err, internalerr.ErrMissingMetric)

	_, err = New(Spec{Mode: Threshold, Metric: metric.Exact{}, Cutoff: 1.5})
	assert.ErrorIs(t, err, internalerr.ErrInvalidThreshold)

	_, err = New(Spec{Mode: Mode(9)})
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Exact, "exact": Exact, "Threshold": Threshold, "soft": Weighted} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "weighted", Weighted.String())
	_, err := ParseMode("optimal")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}
