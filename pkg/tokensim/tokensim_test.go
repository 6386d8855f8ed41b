package tokensim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/tokensim/pkg/tokensim/batch"
	"github.com/cognicore/tokensim/pkg/tokensim/config"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

func TestCompareDefault(t *testing.T) {
	tk, err := New(Options{})
	require.NoError(t, err)

	r := tk.Compare("cat", "hat")
	assert.Equal(t, 2.0, r.Cardinalities.A)
	assert.Equal(t, 2.0, r.Cardinalities.B)
	assert.Equal(t, 2.0, r.Cardinalities.C)
	assert.Equal(t, 778.0, r.Cardinalities.D)
	assert.Equal(t, 784.0, r.Cardinalities.N)
	require.Len(t, r.Scores, 1)
	assert.Equal(t, "jaccard", r.Scores[0].Name)
	assert.InDelta(t, 1.0/3, r.Scores[0].Value, 1e-12)
	assert.Equal(t, 1, r.Sift4)
}

func TestCompareSharesOneTable(t *testing.T) {
	cfg := config.Default()
	cfg.Measures = []string{"jaccard", "dice", "dennis"}
	tk, err := New(Options{Config: cfg})
	require.NoError(t, err)

	r := tk.Compare("cat", "hat")
	require.Len(t, r.Scores, 3)
	assert.Equal(t, []string{"jaccard", "dice", "dennis"}, []string{r.Scores[0].Name, r.Scores[1].Name, r.Scores[2].Name})
	assert.InDelta(t, 0.5, r.Scores[1].Value, 1e-12)
	assert.InDelta(t, 0.7474489795918368, r.Scores[2].Value, 1e-12)

	dennis, err := tk.Scorer("dennis")
	require.NoError(t, err)
	assert.Equal(t, r.Scores[2].Value, dennis.Score("cat", "hat"))
}

func TestScorers(t *testing.T) {
	tk, err := New(Options{})
	require.NoError(t, err)

	tests := []struct {
		name string
		want float64
	}{
		{ScorerSift4, 1 - 1.0/3},
		{ScorerMongeElkan, 0.75},
		{ScorerMetaLevenshtein, 1 - 0.6155602628882225/3},
		{"jaccard", 1.0 / 3},
		{" Dice ", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tk.Scorer(tt.name)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, s.Score("cat", "hat"), 1e-9)
		})
	}

	soft, err := tk.Scorer(ScorerSoftTFIDF)
	require.NoError(t, err)
	assert.Equal(t, 0.0, soft.Score("abcd", "efgh"))

	_, err = tk.Scorer("levenshtein_ratio")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestScoreAll(t *testing.T) {
	tk, err := New(Options{})
	require.NoError(t, err)

	pairs := []batch.Pair{
		{Src: "cat", Tar: "hat"},
		{Src: "same", Tar: "same"},
		{Src: "", Tar: ""},
	}
	results, err := tk.ScoreAll(context.Background(), "jaccard", pairs, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.InDelta(t, 1.0/3, results[0].Score, 1e-12)
	assert.Equal(t, 1.0, results[1].Score)
	assert.Equal(t, 1.0, results[2].Score, "two empty strings are identical sets")
	for i, r := range results {
		assert.True(t, r.Done)
		assert.Equal(t, pairs[i], r.Pair)
	}

	_, err = tk.ScoreAll(context.Background(), "nope", pairs, 1)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Intersection.Mode = "threshold"
	cut := 2.0
	cfg.Intersection.Cutoff = &cut
	_, err := New(Options{Config: cfg})
	assert.ErrorIs(t, err, internalerr.ErrInvalidThreshold)
}

func TestUnresolvedPopulation(t *testing.T) {
	cfg := config.Default()
	cfg.Population.Kind = "unresolved"
	cfg.Measures = []string{"jaccard", "azzoo"}
	tk, err := New(Options{Config: cfg})
	require.NoError(t, err)

	r := tk.Compare("cat", "hat")
	assert.False(t, r.Cardinalities.Resolved)
	assert.InDelta(t, 1.0/3, r.Scores[0].Value, 1e-12)
	assert.True(t, math.IsInf(r.Scores[1].Value, 1))
}
