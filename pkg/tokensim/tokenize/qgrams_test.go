package tokenize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

func TestBigramsPadded(t *testing.T) {
	got := Bigrams().Tokenize("cat")
	assert.Equal(t, []string{"$c", "ca", "at", "t#"}, got.List)
	assert.Equal(t, 4.0, got.Counts.Card())
}

func TestBigramsSingleRune(t *testing.T) {
	got := Bigrams().Tokenize("a")
	assert.Equal(t, []string{"$a", "a#"}, got.List)
}

func TestQGramsEmpty(t *testing.T) {
	got := Bigrams().Tokenize("")
	assert.Empty(t, got.List)
	assert.Equal(t, 0.0, got.Counts.Card())
}

func TestTrigramsPadding(t *testing.T) {
	g, err := NewQGrams(3, DefaultStartStop)
	require.NoError(t, err)

	got := g.Tokenize("ab")
	assert.Equal(t, []string{"$$a", "$ab", "ab#", "b##"}, got.List)
}

func TestQGramsNoPadding(t *testing.T) {
	g := &QGrams{Q: 2}
	assert.Equal(t, []string{"ni", "ia", "al", "ll"}, g.Tokenize("niall").List)
	assert.Empty(t, g.Tokenize("n").List, "too short for one gram")
}

func TestCharactersCountsRepeats(t *testing.T) {
	got := Characters().Tokenize("Niall")
	assert.Equal(t, []string{"N", "i", "a", "l", "l"}, got.List)
	assert.Equal(t, 2.0, got.Counts.Count("l"))
	assert.Equal(t, []string{"N", "i", "a", "l"}, got.Counts.Keys())
}

func TestCharactersUnicode(t *testing.T) {
	got := Characters().Tokenize("héé")
	assert.Equal(t, []string{"h", "é", "é"}, got.List)
}

func TestQGramsSkip(t *testing.T) {
	g := &QGrams{Q: 2, Skip: 1}
	assert.Equal(t, []string{"ac", "bd"}, g.Tokenize("abcd").List)
}

func TestQGramsScaler(t *testing.T) {
	g := &QGrams{Q: 1, Scaler: ScaleLog}
	got := g.Tokenize("aab")
	assert.InDelta(t, math.Log(3), got.Counts.Count("a"), 1e-12)
	assert.InDelta(t, math.Log(2), got.Counts.Count("b"), 1e-12)
}

func TestNewQGramsRejectsZero(t *testing.T) {
	_, err := NewQGrams(0, "")
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestFixedLength(t *testing.T) {
	var fl FixedLength = Bigrams()
	assert.Equal(t, 2, fl.TokenLength())
	assert.Equal(t, "$#", fl.Sentinels())

	fl = Characters()
	assert.Equal(t, 1, fl.TokenLength())
	assert.Equal(t, "", fl.Sentinels(), "single runes are never padded")
}
