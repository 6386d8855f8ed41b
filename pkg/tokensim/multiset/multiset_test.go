package multiset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTokensCountsOccurrences(t *testing.T) {
	m := FromTokens([]string{"ab", "bc", "ab", "cd"})

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 4.0, m.Card())
	assert.Equal(t, 2.0, m.Count("ab"))
	assert.Equal(t, 0.0, m.Count("zz"))
	assert.Equal(t, []string{"ab", "bc", "cd"}, m.Keys(), "keys keep first-insertion order")
}

func TestAddIgnoresNonPositive(t *testing.T) {
	m := New()
	m.Add("a", 0)
	m.Add("b", -2)
	m.Add("c", math.NaN())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0.0, m.Card())
}

func TestSetRemovesAtZero(t *testing.T) {
	m := FromTokens([]string{"a", "b", "c"})
	m.Set("b", 0)
	assert.False(t, m.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	m.Set("a", 2.5)
	assert.Equal(t, 2.5, m.Count("a"))
	assert.Equal(t, []string{"a", "c"}, m.Keys(), "Set on an existing key keeps its position")
}

func TestIntersectionCardIsMinOfCounts(t *testing.T) {
	x := FromTokens([]string{"a", "a", "a", "b", "c"})
	y := FromTokens([]string{"a", "b", "b", "d"})

	assert.Equal(t, 2.0, x.IntersectionCard(y))
	assert.Equal(t, x.IntersectionCard(y), y.IntersectionCard(x), "intersection is symmetric")
	assert.Equal(t, x.Intersection(y).Card(), x.IntersectionCard(y))
}

func TestIntersectionCardNil(t *testing.T) {
	var empty *Multiset
	x := FromTokens([]string{"a"})
	assert.Equal(t, 0.0, empty.IntersectionCard(x))
	assert.Equal(t, 0.0, x.IntersectionCard(nil))
}

func TestUnionDifferenceSum(t *testing.T) {
	x := FromTokens([]string{"a", "a", "b"})
	y := FromTokens([]string{"a", "c", "c"})

	u := x.Union(y)
	assert.Equal(t, 2.0, u.Count("a"))
	assert.Equal(t, 1.0, u.Count("b"))
	assert.Equal(t, 2.0, u.Count("c"))
	assert.Equal(t, []string{"a", "b", "c"}, u.Keys())

	d := x.Difference(y)
	assert.Equal(t, 1.0, d.Count("a"))
	assert.Equal(t, 1.0, d.Count("b"))
	assert.False(t, d.Contains("c"))

	s := x.Sum(y)
	assert.Equal(t, 6.0, s.Card())
}

func TestCloneIsIndependent(t *testing.T) {
	x := FromTokens([]string{"a", "b"})
	c := x.Clone()
	c.Add("a", 3)
	c.Add("z", 1)

	assert.Equal(t, 1.0, x.Count("a"))
	assert.False(t, x.Contains("z"))
	assert.True(t, FromTokens([]string{"b", "a"}).Equal(x))
}

func TestScale(t *testing.T) {
	x := FromTokens([]string{"a", "a", "a", "b"})
	set := x.Scale(func(float64) float64 { return 1 })
	assert.Equal(t, 2.0, set.Card())

	half := x.Scale(func(n float64) float64 { return n / 2 })
	assert.InDelta(t, 1.5, half.Count("a"), 1e-12)
	assert.InDelta(t, 2.0, half.Card(), 1e-12)
}

func TestFromCountsDeterministicOrder(t *testing.T) {
	counts := map[string]float64{"z": 1, "m": 2, "a": 3, "q": 0}
	m := FromCounts(counts, []string{"m"})

	require.Equal(t, 3, m.Len(), "zero counts are dropped")
	assert.Equal(t, []string{"m", "a", "z"}, m.Keys())
}
