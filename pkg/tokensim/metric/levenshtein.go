package metric

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"
)

// Costs weights the edit operations. The zero value means unit costs.
type Costs struct {
	Insert     float64
	Delete     float64
	Substitute float64
	Transpose  float64 // used by DamerauLevenshtein only
}

var unitCosts = Costs{Insert: 1, Delete: 1, Substitute: 1, Transpose: 1}

func (c Costs) normalized() Costs {
	if c == (Costs{}) {
		return unitCosts
	}
	return c
}

// osaSentinel is prepended to both inputs before calling matchr.OSA, which
// never transposes the first two runes.
const osaSentinel = "\uFDD0"

// unitDistance computes unit-cost distances with the library implementations.
// ok is false when the weighted recurrence must be used instead.
func unitDistance(a, b string, c Costs, transpose bool) (d float64, ok bool) {
	if c != unitCosts {
		return 0, false
	}
	if !transpose {
		return float64(levenshtein.ComputeDistance(a, b)), true
	}
	if strings.Contains(a, osaSentinel) || strings.Contains(b, osaSentinel) {
		return 0, false
	}
	return float64(matchr.OSA(osaSentinel+a, osaSentinel+b)), true
}

func distance(a, b string, c Costs, transpose bool) float64 {
	if d, ok := unitDistance(a, b, c, transpose); ok {
		return d
	}
	return editDistance([]rune(a), []rune(b), c, transpose)
}

// Levenshtein is the normalized Levenshtein similarity. The raw distance is
// divided by the cost of deleting the source and inserting the target,
// whichever is larger.
type Levenshtein struct {
	Costs Costs
}

// Distance returns the raw weighted edit distance over runes.
func (l Levenshtein) Distance(a, b string) float64 {
	return distance(a, b, l.Costs.normalized(), false)
}

// Dist returns the normalized distance in [0,1].
func (l Levenshtein) Dist(a, b string) float64 {
	return normalize(a, b, l.Costs.normalized(), false)
}

// Similarity implements Metric.
func (l Levenshtein) Similarity(a, b string) float64 {
	return 1 - l.Dist(a, b)
}

// DamerauLevenshtein is the optimal string alignment distance: Levenshtein
// plus transposition of adjacent runes, with no substring edited twice.
type DamerauLevenshtein struct {
	Costs Costs
}

// Distance returns the raw weighted OSA distance over runes.
func (d DamerauLevenshtein) Distance(a, b string) float64 {
	return distance(a, b, d.Costs.normalized(), true)
}

// Dist returns the normalized distance in [0,1].
func (d DamerauLevenshtein) Dist(a, b string) float64 {
	return normalize(a, b, d.Costs.normalized(), true)
}

// Similarity implements Metric.
func (d DamerauLevenshtein) Similarity(a, b string) float64 {
	return 1 - d.Dist(a, b)
}

func normalize(a, b string, c Costs, transpose bool) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la == 0 && lb == 0 {
		return 0
	}
	denom := math.Max(float64(la)*c.Delete, float64(lb)*c.Insert)
	if denom <= 0 {
		return 0
	}
	d := distance(a, b, c, transpose) / denom
	return math.Min(1, d)
}

// editDistance is the weighted recurrence. It keeps three rows: the OSA recurrence needs the row two back.
func editDistance(a, b []rune, c Costs, transpose bool) float64 {
	if len(a) == 0 {
		return float64(len(b)) * c.Insert
	}
	if len(b) == 0 {
		return float64(len(a)) * c.Delete
	}

	prev2 := make([]float64, len(b)+1)
	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for j := range prev {
		prev[j] = float64(j) * c.Insert
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = float64(i) * c.Delete
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub += c.Substitute
			}
			curr[j] = math.Min(sub, math.Min(prev[j]+c.Delete, curr[j-1]+c.Insert))
			if transpose && i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = math.Min(curr[j], prev2[j-2]+c.Transpose)
			}
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[len(b)]
}
