// Package metric provides the auxiliary pairwise token similarities used by
// fuzzy intersections and hybrid measures. Every metric returns a value in
// [0,1] where 1 means identical.
package metric

import (
	"fmt"
	"strings"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// Metric scores the similarity of two tokens.
type Metric interface {
	Similarity(a, b string) float64
}

// Func adapts a plain function to Metric
type Func func(a, b string) float64

// Similarity implements Metric.
func (f Func) Similarity(a, b string) float64 { return f(a, b) }

// NormalizedDistance is implemented by measures that report a distance in [0,1].
type NormalizedDistance interface {
	Dist(a, b string) float64
}

// FromDistance turns a normalized distance into a similarity (1 - dist).
func FromDistance(d NormalizedDistance) Metric {
	return Func(func(a, b string) float64 {
		return 1 - d.Dist(a, b)
	})
}

// Exact scores 1 for identical tokens and 0 otherwise.
type Exact struct{}

// Similarity implements Metric.
func (Exact) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	return 0
}

// Default returns the metric used when configuration names none: normalized
// Levenshtein with unit costs.
func Default() Metric { return Levenshtein{} }

// Names accepted by ByName
const (
	NameLevenshtein = "levenshtein"
	NameDamerau     = "damerau"
	NameJaroWinkler = "jaro_winkler"
	NameJaro        = "jaro"
	NameExact       = "exact"
)

// ByName resolves a metric from its configuration name. An empty name selects
// Default.
func ByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLevenshtein:
		return Levenshtein{}, nil
	case NameDamerau, "osa", "damerau_levenshtein":
		return DamerauLevenshtein{}, nil
	case NameJaroWinkler, "jarowinkler":
		return JaroWinkler{}, nil
	case NameJaro:
		return JaroWinkler{NoBoost: true}, nil
	case NameExact:
		return Exact{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", internalerr.ErrInvalidConfig, name)
	}
}
