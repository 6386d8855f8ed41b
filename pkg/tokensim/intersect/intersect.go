// Package intersect computes the intersection cardinality of two token
// multisets under crisp, threshold-fuzzy or weighted-soft semantics.
package intersect

import (
	"fmt"
	"math"
	"strings"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
)

// Mode selects the intersection semantics
type Mode int

const (
	// Exact counts only identical tokens.
	Exact Mode = iota
	// Threshold lets tokens match when their similarity reaches a cutoff.
	Threshold
	// Weighted sums pairwise similarities weighted by co-occurring counts.
	Weighted
)

func (m Mode) String() string {
	switch m {
	case Threshold:
		return "threshold"
	case Weighted:
		return "weighted"
	default:
		return "exact"
	}
}

// ParseMode maps a configuration name to a Mode. Empty selects Exact.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "exact", "crisp":
		return Exact, nil
	case "threshold", "fuzzy":
		return Threshold, nil
	case "weighted", "soft":
		return Weighted, nil
	default:
		return Exact, fmt.Errorf("%w: unknown intersection mode %q", internalerr.ErrInvalidConfig, s)
	}
}

// Spec describes an intersection. Metric is required for Threshold and
// Weighted; Cutoff applies to Threshold only and must lie in [0,1].
type Spec struct {
	Mode   Mode
	Metric metric.Metric
	Cutoff float64
}

// Intersector computes intersection cardinalities.
type Intersector interface {
	Card(src, tar *multiset.Multiset) float64
}

// New validates spec and returns the matching Intersector.
func New(spec Spec) (Intersector, error) {
	switch spec.Mode {
	case Exact:
		return exact{}, nil
	case Threshold:
		if spec.Metric == nil {
			return nil, fmt.Errorf("%w: %w: threshold intersection", internalerr.ErrInvalidConfig, internalerr.ErrMissingMetric)
		}
		if math.IsNaN(spec.Cutoff) || spec.Cutoff < 0 || spec.Cutoff > 1 {
			return nil, fmt.Errorf("%w: %w: cutoff %v outside [0,1]", internalerr.ErrInvalidConfig, internalerr.ErrInvalidThreshold, spec.Cutoff)
		}
		return threshold{metric: spec.Metric, cutoff: spec.Cutoff}, nil
	case Weighted:
		if spec.Metric == nil {
			return nil, fmt.Errorf("%w: %w: weighted intersection", internalerr.ErrInvalidConfig, internalerr.ErrMissingMetric)
		}
		return weighted{metric: spec.Metric}, nil
	default:
		return nil, fmt.Errorf("%w: intersection mode %d", internalerr.ErrInvalidConfig, int(spec.Mode))
	}
}

type exact struct{}

func (exact) Card(src, tar *multiset.Multiset) float64 {
	return src.IntersectionCard(tar)
}
