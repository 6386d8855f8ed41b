package metric

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

type pair struct {
	a, b string
}

// CachedMetric memoizes an underlying metric in a bounded LRU cache.
// It is safe for concurrent use.
type CachedMetric struct {
	inner Metric
	cache *lru.Cache[pair, float64]
}

// Cached wraps m with an LRU cache holding up to size pairs.
func Cached(m Metric, size int) (*CachedMetric, error) {
	if m == nil {
		return nil, internalerr.ErrMissingMetric
	}
	cache, err := lru.New[pair, float64](size)
	if err != nil {
		return nil, fmt.Errorf("%w: metric cache: %w", internalerr.ErrInvalidConfig, err)
	}
	return &CachedMetric{inner: m, cache: cache}, nil
}

// Similarity implements Metric.
func (c *CachedMetric) Similarity(a, b string) float64 {
	key := pair{a, b}
	if v, ok := c.cache.Get(key); ok {
		return v
	}
	v := c.inner.Similarity(a, b)
	c.cache.Add(key, v)
	return v
}

// Len reports the number of cached pairs
func (c *CachedMetric) Len() int { return c.cache.Len() }
