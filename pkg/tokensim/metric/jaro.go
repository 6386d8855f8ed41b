package metric

import "github.com/antzucaro/matchr"

// Winkler's usual constants
const (
	DefaultBoostThreshold = 0.7
	DefaultPrefixScale    = 0.1
	DefaultMaxPrefix      = 4
)

// JaroWinkler is the Jaro similarity with Winkler's common-prefix boost.
// Zero fields select the usual constants. With those constants the score is
// matchr's JaroWinkler, which stops the common prefix at the first digit.
type JaroWinkler struct {
	BoostThreshold float64
	PrefixScale    float64
	MaxPrefix      int
	NoBoost        bool // plain Jaro
}

func (jw JaroWinkler) params() (threshold, scale float64, maxPrefix int) {
	threshold, scale, maxPrefix = jw.BoostThreshold, jw.PrefixScale, jw.MaxPrefix
	if threshold == 0 {
		threshold = DefaultBoostThreshold
	}
	if scale == 0 {
		scale = DefaultPrefixScale
	}
	if maxPrefix <= 0 {
		maxPrefix = DefaultMaxPrefix
	}
	return threshold, scale, maxPrefix
}

// Similarity implements Metric.
func (jw JaroWinkler) Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if jw.NoBoost {
		return matchr.Jaro(a, b)
	}

	threshold, scale, maxPrefix := jw.params()
	if threshold == DefaultBoostThreshold && scale == DefaultPrefixScale && maxPrefix == DefaultMaxPrefix {
		return matchr.JaroWinkler(a, b, false)
	}

	sim := matchr.Jaro(a, b)
	if sim <= threshold {
		return sim
	}
	r1, r2 := []rune(a), []rune(b)
	prefix := 0
	for prefix < maxPrefix && prefix < len(r1) && prefix < len(r2) && r1[prefix] == r2[prefix] {
		prefix++
	}
	sim += float64(prefix) * scale * (1 - sim)
	if sim > 1 {
		sim = 1
	}
	return sim
}
