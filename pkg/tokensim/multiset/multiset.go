// Package multiset provides ordered token-count multisets and the set
// algebra over them that the comparison engine relies on.
package multiset

import (
	"math"
	"sort"
)

// Multiset maintains token counts in first-insertion order.
// Counts are non-negative and may be fractional after scaling.
type Multiset struct {
	counts map[string]float64
	order  []string
}

// New creates an empty multiset
func New() *Multiset {
	return &Multiset{counts: make(map[string]float64)}
}

// FromTokens counts every token in the list, once per occurrence
func FromTokens(tokens []string) *Multiset {
	m := &Multiset{
		counts: make(map[string]float64, len(tokens)),
		order:  make([]string, 0, len(tokens)),
	}
	for _, t := range tokens {
		m.Add(t, 1)
	}
	return m
}

// FromCounts builds a multiset from a count map. Keys listed in order come
// first; the rest follow sorted so the result is deterministic.
func FromCounts(counts map[string]float64, order []string) *Multiset {
	m := New()
	for _, t := range order {
		if n, ok := counts[t]; ok {
			m.Add(t, n)
		}
	}
	rest := make([]string, 0, len(counts))
	for t := range counts {
		if _, ok := m.counts[t]; !ok {
			rest = append(rest, t)
		}
	}
	sort.Strings(rest)
	for _, t := range rest {
		m.Add(t, counts[t])
	}
	return m
}

// Add increases the count of a token. Non-positive and NaN amounts are ignored.
func (m *Multiset) Add(token string, n float64) {
	if !(n > 0) {
		return
	}
	if _, ok := m.counts[token]; !ok {
		m.order = append(m.order, token)
	}
	m.counts[token] += n
}

// Set replaces the count of a token; a count <= 0 removes it.
func (m *Multiset) Set(token string, n float64) {
	if !(n > 0) {
		m.remove(token)
		return
	}
	if _, ok := m.counts[token]; !ok {
		m.order = append(m.order, token)
	}
	m.counts[token] = n
}

func (m *Multiset) remove(token string) {
	if _, ok := m.counts[token]; !ok {
		return
	}
	delete(m.counts, token)
	for i, t := range m.order {
		if t == token {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Count returns the count of a token (0 when absent)
func (m *Multiset) Count(token string) float64 {
	if m == nil {
		return 0
	}
	return m.counts[token]
}

// Contains reports whether the token has a positive count
func (m *Multiset) Contains(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.counts[token]
	return ok
}

// Keys returns the distinct tokens in first-insertion order
func (m *Multiset) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of distinct tokens
func (m *Multiset) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Card returns the cardinality: the sum of all counts
func (m *Multiset) Card() float64 {
	if m == nil {
		return 0
	}
	var sum float64
	for _, t := range m.order {
		sum += m.counts[t]
	}
	return sum
}

// Clone returns an independent copy
func (m *Multiset) Clone() *Multiset {
	out := &Multiset{
		counts: make(map[string]float64, m.Len()),
		order:  make([]string, 0, m.Len()),
	}
	if m == nil {
		return out
	}
	for _, t := range m.order {
		out.order = append(out.order, t)
		out.counts[t] = m.counts[t]
	}
	return out
}

// Intersection keeps the minimum count of tokens present in both multisets.
// Order follows m.
func (m *Multiset) Intersection(o *Multiset) *Multiset {
	out := New()
	for _, t := range m.Keys() {
		out.Add(t, math.Min(m.counts[t], o.Count(t)))
	}
	return out
}

// IntersectionCard returns the cardinality of the intersection without
// materializing it, iterating the smaller multiset.
func (m *Multiset) IntersectionCard(o *Multiset) float64 {
	small, large := m, o
	if small.Len() > large.Len() {
		small, large = large, small
	}
	if small == nil {
		return 0
	}
	var sum float64
	for _, t := range small.order {
		if n, ok := large.counts[t]; ok {
			sum += math.Min(small.counts[t], n)
		}
	}
	return sum
}

// Union keeps the maximum count of every token. Order is m's then o's new keys.
func (m *Multiset) Union(o *Multiset) *Multiset {
	out := m.Clone()
	for _, t := range o.Keys() {
		if n := o.counts[t]; n > out.counts[t] {
			out.Set(t, n)
		}
	}
	return out
}

// Sum adds counts of both multisets
func (m *Multiset) Sum(o *Multiset) *Multiset {
	out := m.Clone()
	for _, t := range o.Keys() {
		out.Add(t, o.counts[t])
	}
	return out
}

// Difference subtracts o's counts from m's, saturating at zero
func (m *Multiset) Difference(o *Multiset) *Multiset {
	out := New()
	for _, t := range m.Keys() {
		out.Add(t, m.counts[t]-o.Count(t))
	}
	return out
}

// Scale applies fn to every count. Results <= 0 drop the token.
func (m *Multiset) Scale(fn func(float64) float64) *Multiset {
	out := New()
	for _, t := range m.Keys() {
		out.Add(t, fn(m.counts[t]))
	}
	return out
}

// Equal reports whether both multisets hold the same counts (order ignored)
func (m *Multiset) Equal(o *Multiset) bool {
	if m.Len() != o.Len() {
		return false
	}
	for _, t := range m.Keys() {
		if o.Count(t) != m.counts[t] {
			return false
		}
	}
	return true
}
