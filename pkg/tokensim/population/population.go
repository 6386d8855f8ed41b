// Package population describes the universe N of possible tokens against
// which "neither in X nor in Y" cardinalities are measured.
//
// A Population is a closed sum of four representations. It is resolved once
// into a Resolution, which the contingency engine caches for its lifetime.
package population

import (
	"fmt"
	"math"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/multiset"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// Kind enumerates the population representations
type Kind int

const (
	// KindUnresolved leaves the population size unknown (treated as 0).
	KindUnresolved Kind = iota
	// KindExplicit uses an explicit multiset of tokens.
	KindExplicit
	// KindInferred computes |alphabet|^tokenLength.
	KindInferred
	// KindSize uses an explicit integer cardinality.
	KindSize
)

func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindInferred:
		return "inferred"
	case KindSize:
		return "size"
	default:
		return "unresolved"
	}
}

// Default alphabet sizes used when no seed alphabet is supplied: 26 English
// letters, plus the two q-gram sentinels when tokens are padded.
const (
	DefaultLetters        = 26
	DefaultPaddedAlphabet = 28
)

// Population is an unresolved population descriptor. The zero value is
// Unresolved; use Default for the q-gram inference behaviour.
type Population struct {
	kind        Kind
	tokens      *multiset.Multiset
	seed        string
	tokenLength int
	size        int64
}

// Unresolved returns a population of unknown size
func Unresolved() Population { return Population{kind: KindUnresolved} }

// Explicit uses the given multiset as the universe
func Explicit(m *multiset.Multiset) Population {
	return Population{kind: KindExplicit, tokens: m.Clone()}
}

// FromTokens builds an explicit population from a token list
func FromTokens(tokens []string) Population {
	return Population{kind: KindExplicit, tokens: multiset.FromTokens(tokens)}
}

// Inferred computes the population as |alphabet|^tokenLength. The alphabet is
// the distinct runes of seed (empty selects the English default) and a
// tokenLength of 0 is taken from the tokenizer.
func Inferred(seed string, tokenLength int) Population {
	return Population{kind: KindInferred, seed: seed, tokenLength: tokenLength}
}

// Size uses n as the population cardinality
func Size(n int64) Population { return Population{kind: KindSize, size: n} }

// Default infers the population from the tokenizer with the English default
// alphabet.
func Default() Population { return Inferred("", 0) }

// Kind returns the representation kind
func (p Population) Kind() Kind { return p.kind }

// Validate reports configuration errors without resolving.
func (p Population) Validate() error {
	switch p.kind {
	case KindInferred:
		if p.tokenLength < 0 {
			return fmt.Errorf("%w: %w: %d", internalerr.ErrInvalidConfig, internalerr.ErrInvalidTokenLength, p.tokenLength)
		}
	case KindSize:
		if p.size < 0 {
			return fmt.Errorf("%w: negative population size %d", internalerr.ErrInvalidConfig, p.size)
		}
	case KindExplicit:
		if p.tokens == nil {
			return fmt.Errorf("%w: explicit population without tokens", internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

// Resolution is the canonical form of a population: a positive size, or
// unresolved.
type Resolution struct {
	Kind     Kind
	Size     float64
	Tokens   *multiset.Multiset // set only for KindExplicit
	Resolved bool
}

// Resolve computes the population size. The tokenizer is consulted only for
// inferred populations; a tokenizer without fixed-length tokens leaves an
// inferred population unresolved. A size of zero is never resolved.
func (p Population) Resolve(tok tokenize.Tokenizer) (Resolution, error) {
	if err := p.Validate(); err != nil {
		return Resolution{}, err
	}
	res := p.resolve(tok)
	if res.Size == 0 {
		res.Resolved = false
	}
	return res, nil
}

func (p Population) resolve(tok tokenize.Tokenizer) Resolution {
	switch p.kind {
	case KindExplicit:
		return Resolution{Kind: KindExplicit, Size: p.tokens.Card(), Tokens: p.tokens, Resolved: true}
	case KindSize:
		return Resolution{Kind: KindSize, Size: float64(p.size), Resolved: true}
	case KindInferred:
		return p.infer(tok)
	default:
		return Resolution{Kind: KindUnresolved}
	}
}

func (p Population) infer(tok tokenize.Tokenizer) Resolution {
	q := p.tokenLength
	sentinels := ""
	if fl, ok := tok.(tokenize.FixedLength); ok {
		if q == 0 {
			q = fl.TokenLength()
		}
		sentinels = fl.Sentinels()
	}
	if q == 0 {
		return Resolution{Kind: KindUnresolved}
	}

	var alphabet int
	if p.seed == "" {
		alphabet = DefaultLetters
		if q > 1 {
			alphabet = DefaultPaddedAlphabet
		}
	} else {
		distinct := make(map[rune]struct{})
		for _, r := range p.seed {
			distinct[r] = struct{}{}
		}
		if q > 1 {
			for _, r := range sentinels {
				distinct[r] = struct{}{}
			}
		}
		alphabet = len(distinct)
	}

	return Resolution{
		Kind:     KindInferred,
		Size:     math.Pow(float64(alphabet), float64(q)),
		Resolved: true,
	}
}
