// Package engine implements the token-set contingency engine: it tokenizes a
// source and a target string, intersects the resulting multisets and derives
// the 2x2 contingency table (a, b, c, d) together with the population size n
// that similarity formulas consume.
package engine

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/cognicore/tokensim/pkg/tokensim/intersect"
	"github.com/cognicore/tokensim/pkg/tokensim/population"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// Config configures an Engine. Zero fields select defaults: padded bigrams,
// the inferred English population and exact intersection.
type Config struct {
	Tokenizer    tokenize.Tokenizer
	Population   *population.Population
	Intersection intersect.Spec
}

// Option customizes an Engine
type Option func(*Engine)

// WithLogger sets the logger used for debug output
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine compares strings. It is immutable after construction apart from the
// once-only population resolution and is safe for concurrent use.
type Engine struct {
	tokenizer tokenize.Tokenizer
	pop       population.Population
	mode      intersect.Mode
	inter     intersect.Intersector
	logger    *slog.Logger

	once sync.Once
	res  population.Resolution
}

// New validates cfg and builds an Engine. All configuration errors surface
// here, never during a comparison.
func New(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		tokenizer: cfg.Tokenizer,
		pop:       population.Default(),
		mode:      cfg.Intersection.Mode,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if e.tokenizer == nil {
		e.tokenizer = tokenize.Bigrams()
	}
	if cfg.Population != nil {
		e.pop = *cfg.Population
	}
	if err := e.pop.Validate(); err != nil {
		return nil, fmt.Errorf("engine population: %w", err)
	}

	inter, err := intersect.New(cfg.Intersection)
	if err != nil {
		return nil, fmt.Errorf("engine intersection: %w", err)
	}
	e.inter = inter

	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tokenizer returns the configured tokenizer
func (e *Engine) Tokenizer() tokenize.Tokenizer { return e.tokenizer }

// Mode returns the intersection mode
func (e *Engine) Mode() intersect.Mode { return e.mode }

// Population returns the resolved population, resolving it on first use.
func (e *Engine) Population() population.Resolution {
	e.once.Do(func() {
		res, err := e.pop.Resolve(e.tokenizer)
		if err != nil {
			// unreachable once New has validated the population
			e.logger.Warn("population resolution failed", "err", err)
			res = population.Resolution{Kind: population.KindUnresolved}
		}
		e.res = res
		e.logger.Debug("population resolved",
			"kind", res.Kind.String(),
			"size", res.Size,
			"resolved", res.Resolved)
	})
	return e.res
}

// Compare returns the contingency cardinalities of src against tar.
func (e *Engine) Compare(src, tar string) Cardinalities {
	return e.Tokenize(src, tar).Cardinalities
}

// Tokenize is Compare that also returns both token multisets.
func (e *Engine) Tokenize(src, tar string) Comparison {
	s := e.tokenizer.Tokenize(src)
	t := e.tokenizer.Tokenize(tar)
	return Comparison{
		Src:           s,
		Tar:           t,
		Cardinalities: e.cardinalities(s, t),
	}
}

func (e *Engine) cardinalities(s, t tokenize.Tokens) Cardinalities {
	srcCard := s.Counts.Card()
	tarCard := t.Counts.Card()

	a := e.inter.Card(s.Counts, t.Counts)
	if math.IsNaN(a) || a < 0 {
		a = 0
	}
	// weighted sums can overshoot either side
	a = math.Min(a, math.Min(srcCard, tarCard))

	out := Cardinalities{
		A:       a,
		B:       srcCard - a,
		C:       tarCard - a,
		SrcCard: srcCard,
		TarCard: tarCard,
	}

	res := e.Population()
	out.Population = res.Size
	out.Resolved = res.Resolved
	switch {
	case !res.Resolved:
		return out
	case res.Kind == population.KindExplicit:
		out.D = res.Tokens.Difference(s.Counts.Union(t.Counts)).Card()
	default:
		out.D = math.Max(0, res.Size-out.A-out.B-out.C)
	}
	out.N = out.A + out.B + out.C + out.D
	return out
}
