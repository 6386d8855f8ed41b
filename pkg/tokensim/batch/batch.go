// Package batch scores many string pairs concurrently.
package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// Scorer scores one pair. Implementations must be safe for concurrent use.
type Scorer interface {
	Score(src, tar string) float64
}

// ScorerFunc adapts a function to Scorer
type ScorerFunc func(src, tar string) float64

// Score implements Scorer.
func (f ScorerFunc) Score(src, tar string) float64 { return f(src, tar) }

// Pair is one comparison
type Pair struct {
	Src, Tar string
}

// Result is the score of one pair. Done is false for pairs skipped after
// cancellation.
type Result struct {
	Pair
	Score float64
	Done  bool
}

// Options tunes Run
type Options struct {
	Workers       int          // <= 0: GOMAXPROCS
	Logger        *slog.Logger // progress at debug level
	ProgressEvery int          // log every n completed pairs; <= 0: never
}

// Run scores every pair with at most Workers goroutines. Results keep the
// input order. Non-finite scores are returned as is and never abort the
// batch. On cancellation Run stops scheduling and returns the partial
// results with the context error.
func Run(ctx context.Context, scorer Scorer, pairs []Pair, opts Options) ([]Result, error) {
	if scorer == nil {
		return nil, fmt.Errorf("%w: batch without scorer", internalerr.ErrInvalidConfig)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]Result, len(pairs))
	var completed, nonFinite atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score := scorer.Score(p.Src, p.Tar)
			results[i] = Result{Pair: p, Score: score, Done: true}
			if math.IsNaN(score) || math.IsInf(score, 0) {
				nonFinite.Add(1)
			}
			if n := completed.Add(1); opts.ProgressEvery > 0 && n%int64(opts.ProgressEvery) == 0 {
				logger.Debug("batch progress", "completed", n, "total", len(pairs))
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil && completed.Load() < int64(len(pairs)) {
		err = ctx.Err()
	}
	for i := range results {
		if !results[i].Done {
			results[i].Pair = pairs[i]
		}
	}

	logger.Debug("batch finished",
		"pairs", len(pairs),
		"completed", completed.Load(),
		"non_finite", nonFinite.Load(),
		"workers", workers)
	if err != nil {
		return results, fmt.Errorf("batch interrupted after %d of %d pairs: %w", completed.Load(), len(pairs), err)
	}
	return results, nil
}
