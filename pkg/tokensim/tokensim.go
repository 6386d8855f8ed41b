// Package tokensim is the entry point of the toolkit: it builds the
// configured contingency engine, similarity measures and Sift4 scanner and
// scores single pairs or whole batches with them.
package tokensim

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cognicore/tokensim/internal/logging"
	"github.com/cognicore/tokensim/pkg/tokensim/batch"
	"github.com/cognicore/tokensim/pkg/tokensim/config"
	"github.com/cognicore/tokensim/pkg/tokensim/engine"
	"github.com/cognicore/tokensim/pkg/tokensim/formula"
	"github.com/cognicore/tokensim/pkg/tokensim/hybrid"
)

// Scorer names that are not contingency formulas
const (
	ScorerSift4           = "sift4"
	ScorerMongeElkan      = "monge_elkan"
	ScorerSoftTFIDF       = "soft_tfidf"
	ScorerMetaLevenshtein = "meta_levenshtein"
)

// Options configures a Toolkit
type Options struct {
	Config       *config.Config   // takes precedence over ConfigPath
	ConfigPath   string           // YAML file; empty uses config.Default
	StoplistPath string           // extra stopwords for the words tokenizer
	Corpus       hybrid.IDFSource // IDF for the hybrid measures; nil: the two inputs
	Logger       *slog.Logger
}

// Toolkit compares strings with a fixed configuration. It is safe for
// concurrent use.
type Toolkit struct {
	comp   *config.Components
	corpus hybrid.IDFSource
	logger *slog.Logger
}

// New builds a Toolkit. Every configuration error surfaces here.
func New(opts Options) (*Toolkit, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var (
		comp *config.Components
		err  error
	)
	if opts.Config != nil {
		comp, err = config.Build(opts.Config, logger)
	} else {
		loader := &config.Loader{ConfigPath: opts.ConfigPath, StoplistPath: opts.StoplistPath}
		comp, err = loader.Load(logger)
	}
	if err != nil {
		return nil, err
	}

	return &Toolkit{comp: comp, corpus: opts.Corpus, logger: logger}, nil
}

// Engine returns the contingency engine
func (t *Toolkit) Engine() *engine.Engine { return t.comp.Engine }

// Config returns the effective configuration
func (t *Toolkit) Config() *config.Config { return t.comp.Config }

// Score is one named measure value
type Score struct {
	Name  string
	Value float64
}

// Report is the full comparison of one pair
type Report struct {
	Src, Tar      string
	Cardinalities engine.Cardinalities
	Scores        []Score // configured measures, in configuration order
	Sift4         int
}

// Compare tokenizes both strings once and evaluates every configured measure
// on the same contingency table.
func (t *Toolkit) Compare(src, tar string) Report {
	cmp := t.comp.Engine.Tokenize(src, tar)
	scores := make([]Score, len(t.comp.Measures))
	for i, m := range t.comp.Measures {
		scores[i] = Score{Name: m.Name(), Value: m.Evaluate(cmp)}
	}
	return Report{
		Src:           src,
		Tar:           tar,
		Cardinalities: cmp.Cardinalities,
		Scores:        scores,
		Sift4:         t.comp.Sift4.Distance(src, tar),
	}
}

// Scorer returns a batch scorer by name: any formula measure, "sift4"
// (similarity), or one of the hybrid measures. Hybrids reuse the configured
// tokenizer and intersection metric.
func (t *Toolkit) Scorer(name string) (batch.Scorer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case ScorerSift4:
		return batch.ScorerFunc(t.comp.Sift4.Sim), nil
	case ScorerMongeElkan:
		me := hybrid.MongeElkan{Tokenizer: t.comp.Tokenizer, Metric: t.comp.Metric}
		return batch.ScorerFunc(me.Sim), nil
	case ScorerSoftTFIDF:
		st := hybrid.SoftTFIDF{Tokenizer: t.comp.Tokenizer, Metric: t.comp.Metric, Corpus: t.corpus}
		return batch.ScorerFunc(st.Sim), nil
	case ScorerMetaLevenshtein:
		ml := hybrid.MetaLevenshtein{Tokenizer: t.comp.Tokenizer, Metric: t.comp.Metric, Corpus: t.corpus}
		return batch.ScorerFunc(ml.Sim), nil
	}

	m, err := formula.NewMeasure(t.comp.Engine, key)
	if err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}
	return m, nil
}

// ScoreAll runs the named scorer over pairs concurrently, keeping input order.
func (t *Toolkit) ScoreAll(ctx context.Context, name string, pairs []batch.Pair, workers int) ([]batch.Result, error) {
	scorer, err := t.Scorer(name)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("scoring batch", "scorer", name, "pairs", len(pairs))
	return batch.Run(ctx, scorer, pairs, batch.Options{Workers: workers, Logger: t.logger})
}
