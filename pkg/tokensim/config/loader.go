package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cognicore/tokensim/internal/logging"
	"github.com/cognicore/tokensim/pkg/tokensim/engine"
	"github.com/cognicore/tokensim/pkg/tokensim/formula"
	"github.com/cognicore/tokensim/pkg/tokensim/intersect"
	"github.com/cognicore/tokensim/pkg/tokensim/metric"
	"github.com/cognicore/tokensim/pkg/tokensim/population"
	"github.com/cognicore/tokensim/pkg/tokensim/sift4"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath   string
	StoplistPath string
}

// Components holds the constructed components
type Components struct {
	Config    *Config
	Tokenizer tokenize.Tokenizer
	Metric    metric.Metric // nil in exact mode
	Engine    *engine.Engine
	Measures  []*formula.Measure
	Sift4     sift4.Scanner
}

// Load reads the configured files and builds the components. An empty
// ConfigPath uses Default.
func (l *Loader) Load(logger *slog.Logger) (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// A stoplist named in the config file is relative to that file.
	paths := make([]string, 0, 2)
	if sl := cfg.Tokenizer.Stoplist; sl != "" {
		if !filepath.IsAbs(sl) && l.ConfigPath != "" {
			sl = filepath.Join(filepath.Dir(l.ConfigPath), sl)
		}
		paths = append(paths, sl)
	}
	if l.StoplistPath != "" {
		paths = append(paths, l.StoplistPath)
	}
	for _, path := range paths {
		stoplist, err := LoadStoplist(path)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		cfg.Tokenizer.Stopwords = append(cfg.Tokenizer.Stopwords, stoplist.Terms...)
	}

	return Build(cfg, logger)
}

// Build validates cfg and constructs every component from it. A nil logger
// discards output.
func Build(cfg *Config, logger *slog.Logger) (*Components, error) {
	if cfg == nil {
		cfg = Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tok, err := buildTokenizer(cfg.Tokenizer)
	if err != nil {
		return nil, err
	}
	pop := buildPopulation(cfg.Population)

	mode, err := intersect.ParseMode(cfg.Intersection.Mode)
	if err != nil {
		return nil, err
	}
	spec := intersect.Spec{Mode: mode, Cutoff: DefaultCutoff}
	if cfg.Intersection.Cutoff != nil {
		spec.Cutoff = *cfg.Intersection.Cutoff
	}
	if mode != intersect.Exact {
		m, err := metric.ByName(cfg.Intersection.Metric)
		if err != nil {
			return nil, err
		}
		if cfg.Intersection.CacheSize > 0 {
			if m, err = metric.Cached(m, cfg.Intersection.CacheSize); err != nil {
				return nil, err
			}
		}
		spec.Metric = m
	}

	eng, err := engine.New(engine.Config{
		Tokenizer:    tok,
		Population:   &pop,
		Intersection: spec,
	}, engine.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	measures := make([]*formula.Measure, 0, len(cfg.Measures))
	for _, name := range cfg.Measures {
		m, err := formula.NewMeasure(eng, name)
		if err != nil {
			return nil, err
		}
		measures = append(measures, m)
	}

	logger.Debug("components built",
		"tokenizer", kind(cfg.Tokenizer.Kind),
		"population", pop.Kind().String(),
		"intersection", mode.String(),
		"measures", len(measures))

	return &Components{
		Config:    cfg,
		Tokenizer: tok,
		Metric:    spec.Metric,
		Engine:    eng,
		Measures:  measures,
		Sift4:     sift4.Scanner{MaxOffset: cfg.Sift4.MaxOffset, MaxDistance: cfg.Sift4.MaxDistance},
	}, nil
}

func buildScaler(name string) tokenize.Scaler {
	switch kind(name) {
	case "set":
		return tokenize.ScaleSet
	case "log":
		return tokenize.ScaleLog
	default:
		return nil
	}
}

func buildTokenizer(t Tokenizer) (tokenize.Tokenizer, error) {
	scaler := buildScaler(t.Scaler)
	switch kind(t.Kind) {
	case "characters":
		g := tokenize.Characters()
		g.Scaler = scaler
		return g, nil
	case "words":
		opts := []tokenize.WordsOption{tokenize.WithScaler(scaler)}
		if t.MinLength > 0 {
			opts = append(opts, tokenize.WithMinLength(t.MinLength))
		}
		if t.DropNumeric {
			opts = append(opts, tokenize.WithoutNumeric())
		}
		return tokenize.NewWords(t.Stopwords, opts...), nil
	default:
		startStop := tokenize.DefaultStartStop
		if t.StartStop != nil {
			startStop = *t.StartStop
		}
		g, err := tokenize.NewQGrams(t.Q, startStop)
		if err != nil {
			return nil, err
		}
		g.Skip = t.Skip
		g.Scaler = scaler
		return g, nil
	}
}

func buildPopulation(p Population) population.Population {
	switch strings.ToLower(strings.TrimSpace(p.Kind)) {
	case "inferred":
		return population.Inferred(p.Alphabet, p.TokenLength)
	case "size":
		return population.Size(p.Size)
	case "explicit":
		return population.FromTokens(p.Tokens)
	case "unresolved":
		return population.Unresolved()
	default:
		return population.Default()
	}
}
