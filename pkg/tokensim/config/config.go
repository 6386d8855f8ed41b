// Package config reads tokensim YAML configuration and constructs the
// configured components.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/tokensim/internal/logging"
	"github.com/cognicore/tokensim/pkg/tokensim/formula"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/intersect"
	"github.com/cognicore/tokensim/pkg/tokensim/metric"
)

// DefaultCutoff is the threshold-mode cutoff used when none is configured.
const DefaultCutoff = 0.8

// Config is the top-level configuration file
type Config struct {
	Tokenizer    Tokenizer    `yaml:"tokenizer"`
	Population   Population   `yaml:"population"`
	Intersection Intersection `yaml:"intersection"`
	Measures     []string     `yaml:"measures"`
	Sift4        Sift4        `yaml:"sift4"`
	Logging      Logging      `yaml:"logging"`
}

// Tokenizer selects and parameterizes the tokenizer
type Tokenizer struct {
	Kind        string   `yaml:"kind"` // qgrams | characters | words
	Q           int      `yaml:"q"`
	StartStop   *string  `yaml:"start_stop"`
	Skip        int      `yaml:"skip"`
	Scaler      string   `yaml:"scaler"` // none | set | log
	Stopwords   []string `yaml:"stopwords"`
	Stoplist    string   `yaml:"stoplist"` // path to a stoplist YAML file
	MinLength   int      `yaml:"min_length"`
	DropNumeric bool     `yaml:"drop_numeric"`
}

// Population describes the token universe
type Population struct {
	Kind        string   `yaml:"kind"` // default | inferred | size | explicit | unresolved
	Alphabet    string   `yaml:"alphabet"`
	TokenLength int      `yaml:"token_length"`
	Size        int64    `yaml:"size"`
	Tokens      []string `yaml:"tokens"`
}

// Intersection selects the intersection mode and its metric
type Intersection struct {
	Mode      string   `yaml:"mode"` // exact | threshold | weighted
	Metric    string   `yaml:"metric"`
	Cutoff    *float64 `yaml:"cutoff"`
	CacheSize int      `yaml:"cache_size"`
}

// Sift4 parameterizes the Sift4 scanner
type Sift4 struct {
	MaxOffset   int `yaml:"max_offset"`
	MaxDistance int `yaml:"max_distance"`
}

// Logging configures the logger
type Logging struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given: padded
// bigrams, inferred population, exact intersection and Jaccard.
func Default() *Config {
	return &Config{
		Tokenizer:    Tokenizer{Kind: "qgrams", Q: 2},
		Population:   Population{Kind: "default"},
		Intersection: Intersection{Mode: "exact"},
		Measures:     []string{"jaccard"},
		Sift4:        Sift4{MaxOffset: 5},
		Logging:      Logging{Level: "info"},
	}
}

// Load reads and validates a configuration file
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseBytes is Parse over a byte slice
func ParseBytes(data []byte) (*Config, error) {
	return Parse(bytes.NewReader(data))
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{internalerr.ErrInvalidConfig}, args...)...)
}

// Validate checks field values without constructing anything.
func (c *Config) Validate() error {
	switch kind(c.Tokenizer.Kind) {
	case "qgrams":
		if c.Tokenizer.Q < 1 {
			return invalid("tokenizer.q must be >= 1, got %d", c.Tokenizer.Q)
		}
	case "characters", "words":
	default:
		return invalid("unknown tokenizer kind %q", c.Tokenizer.Kind)
	}
	if c.Tokenizer.Skip < 0 {
		return invalid("tokenizer.skip must be >= 0, got %d", c.Tokenizer.Skip)
	}
	switch kind(c.Tokenizer.Scaler) {
	case "", "none", "set", "log":
	default:
		return invalid("unknown tokenizer scaler %q", c.Tokenizer.Scaler)
	}

	switch kind(c.Population.Kind) {
	case "", "default", "unresolved":
	case "inferred":
		if c.Population.TokenLength < 0 {
			return fmt.Errorf("%w: %w: population.token_length %d", internalerr.ErrInvalidConfig, internalerr.ErrInvalidTokenLength, c.Population.TokenLength)
		}
	case "size":
		if c.Population.Size < 0 {
			return invalid("population.size must be >= 0, got %d", c.Population.Size)
		}
	case "explicit":
		if len(c.Population.Tokens) == 0 {
			return invalid("explicit population needs tokens")
		}
	default:
		return invalid("unknown population kind %q", c.Population.Kind)
	}

	mode, err := intersect.ParseMode(c.Intersection.Mode)
	if err != nil {
		return err
	}
	if mode != intersect.Exact {
		if _, err := metric.ByName(c.Intersection.Metric); err != nil {
			return err
		}
	}
	if cut := c.Intersection.Cutoff; cut != nil && (*cut < 0 || *cut > 1) {
		return fmt.Errorf("%w: %w: intersection.cutoff %v", internalerr.ErrInvalidConfig, internalerr.ErrInvalidThreshold, *cut)
	}
	if c.Intersection.CacheSize < 0 {
		return invalid("intersection.cache_size must be >= 0, got %d", c.Intersection.CacheSize)
	}

	for _, name := range c.Measures {
		if _, err := formula.Lookup(name); err != nil {
			return err
		}
	}

	if c.Sift4.MaxOffset < 0 || c.Sift4.MaxDistance < 0 {
		return invalid("sift4 parameters must be >= 0")
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return invalid("unknown logging level %q", c.Logging.Level)
	}
	return nil
}

func kind(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Stoplist represents the stopword list file
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: stoplist %s: %w", internalerr.ErrInvalidConfig, path, err)
	}

	return &sl, nil
}
