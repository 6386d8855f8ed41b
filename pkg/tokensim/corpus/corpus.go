// Package corpus maintains a unigram document-frequency corpus and answers
// inverse document frequency queries for TF-IDF based measures.
package corpus

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// Corpus tokenizes documents into a Store.
type Corpus struct {
	store  Store
	tok    tokenize.Tokenizer
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex // guards entropy
	entropy *ulid.MonotonicEntropy
}

// Option customizes a Corpus
type Option func(*Corpus)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Corpus) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock overrides the time source used for document timestamps and IDs
func WithClock(now func() time.Time) Option {
	return func(c *Corpus) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a corpus over store. A nil tokenizer selects padded bigrams.
func New(store Store, tok tokenize.Tokenizer, opts ...Option) (*Corpus, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: corpus without store", internalerr.ErrInvalidConfig)
	}
	if tok == nil {
		tok = tokenize.Bigrams()
	}
	c := &Corpus{
		store:   store,
		tok:     tok,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Tokenizer returns the corpus tokenizer
func (c *Corpus) Tokenizer() tokenize.Tokenizer { return c.tok }

// Store returns the underlying store
func (c *Corpus) Store() Store { return c.store }

// Close closes the underlying store
func (c *Corpus) Close() error { return c.store.Close() }

// AddDocument tokenizes text and stores it under a fresh ULID.
func (c *Corpus) AddDocument(ctx context.Context, text string) (string, error) {
	toks := c.tok.Tokenize(text)
	now := c.now()

	c.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(now), c.entropy)
	c.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("document id: %w", err)
	}

	doc := Document{
		ID:      id.String(),
		Tokens:  Distinct(toks.List),
		Length:  len(toks.List),
		AddedAt: now.UTC(),
	}
	if err := c.store.AddDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("add document %s: %w", doc.ID, err)
	}
	c.logger.Debug("document added", "id", doc.ID, "tokens", doc.Length, "distinct", len(doc.Tokens))
	return doc.ID, nil
}

// AddHTML extracts the visible text of an HTML document and adds it.
func (c *Corpus) AddHTML(ctx context.Context, r io.Reader) (string, error) {
	text, err := ExtractText(r)
	if err != nil {
		return "", err
	}
	return c.AddDocument(ctx, text)
}

// DocumentCount returns the number of documents
func (c *Corpus) DocumentCount(ctx context.Context) (int64, error) {
	return c.store.DocumentCount(ctx)
}

// DocumentFrequency returns the number of documents containing token
func (c *Corpus) DocumentFrequency(ctx context.Context, token string) (int64, error) {
	return c.store.DocumentFrequency(ctx, token)
}

// IDF returns the smoothed ln(1+(N+1)/df) for token, or 0 when the token or
// the corpus is empty. Tokens present in every document keep a positive
// weight.
func (c *Corpus) IDF(ctx context.Context, token string) (float64, error) {
	n, err := c.store.DocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("idf %q: %w", token, err)
	}
	df, err := c.store.DocumentFrequency(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("idf %q: %w", token, err)
	}
	return idf(n, df), nil
}

func idf(n, df int64) float64 {
	if n == 0 || df == 0 {
		return 0
	}
	return math.Log1p(float64(n+1) / float64(df))
}
