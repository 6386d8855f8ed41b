// Package hybrid implements token-level hybrid measures: an inner string
// metric scores token pairs and an outer scheme aggregates them.
package hybrid

import (
	"context"
	"fmt"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/corpus/memstore"
	"github.com/cognicore/tokensim/pkg/tokensim/tokenize"
)

// IDFSource supplies inverse document frequencies. *corpus.Corpus
// implements it.
type IDFSource interface {
	IDF(ctx context.Context, token string) (float64, error)
}

// pairCorpus builds the fallback corpus made of just the two inputs.
func pairCorpus(ctx context.Context, tok tokenize.Tokenizer, src, tar string) (IDFSource, error) {
	c, err := corpus.New(memstore.New(), tok)
	if err != nil {
		return nil, err
	}
	for _, text := range []string{src, tar} {
		if _, err := c.AddDocument(ctx, text); err != nil {
			return nil, fmt.Errorf("pair corpus: %w", err)
		}
	}
	return c, nil
}

func tokenizerOrDefault(tok tokenize.Tokenizer) tokenize.Tokenizer {
	if tok == nil {
		return tokenize.Bigrams()
	}
	return tok
}
