package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// Store is an in-memory implementation of corpus.Store.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]corpus.Document
	tokenDF map[string]int64
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		docs:    make(map[string]corpus.Document),
		tokenDF: make(map[string]int64),
	}
}

// Close implements corpus.Store.
func (s *Store) Close() error { return nil }

// AddDocument implements corpus.Store.
func (s *Store) AddDocument(ctx context.Context, d corpus.Document) error {
	if d.ID == "" {
		return fmt.Errorf("%w: document without id", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[d.ID]; ok {
		return fmt.Errorf("%w: duplicate document %s", internalerr.ErrInvalidInput, d.ID)
	}
	d.Tokens = corpus.Distinct(d.Tokens)
	s.docs[d.ID] = copyDoc(d)
	for _, tok := range d.Tokens {
		s.tokenDF[tok]++
	}
	return nil
}

// Document implements corpus.Store.
func (s *Store) Document(ctx context.Context, id string) (corpus.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return corpus.Document{}, fmt.Errorf("document %s: %w", id, internalerr.ErrNotFound)
	}
	return copyDoc(doc), nil
}

// DocumentCount implements corpus.Store.
func (s *Store) DocumentCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

// DocumentFrequency implements corpus.Store.
func (s *Store) DocumentFrequency(ctx context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenDF[token], nil
}

func copyDoc(d corpus.Document) corpus.Document {
	out := d
	out.Tokens = append([]string(nil), d.Tokens...)
	return out
}
