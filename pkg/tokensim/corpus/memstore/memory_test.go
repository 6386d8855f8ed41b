package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

func TestAddDocumentCountsDistinctTokens(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.AddDocument(ctx, corpus.Document{ID: "d1", Tokens: []string{"a", "b", "a"}}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if err := s.AddDocument(ctx, corpus.Document{ID: "d2", Tokens: []string{"b"}}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	if df, _ := s.DocumentFrequency(ctx, "a"); df != 1 {
		t.Errorf("df(a) = %d, want 1", df)
	}
	if df, _ := s.DocumentFrequency(ctx, "b"); df != 2 {
		t.Errorf("df(b) = %d, want 2", df)
	}
	if n, _ := s.DocumentCount(ctx); n != 2 {
		t.Errorf("DocumentCount = %d, want 2", n)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	ctx := context.Background()
	s := New()

	doc := corpus.Document{ID: "d1", Tokens: []string{"a"}}
	if err := s.AddDocument(ctx, doc); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	err := s.AddDocument(ctx, doc)
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if df, _ := s.DocumentFrequency(ctx, "a"); df != 1 {
		t.Errorf("rejected document must not change df, got %d", df)
	}
}

func TestDocumentIsCopied(t *testing.T) {
	ctx := context.Background()
	s := New()

	tokens := []string{"x", "y"}
	if err := s.AddDocument(ctx, corpus.Document{ID: "d1", Tokens: tokens}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	tokens[0] = "mutated"

	doc, err := s.Document(ctx, "d1")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Tokens[0] != "x" {
		t.Errorf("stored document aliased caller slice: %v", doc.Tokens)
	}
	doc.Tokens[1] = "mutated"
	again, _ := s.Document(ctx, "d1")
	if again.Tokens[1] != "y" {
		t.Errorf("returned document aliased stored slice: %v", again.Tokens)
	}
}

func TestMissingDocument(t *testing.T) {
	_, err := New().Document(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
