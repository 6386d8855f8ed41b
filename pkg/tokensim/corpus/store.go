package corpus

import (
	"context"
	"time"
)

// Store persists documents and their distinct tokens.
type Store interface {
	Close() error

	// AddDocument stores doc and bumps the document frequency of each of
	// its tokens. Reusing an ID fails with internalerr.ErrInvalidInput.
	AddDocument(ctx context.Context, doc Document) error
	// Document fails with internalerr.ErrNotFound for unknown IDs.
	Document(ctx context.Context, id string) (Document, error)
	DocumentCount(ctx context.Context) (int64, error)
	DocumentFrequency(ctx context.Context, token string) (int64, error)
}

// Document is one corpus entry.
type Document struct {
	ID      string
	Tokens  []string // distinct, in first-occurrence order
	Length  int      // token count before deduplication
	AddedAt time.Time
}

// Distinct returns tokens without duplicates or empty strings, keeping the
// first occurrence order.
func Distinct(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
