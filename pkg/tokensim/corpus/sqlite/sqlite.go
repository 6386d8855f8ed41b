package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/tokensim/pkg/tokensim/corpus"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// sqliteStore implements corpus.Store using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite corpus database with WAL mode enabled and
// creates the schema if needed.
func OpenSQLite(ctx context.Context, path string) (corpus.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %w", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	length INTEGER NOT NULL DEFAULT 0,
	added_at TEXT
);

CREATE TABLE IF NOT EXISTS document_tokens (
	doc_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	token TEXT NOT NULL,
	UNIQUE(doc_id, token),
	FOREIGN KEY(doc_id) REFERENCES documents(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS token_df (
	token TEXT PRIMARY KEY,
	df INTEGER NOT NULL
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddDocument inserts a document and updates token document frequencies
// in one transaction.
func (s *sqliteStore) AddDocument(ctx context.Context, d corpus.Document) error {
	if d.ID == "" {
		return fmt.Errorf("%w: document without id", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, length, added_at) VALUES (?, ?, ?) ON CONFLICT(id) DO NOTHING`,
		d.ID, d.Length, d.AddedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: duplicate document %s", internalerr.ErrInvalidInput, d.ID)
	}

	if err := insertTokens(ctx, tx, d.ID, corpus.Distinct(d.Tokens)); err != nil {
		return err
	}

	return tx.Commit()
}

func insertTokens(ctx context.Context, tx *sql.Tx, docID string, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	tokStmt, err := tx.PrepareContext(ctx, `INSERT INTO document_tokens (doc_id, position, token) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tokStmt.Close()

	dfStmt, err := tx.PrepareContext(ctx, `
INSERT INTO token_df (token, df) VALUES (?, 1)
ON CONFLICT(token) DO UPDATE SET df = df + 1;
`)
	if err != nil {
		return err
	}
	defer dfStmt.Close()

	for i, tok := range tokens {
		if _, err := tokStmt.ExecContext(ctx, docID, i, tok); err != nil {
			return err
		}
		if _, err := dfStmt.ExecContext(ctx, tok); err != nil {
			return err
		}
	}
	return nil
}

// Document loads a document and its distinct tokens
func (s *sqliteStore) Document(ctx context.Context, id string) (corpus.Document, error) {
	var (
		doc   corpus.Document
		added string
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, length, added_at FROM documents WHERE id = ?`, id).
		Scan(&doc.ID, &doc.Length, &added)
	if errors.Is(err, sql.ErrNoRows) {
		return corpus.Document{}, fmt.Errorf("document %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return corpus.Document{}, err
	}

	if added != "" {
		if parsed, perr := time.Parse(time.RFC3339Nano, added); perr == nil {
			doc.AddedAt = parsed
		}
	}

	doc.Tokens, err = s.loadStringColumn(ctx, `SELECT token FROM document_tokens WHERE doc_id = ? ORDER BY position`, id)
	if err != nil {
		return corpus.Document{}, err
	}
	return doc, nil
}

// DocumentCount returns the number of stored documents
func (s *sqliteStore) DocumentCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&total)
	return total, err
}

// DocumentFrequency retrieves the document frequency for a token
func (s *sqliteStore) DocumentFrequency(ctx context.Context, token string) (int64, error) {
	var df int64
	err := s.db.QueryRowContext(ctx, `SELECT df FROM token_df WHERE token = ?`, token).Scan(&df)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return df, err
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, rows.Err()
}
