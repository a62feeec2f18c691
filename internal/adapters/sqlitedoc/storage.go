// Package sqlitedoc persists record collections as JSON documents in a
// SQLite key/value table, one row per collection. The documents are
// opaque to the database; SQLite here is a durable document store, not a
// relational schema.
package sqlitedoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name       TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the trove database at the given path
// and ensures the schema exists.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

// Storage implements secondary.Storage[T] over one named collection row.
type Storage[T any] struct {
	db   *sql.DB
	name string
}

// New creates a Storage for the named collection.
func New[T any](db *sql.DB, name string) *Storage[T] {
	return &Storage[T]{db: db, name: name}
}

// Save replaces the collection's document.
func (s *Storage[T]) Save(ctx context.Context, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO collections (name, document) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP`,
		s.name, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", s.name, err)
	}
	return nil
}

// Load reads the collection's document. A missing row yields an empty
// collection. Individual records that fail to decode are skipped.
func (s *Storage[T]) Load(ctx context.Context) ([]T, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM collections WHERE name = ?", s.name,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", s.name, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", s.name, err)
	}

	records := make([]T, 0, len(raw))
	for _, elem := range raw {
		var r T
		if err := json.Unmarshal(elem, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, nil
}
