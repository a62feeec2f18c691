// Package jsonfile persists record collections as JSON documents on disk,
// one file per collection.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage implements secondary.Storage[T] over a single JSON file.
type Storage[T any] struct {
	path string
}

// New creates a Storage writing to the given file path. The parent
// directory is created on first save.
func New[T any](path string) *Storage[T] {
	return &Storage[T]{path: path}
}

// Save writes the full collection atomically: the document is written to
// a temp file in the same directory and renamed over the target, so a
// crash mid-write never corrupts the previous document.
func (s *Storage[T]) Save(ctx context.Context, records []T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write collection: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace collection file: %w", err)
	}
	return nil
}

// Load reads the collection. A missing file yields an empty collection.
// Individual records that fail to decode are skipped so one corrupt
// element never loses the whole collection; only an unreadable document
// returns an error.
func (s *Storage[T]) Load(ctx context.Context) ([]T, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	return decodeCollection[T](data)
}

// decodeCollection decodes a JSON array element by element, keeping
// whatever was decodable.
func decodeCollection[T any](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse collection document: %w", err)
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
