// Package memory provides an in-memory storage collaborator, used by
// tests and by ephemeral (non-persisted) runs.
package memory

import (
	"context"
	"sync"
)

// Storage implements secondary.Storage[T] in memory. The error fields let
// tests inject storage failures.
type Storage[T any] struct {
	mu      sync.Mutex
	records []T
	saves   int

	SaveErr error
	LoadErr error
}

// New creates an empty in-memory Storage.
func New[T any]() *Storage[T] {
	return &Storage[T]{}
}

// Seed replaces the stored collection. Used by tests to prime a load.
func (s *Storage[T]) Seed(records []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]T(nil), records...)
}

// Save stores a copy of the collection.
func (s *Storage[T]) Save(ctx context.Context, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.records = append([]T(nil), records...)
	s.saves++
	return nil
}

// Load returns a copy of the stored collection.
func (s *Storage[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return append([]T(nil), s.records...), nil
}

// Saves returns how many successful saves have happened.
func (s *Storage[T]) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Stored returns a copy of the last saved collection.
func (s *Storage[T]) Stored() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.records...)
}
