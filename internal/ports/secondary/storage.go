// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the core drives
// external systems.
package secondary

import "context"

// Storage is the persistence collaborator for a record collection. The
// encoding is opaque to the core: implementations save and load whole
// collections as documents. Load must tolerate a missing or partially
// unreadable document by returning whatever was decodable rather than
// failing the whole collection.
type Storage[T any] interface {
	// Save persists the full collection, replacing any prior document.
	Save(ctx context.Context, records []T) error

	// Load reads the full collection. A missing document yields an empty
	// collection and no error.
	Load(ctx context.Context) ([]T, error)
}
