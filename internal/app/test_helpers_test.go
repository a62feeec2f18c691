package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/trove/internal/adapters/memory"
	"github.com/example/trove/internal/store"
)

// ============================================================================
// Shared Test Fixtures
// ============================================================================

// appClock is the fixed time every service test runs at.
var appClock = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// newStore builds a store over in-memory storage with sequential ids and
// the fixed test clock.
func newStore[T store.Record[T]](t *testing.T, prefix string) (*store.Store[T], *memory.Storage[T]) {
	t.Helper()
	storage := memory.New[T]()
	n := 0
	s := store.New[T](storage,
		store.WithIDGenerator[T](func() string {
			n++
			return fmt.Sprintf("%s-%03d", prefix, n)
		}),
		store.WithClock[T](func() time.Time { return appClock }),
	)
	t.Cleanup(func() { s.Close() })
	return s, storage
}

func fprice(v float64) *float64 { return &v }
