// Package store provides the generic record store shared by all trove
// trackers: a canonical ordered collection with serialized mutation,
// best-effort persistence through a storage collaborator, and change
// notification for dependent views.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/trove/internal/ports/secondary"
)

var (
	// ErrNotFound is returned when an operation references an unknown record id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when Add is given a record whose id already
	// exists in the collection.
	ErrDuplicateID = errors.New("duplicate record id")
)

// Record is the contract a domain type must satisfy to live in a Store.
// The With* methods return patched copies, never mutate the receiver.
type Record[T any] interface {
	// RecordID returns the record's unique identifier, or "" if unassigned.
	RecordID() string

	// CreationTime returns the record's creation timestamp.
	CreationTime() time.Time

	// WithIdentity returns a copy with id and timestamps filled in where
	// they are not already set.
	WithIdentity(id string, now time.Time) T

	// WithTimestamps returns a copy with both timestamps set explicitly.
	WithTimestamps(created, modified time.Time) T
}

// Store owns the canonical ordered collection of records of type T.
// All mutation funnels through it. Mutations are serialized by a single
// lock; snapshots are copies, so callers can never mutate the store
// through them. Persistence runs on a background writer and never rolls
// back in-memory state on failure.
type Store[T Record[T]] struct {
	mu      sync.Mutex
	records []T
	index   map[string]int

	storage secondary.Storage[T]
	clock   func() time.Time
	newID   func() string

	observers map[int]func()
	nextObs   int

	errs   chan error
	saveCh chan []T
	wg     sync.WaitGroup
	closed bool
}

// Option configures a Store.
type Option[T Record[T]] func(*Store[T])

// WithClock overrides the time source. Used by tests.
func WithClock[T Record[T]](clock func() time.Time) Option[T] {
	return func(s *Store[T]) { s.clock = clock }
}

// WithIDGenerator overrides the id generator. Used by tests.
func WithIDGenerator[T Record[T]](gen func() string) Option[T] {
	return func(s *Store[T]) { s.newID = gen }
}

// New creates a Store backed by the given storage collaborator and starts
// its background writer. Call Close to flush pending saves.
func New[T Record[T]](storage secondary.Storage[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		index:     make(map[string]int),
		storage:   storage,
		clock:     time.Now,
		newID:     uuid.NewString,
		observers: make(map[int]func()),
		errs:      make(chan error, 16),
		saveCh:    make(chan []T, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// Load reads the full collection from storage. On storage failure the
// store starts empty and the failure is reported on Errors; Load never
// fails the caller. Records with duplicate ids in the document are
// dropped after the first occurrence.
func (s *Store[T]) Load(ctx context.Context) {
	records, err := s.storage.Load(ctx)
	if err != nil {
		s.report(fmt.Errorf("load collection: %w", err))
	}

	s.mu.Lock()
	s.records = s.records[:0]
	s.index = make(map[string]int, len(records))
	for _, r := range records {
		id := r.RecordID()
		if id == "" {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = len(s.records)
		s.records = append(s.records, r)
	}
	s.mu.Unlock()
}

// Add assigns identity and timestamps where unset, appends the record to
// the end of the canonical collection, persists, and returns the stored
// record. Returns ErrDuplicateID if the record's id already exists.
func (s *Store[T]) Add(ctx context.Context, record T) (T, error) {
	var zero T

	s.mu.Lock()
	record = record.WithIdentity(s.newID(), s.clock())
	id := record.RecordID()
	if _, exists := s.index[id]; exists {
		s.mu.Unlock()
		return zero, fmt.Errorf("add %s: %w", id, ErrDuplicateID)
	}
	s.index[id] = len(s.records)
	s.records = append(s.records, record)
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return record, nil
}

// Update replaces the record with the same id in place, preserving its
// position and creation timestamp and bumping last-modified. Returns
// ErrNotFound if the id is absent; the collection is left unchanged.
func (s *Store[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	id := record.RecordID()

	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return zero, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	// Creation time is immutable: carry it over from the stored record.
	record = record.WithTimestamps(s.records[pos].CreationTime(), s.clock())
	s.records[pos] = record
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return record, nil
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op, not an error: delete is idempotent so retried UI actions are safe.
func (s *Store[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	s.records = append(s.records[:pos], s.records[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.records); i++ {
		s.index[s.records[i].RecordID()] = i
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify()
	return nil
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store[T]) Get(id string) (T, error) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.index[id]
	if !ok {
		return zero, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return s.records[pos], nil
}

// All returns a snapshot copy of the canonical collection in insertion
// order. Mutating the returned slice does not affect the store.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of records in the collection.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Subscribe registers a callback invoked after every successful mutation.
// The returned function unsubscribes it.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// Errors returns the side channel carrying persistence and load failures.
// The channel is buffered; when full, further failures are dropped.
func (s *Store[T]) Errors() <-chan error {
	return s.errs
}

// Close flushes any pending save and stops the background writer.
func (s *Store[T]) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.saveCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// persistLocked enqueues a snapshot for the background writer, coalescing
// any stale pending snapshot to the latest. Caller must hold s.mu.
func (s *Store[T]) persistLocked() {
	if s.closed {
		return
	}
	snap := s.snapshotLocked()
	for {
		select {
		case s.saveCh <- snap:
			return
		default:
			select {
			case <-s.saveCh:
			default:
			}
		}
	}
}

func (s *Store[T]) snapshotLocked() []T {
	snap := make([]T, len(s.records))
	copy(snap, s.records)
	return snap
}

// writer drains queued snapshots and saves them. A failed save is surfaced
// on the error channel; the in-memory state stays authoritative.
func (s *Store[T]) writer() {
	defer s.wg.Done()
	for snap := range s.saveCh {
		if err := s.storage.Save(context.Background(), snap); err != nil {
			s.report(fmt.Errorf("save collection: %w", err))
		}
	}
}

func (s *Store[T]) report(err error) {
	select {
	case s.errs <- err:
	default:
	}
}

func (s *Store[T]) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
