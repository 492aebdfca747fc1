// Package memory provides an in-memory implementation of the
// storage.Storage interface.
//
// Each entity type lives in its own table guarded by its own RWMutex.
// Reads take the read lock and hand out copies. Writes that span two
// tables lock courses before assignments.
//
// All state is discarded when the process exits.
package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Compile-time check that *Store satisfies storage.Storage.
var _ storage.Storage = (*Store)(nil)

// Store is the in-memory backend.
type Store struct {
	persons     *table[types.Person]
	addresses   *table[types.Address]
	courses     *table[types.Course]
	assignments *table[types.Assignment]

	nowFn func() time.Time
	newID func() uuid.UUID
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces the time source used for created_at/updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.nowFn = now }
}

// WithIDGenerator replaces the generator used for server-side ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		persons:     newTable[types.Person](),
		addresses:   newTable[types.Address](),
		courses:     newTable[types.Course](),
		assignments: newTable[types.Assignment](),
		nowFn:       func() time.Time { return time.Now().UTC() },
		newID:       types.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close is a no-op; it exists to satisfy storage.Storage.
func (s *Store) Close() error { return nil }

// touch returns the new updated_at for a record last touched at prev. The
// wall clock can step backwards, updated_at must not.
func (s *Store) touch(prev time.Time) time.Time {
	now := s.nowFn()
	if now.Before(prev) {
		return prev
	}
	return now
}

func identity[T any](v T) T { return v }
