package memory

import (
	"sync"

	"github.com/google/uuid"
)

// table is one entity type's rows plus their insertion order. It does no
// locking of its own: Store methods take mu before touching rows so that a
// single operation can hold several tables at once (course delete holds
// courses and assignments together).
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]T)}
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) has(id uuid.UUID) bool {
	_, ok := t.rows[id]
	return ok
}

// put inserts or replaces the row. New rows go to the end of the order.
func (t *table[T]) put(id uuid.UUID, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// filter returns clone(row) for every row accepted by keep, in insertion
// order. The result is never nil.
func (t *table[T]) filter(keep func(T) bool, clone func(T) T) []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if keep(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func (t *table[T]) len() int {
	return len(t.rows)
}
