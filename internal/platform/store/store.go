// Package store holds the in-memory entity collections. One Store exists per
// entity kind; it exclusively owns its entities and hands out copies.
package store

import (
	"fmt"
	"sync"
)

// Entity is a record identified by an integer id within its store. WithID
// returns a copy of the entity carrying the given id.
type Entity[T any] interface {
	GetID() int
	WithID(id int) T
}

// Cloner is implemented by entities holding reference-typed fields (slices,
// maps) that must not be shared between the store and its callers.
type Cloner[T any] interface {
	Clone() T
}

func clone[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Repository is the contract services depend on. Store implements it.
type Repository[T Entity[T]] interface {
	Get(id int) (T, bool)
	Has(id int) bool
	List() []T
	Len() int
	Insert(e T) (int, error)
	InsertAt(id int, e T) error
	Replace(id int, e T) error
	Update(id int, fn func(T) (T, error)) (T, error)
	Delete(id int) bool
	Find(pred func(T) bool) []T
}

// Store is a mutex-guarded collection of entities keyed by id. Iteration
// follows insertion order.
type Store[T Entity[T]] struct {
	mu    sync.RWMutex
	items map[int]T
	order []int
	// hwm is the highest id ever stored, deleted or not.
	hwm int
}

func New[T Entity[T]]() *Store[T] {
	return &Store[T]{items: make(map[int]T)}
}

// Get returns a copy of the entity stored under id.
func (s *Store[T]) Get(id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(v), true
}

// Has reports whether id is present.
func (s *Store[T]) Has(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// List returns copies of all entities in insertion order.
func (s *Store[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.items[id]))
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Insert allocates the next id and stores e under it. Any id already set on
// e is discarded. Allocation and insertion happen under one lock. Ids of
// deleted entities are never issued again.
func (s *Store[T]) Insert(e T) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := NextID(s.keys())
	if err != nil {
		return 0, err
	}
	if id <= s.hwm {
		id = s.hwm + 1
	}
	s.put(id, e)
	return id, nil
}

// InsertAt stores e under an id issued elsewhere, used by role stores that
// share the Person id space.
func (s *Store[T]) InsertAt(id int, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; ok {
		return fmt.Errorf("%w: id %d already in use", ErrConflict, id)
	}
	s.put(id, e)
	return nil
}

// Replace overwrites the entity under id with e verbatim. It is a full
// replace, not a merge.
func (s *Store[T]) Replace(id int, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.items[id] = clone(e.WithID(id))
	return nil
}

// Update runs fn against a copy of the entity under id and stores the result
// if fn succeeds. On error the stored entity is left untouched.
func (s *Store[T]) Update(id int, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	next, err := fn(clone(cur))
	if err != nil {
		var zero T
		return zero, err
	}
	next = next.WithID(id)
	s.items[id] = clone(next)
	return next, nil
}

// Delete removes id and reports whether anything was removed.
func (s *Store[T]) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Find returns copies of every entity matching pred, in insertion order.
func (s *Store[T]) Find(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0)
	for _, id := range s.order {
		if v := s.items[id]; pred(v) {
			out = append(out, clone(v))
		}
	}
	return out
}

func (s *Store[T]) keys() []int {
	return s.order
}

func (s *Store[T]) put(id int, e T) {
	s.items[id] = clone(e.WithID(id))
	s.order = append(s.order, id)
	if id > s.hwm {
		s.hwm = id
	}
}
