// Package memory provides an in-memory repository implementation.
// State lives only for the lifetime of the process.
package memory

import (
	"context"
	"reflect"
	"sync"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// Store implements repository.Repository using an ordered map.
// Values are cloned on the way in and on the way out.
type Store[T repository.Entity[T]] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

var (
	_ repository.Repository[*domain.User]    = (*Store[*domain.User])(nil)
	_ repository.Repository[*domain.Place]   = (*Store[*domain.Place])(nil)
	_ repository.Repository[*domain.Amenity] = (*Store[*domain.Amenity])(nil)
	_ repository.Repository[*domain.Review]  = (*Store[*domain.Review])(nil)
)

// New creates an empty Store.
func New[T repository.Entity[T]]() *Store[T] {
	return &Store[T]{
		items: make(map[string]T),
	}
}

// NewRepositories creates one empty Store per entity type.
func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		Users:     New[*domain.User](),
		Places:    New[*domain.Place](),
		Amenities: New[*domain.Amenity](),
		Reviews:   New[*domain.Review](),
	}
}

// Add stores a copy of entity. Re-adding an id replaces the entity in place.
func (s *Store[T]) Add(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := entity.GetID()
	if _, exists := s.items[id]; !exists {
		s.order = append(s.order, id)
	}
	s.items[id] = entity.Clone()
	return nil
}

// Get returns a copy of the entity stored under id.
func (s *Store[T]) Get(ctx context.Context, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return entity.Clone(), true
}

// GetAll returns copies of all entities in insertion order.
func (s *Store[T]) GetAll(ctx context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id].Clone())
	}
	return out
}

// GetByAttribute returns the first match in insertion order.
func (s *Store[T]) GetByAttribute(ctx context.Context, name string, value any) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		entity := s.items[id]
		if stored, ok := entity.Record()[name]; ok && equalValues(stored, value) {
			return entity.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// FilterByAttribute returns every match in insertion order.
func (s *Store[T]) FilterByAttribute(ctx context.Context, name string, value any) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0)
	for _, id := range s.order {
		entity := s.items[id]
		if stored, ok := entity.Record()[name]; ok && equalValues(stored, value) {
			out = append(out, entity.Clone())
		}
	}
	return out
}

// Exists checks if id is stored.
func (s *Store[T]) Exists(ctx context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[id]
	return ok
}

// Update applies fields through the entity's own Update.
func (s *Store[T]) Update(ctx context.Context, id string, fields domain.Fields) error {
	return s.UpdateWith(ctx, id, func(entity T) error {
		return entity.Update(fields)
	})
}

// UpdateWith mutates a copy and commits it only if fn returns nil.
func (s *Store[T]) UpdateWith(ctx context.Context, id string, fn func(T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity, ok := s.items[id]
	if !ok {
		return repository.ErrNotFound
	}

	next := entity.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.items[id] = next
	return nil
}

// Delete removes id if present.
func (s *Store[T]) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Count returns the number of stored entities.
func (s *Store[T]) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// equalValues compares a stored record value with a lookup value.
// Numbers compare by value across Go numeric kinds, everything else by deep equality.
func equalValues(stored, want any) bool {
	if reflect.DeepEqual(stored, want) {
		return true
	}
	a, aok := numeric(stored)
	b, bok := numeric(want)
	return aok && bok && a == b
}

func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
