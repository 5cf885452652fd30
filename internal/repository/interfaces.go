// Package repository defines data access interfaces for HBnB.
// These interfaces abstract storage, allowing for different implementations
// while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/prn-tf/hbnb/internal/domain"
)

// Entity is the constraint for anything a Repository can store.
// All four domain entities satisfy it through their pointer types.
type Entity[T any] interface {
	// GetID returns the storage key.
	GetID() string

	// Update applies a partial update atomically (see the domain entities).
	Update(fields domain.Fields) error

	// Record returns the serializable field mapping, used for attribute lookups.
	Record() domain.Record

	// Clone returns a deep copy so stored instances never alias caller state.
	Clone() T
}

// Repository is a keyed store holding one entity type.
// Entities handed in and out are copies: mutating a returned value has no
// effect until it is written back.
type Repository[T Entity[T]] interface {
	// Add stores entity under its id. An entity with the same id is replaced.
	Add(ctx context.Context, entity T) error

	// Get retrieves an entity by id. The bool is false if absent.
	Get(ctx context.Context, id string) (T, bool)

	// GetAll returns every entity in insertion order.
	GetAll(ctx context.Context) []T

	// GetByAttribute returns the first entity whose record value under name equals value.
	// String comparison is exact (case-sensitive).
	GetByAttribute(ctx context.Context, name string, value any) (T, bool)

	// FilterByAttribute returns all entities whose record value under name equals value,
	// in insertion order.
	FilterByAttribute(ctx context.Context, name string, value any) []T

	// Exists checks if an entity with the given id is stored.
	Exists(ctx context.Context, id string) bool

	// Update delegates to the entity's own Update. Returns ErrNotFound if absent.
	Update(ctx context.Context, id string, fields domain.Fields) error

	// UpdateWith runs fn against a copy of the stored entity and stores the copy
	// only if fn succeeds. Returns ErrNotFound if absent.
	UpdateWith(ctx context.Context, id string, fn func(T) error) error

	// Delete removes an entity. Deleting a missing id is not an error;
	// the bool reports whether something was removed.
	Delete(ctx context.Context, id string) bool

	// Count returns the number of stored entities.
	Count(ctx context.Context) int
}

// =============================================================================
// Repository Set
// =============================================================================

// Repositories holds one repository per entity type.
type Repositories struct {
	Users     Repository[*domain.User]
	Places    Repository[*domain.Place]
	Amenities Repository[*domain.Amenity]
	Reviews   Repository[*domain.Review]
}
