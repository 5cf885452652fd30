package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Facade aggregates one repository per entity type and enforces the rules
// that span entities: reference checks, email uniqueness, back-references
// and delete guards.
type Facade struct {
	users     repository.Repository[*domain.User]
	places    repository.Repository[*domain.Place]
	amenities repository.Repository[*domain.Amenity]
	reviews   repository.Repository[*domain.Review]
	hasher    PasswordHasher

	// mu serializes mutations so that a check and the writes it guards
	// are not interleaved with another writer.
	mu sync.Mutex

	logger zerolog.Logger
}

// NewFacade creates a new Facade.
func NewFacade(repos *repository.Repositories, hasher PasswordHasher, logger zerolog.Logger) *Facade {
	return &Facade{
		users:     repos.Users,
		places:    repos.Places,
		amenities: repos.Amenities,
		reviews:   repos.Reviews,
		hasher:    hasher,
		logger:    logger.With().Str("service", "facade").Logger(),
	}
}

// Stats holds entity counts.
type Stats struct {
	Users     int `json:"users"`
	Places    int `json:"places"`
	Amenities int `json:"amenities"`
	Reviews   int `json:"reviews"`
}

// Stats returns the number of stored entities per type.
func (f *Facade) Stats(ctx context.Context) Stats {
	return Stats{
		Users:     f.users.Count(ctx),
		Places:    f.places.Count(ctx),
		Amenities: f.amenities.Count(ctx),
		Reviews:   f.reviews.Count(ctx),
	}
}

// detach returns a context for follow-up writes once the primary write is
// committed. Cancelling the request must not leave back-references half applied.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
