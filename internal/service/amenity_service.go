package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// CreateAmenityInput contains the data needed to create an amenity.
type CreateAmenityInput struct {
	Name string
}

// CreateAmenity creates a new amenity.
func (f *Facade) CreateAmenity(ctx context.Context, input CreateAmenityInput) (*domain.Amenity, error) {
	amenity, err := domain.NewAmenity(input.Name)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.amenities.Add(ctx, amenity); err != nil {
		f.logger.Error().Err(err).Str("amenity_id", amenity.ID).Msg("failed to store amenity")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	f.logger.Info().
		Str("amenity_id", amenity.ID).
		Str("name", amenity.Name).
		Msg("amenity created")

	return amenity, nil
}

// GetAmenity retrieves an amenity by id.
func (f *Facade) GetAmenity(ctx context.Context, id string) (*domain.Amenity, error) {
	amenity, ok := f.amenities.Get(ctx, id)
	if !ok {
		return nil, notFound("amenity", id)
	}
	return amenity, nil
}

// ListAmenities returns all amenities in creation order.
func (f *Facade) ListAmenities(ctx context.Context) []*domain.Amenity {
	return f.amenities.GetAll(ctx)
}

// UpdateAmenity applies a partial update. Only name is recognized.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, fields domain.Fields) (*domain.Amenity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.amenities.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("amenity", id)
		}
		return nil, err
	}

	amenity, _ := f.amenities.Get(ctx, id)
	f.logger.Info().Str("amenity_id", id).Msg("amenity updated")
	return amenity, nil
}

// DeleteAmenity removes an amenity that no place lists. Deleting a missing id is a no-op.
func (f *Facade) DeleteAmenity(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.amenities.Exists(ctx, id) {
		return nil
	}
	for _, place := range f.places.GetAll(ctx) {
		if place.HasAmenity(id) {
			return stillReferenced("amenity is listed by a place", id)
		}
	}

	f.amenities.Delete(ctx, id)
	f.logger.Info().Str("amenity_id", id).Msg("amenity deleted")
	return nil
}
