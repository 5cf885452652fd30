package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// CreatePlaceInput contains the data needed to create a place.
type CreatePlaceInput struct {
	Title       string
	Description *string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	Amenities   []string
}

// PlaceDetails is a place together with its resolved relations.
type PlaceDetails struct {
	Place     *domain.Place
	Owner     *domain.User
	Amenities []*domain.Amenity
	Reviews   []*domain.Review
}

// CreatePlace creates a place after checking that the owner and every amenity exist.
// The new place id is appended to the owner's places.
func (f *Facade) CreatePlace(ctx context.Context, input CreatePlaceInput) (*domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.users.Exists(ctx, input.OwnerID) {
		f.logger.Debug().Str("owner_id", input.OwnerID).Msg("place owner does not exist")
		return nil, referenceNotFound("owner", input.OwnerID)
	}
	if err := f.checkAmenities(ctx, input.Amenities); err != nil {
		return nil, err
	}

	place, err := domain.NewPlace(domain.PlaceParams{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		OwnerID:     input.OwnerID,
		Amenities:   input.Amenities,
	})
	if err != nil {
		return nil, err
	}

	if err := f.places.Add(ctx, place); err != nil {
		f.logger.Error().Err(err).Str("place_id", place.ID).Msg("failed to store place")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	f.linkOwner(detach(ctx), place.OwnerID, place.ID)

	f.logger.Info().
		Str("place_id", place.ID).
		Str("owner_id", place.OwnerID).
		Int("amenities", len(place.Amenities)).
		Msg("place created")

	return place, nil
}

// GetPlace retrieves a place by id.
func (f *Facade) GetPlace(ctx context.Context, id string) (*domain.Place, error) {
	place, ok := f.places.Get(ctx, id)
	if !ok {
		return nil, notFound("place", id)
	}
	return place, nil
}

// ListPlaces returns all places in creation order.
func (f *Facade) ListPlaces(ctx context.Context) []*domain.Place {
	return f.places.GetAll(ctx)
}

// GetPlacesByOwner returns the places owned by a user, in creation order.
func (f *Facade) GetPlacesByOwner(ctx context.Context, ownerID string) []*domain.Place {
	return f.places.FilterByAttribute(ctx, "owner_id", ownerID)
}

// GetPlaceDetails returns a place with its owner, amenities and reviews resolved.
// Ids that no longer resolve are skipped.
func (f *Facade) GetPlaceDetails(ctx context.Context, id string) (*PlaceDetails, error) {
	place, ok := f.places.Get(ctx, id)
	if !ok {
		return nil, notFound("place", id)
	}

	details := &PlaceDetails{
		Place:     place,
		Amenities: make([]*domain.Amenity, 0, len(place.Amenities)),
		Reviews:   make([]*domain.Review, 0, len(place.Reviews)),
	}
	if owner, ok := f.users.Get(ctx, place.OwnerID); ok {
		details.Owner = owner
	}
	for _, amenityID := range place.Amenities {
		if amenity, ok := f.amenities.Get(ctx, amenityID); ok {
			details.Amenities = append(details.Amenities, amenity)
		}
	}
	for _, reviewID := range place.Reviews {
		if review, ok := f.reviews.Get(ctx, reviewID); ok {
			details.Reviews = append(details.Reviews, review)
		}
	}
	return details, nil
}

// UpdatePlace applies a partial update. A new owner_id or amenities list is
// checked for existence first. Changing the owner moves the place id between
// the two users' places.
func (f *Facade) UpdatePlace(ctx context.Context, id string, fields domain.Fields) (*domain.Place, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.places.Get(ctx, id)
	if !ok {
		return nil, notFound("place", id)
	}

	if raw, ok := fields["owner_id"]; ok {
		ownerID, err := domain.ValidateID("owner_id", raw)
		if err != nil {
			return nil, err
		}
		if !f.users.Exists(ctx, ownerID) {
			return nil, referenceNotFound("owner", ownerID)
		}
	}
	if raw, ok := fields["amenities"]; ok {
		ids, err := domain.ValidateIDList("amenities", raw)
		if err != nil {
			return nil, err
		}
		if err := f.checkAmenities(ctx, ids); err != nil {
			return nil, err
		}
	}

	var updated *domain.Place
	err := f.places.UpdateWith(ctx, id, func(p *domain.Place) error {
		if err := p.Update(fields); err != nil {
			return err
		}
		updated = p.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("place", id)
		}
		return nil, err
	}

	if updated.OwnerID != current.OwnerID {
		commit := detach(ctx)
		f.unlinkOwner(commit, current.OwnerID, id)
		f.linkOwner(commit, updated.OwnerID, id)
	}

	f.logger.Info().Str("place_id", id).Msg("place updated")
	return updated, nil
}

// DeletePlace removes a place that has no reviews and drops it from the
// owner's places. Deleting a missing id is a no-op.
func (f *Facade) DeletePlace(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	place, ok := f.places.Get(ctx, id)
	if !ok {
		return nil
	}
	if len(f.reviews.FilterByAttribute(ctx, "place_id", id)) > 0 {
		return stillReferenced("place has reviews", id)
	}

	f.places.Delete(ctx, id)
	f.unlinkOwner(detach(ctx), place.OwnerID, id)

	f.logger.Info().Str("place_id", id).Msg("place deleted")
	return nil
}

func (f *Facade) checkAmenities(ctx context.Context, ids []string) error {
	for _, amenityID := range ids {
		if !f.amenities.Exists(ctx, amenityID) {
			f.logger.Debug().Str("amenity_id", amenityID).Msg("amenity does not exist")
			return referenceNotFound("amenity", amenityID)
		}
	}
	return nil
}

func (f *Facade) linkOwner(ctx context.Context, ownerID, placeID string) {
	err := f.users.UpdateWith(ctx, ownerID, func(u *domain.User) error {
		u.AddPlace(placeID)
		return nil
	})
	if err != nil {
		f.logger.Warn().Err(err).Str("owner_id", ownerID).Str("place_id", placeID).Msg("failed to link place to owner")
	}
}

func (f *Facade) unlinkOwner(ctx context.Context, ownerID, placeID string) {
	err := f.users.UpdateWith(ctx, ownerID, func(u *domain.User) error {
		u.RemovePlace(placeID)
		return nil
	})
	if err != nil {
		f.logger.Warn().Err(err).Str("owner_id", ownerID).Str("place_id", placeID).Msg("failed to unlink place from owner")
	}
}
