package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/repository"
)

// CreateReviewInput contains the data needed to create a review.
type CreateReviewInput struct {
	Text    string
	Rating  int
	PlaceID string
	UserID  string
}

// CreateReview resolves the place and the author, then creates the review and
// records its id on both.
func (f *Facade) CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	place, ok := f.places.Get(ctx, input.PlaceID)
	if !ok {
		return nil, referenceNotFound("place", input.PlaceID)
	}
	user, ok := f.users.Get(ctx, input.UserID)
	if !ok {
		return nil, referenceNotFound("user", input.UserID)
	}

	review, err := domain.NewReview(input.Text, input.Rating, place, user)
	if err != nil {
		return nil, err
	}

	if err := f.reviews.Add(ctx, review); err != nil {
		f.logger.Error().Err(err).Str("review_id", review.ID).Msg("failed to store review")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	commit := detach(ctx)
	f.updateBackReference(commit, review, func(p *domain.Place) { p.AddReview(review.ID) }, func(u *domain.User) { u.AddReview(review.ID) })

	f.logger.Info().
		Str("review_id", review.ID).
		Str("place_id", review.PlaceID).
		Str("user_id", review.UserID).
		Int("rating", review.Rating).
		Msg("review created")

	return review, nil
}

// GetReview retrieves a review by id.
func (f *Facade) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	review, ok := f.reviews.Get(ctx, id)
	if !ok {
		return nil, notFound("review", id)
	}
	return review, nil
}

// ListReviews returns all reviews in creation order.
func (f *Facade) ListReviews(ctx context.Context) []*domain.Review {
	return f.reviews.GetAll(ctx)
}

// GetReviewsByPlace returns the reviews of a place in creation order.
func (f *Facade) GetReviewsByPlace(ctx context.Context, placeID string) []*domain.Review {
	return f.reviews.FilterByAttribute(ctx, "place_id", placeID)
}

// GetReviewsByUser returns the reviews written by a user in creation order.
func (f *Facade) GetReviewsByUser(ctx context.Context, userID string) []*domain.Review {
	return f.reviews.FilterByAttribute(ctx, "user_id", userID)
}

// UpdateReview applies a partial update. Only text and rating are recognized.
func (f *Facade) UpdateReview(ctx context.Context, id string, fields domain.Fields) (*domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.reviews.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("review", id)
		}
		return nil, err
	}

	review, _ := f.reviews.Get(ctx, id)
	f.logger.Info().Str("review_id", id).Msg("review updated")
	return review, nil
}

// DeleteReview removes a review and its id from the place and the author.
// Deleting a missing id is a no-op.
func (f *Facade) DeleteReview(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews.Get(ctx, id)
	if !ok {
		return nil
	}

	f.reviews.Delete(ctx, id)
	f.updateBackReference(detach(ctx), review, func(p *domain.Place) { p.RemoveReview(id) }, func(u *domain.User) { u.RemoveReview(id) })

	f.logger.Info().Str("review_id", id).Msg("review deleted")
	return nil
}

func (f *Facade) updateBackReference(ctx context.Context, review *domain.Review, onPlace func(*domain.Place), onUser func(*domain.User)) {
	err := f.places.UpdateWith(ctx, review.PlaceID, func(p *domain.Place) error {
		onPlace(p)
		return nil
	})
	if err != nil {
		f.logger.Warn().Err(err).Str("review_id", review.ID).Str("place_id", review.PlaceID).Msg("failed to update place reviews")
	}

	err = f.users.UpdateWith(ctx, review.UserID, func(u *domain.User) error {
		onUser(u)
		return nil
	})
	if err != nil {
		f.logger.Warn().Err(err).Str("review_id", review.ID).Str("user_id", review.UserID).Msg("failed to update user reviews")
	}
}
