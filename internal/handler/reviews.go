package handler

import (
	"errors"
	"net/http"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/service"
)

type createReviewRequest struct {
	Text *string `json:"text" validate:"required"`
	// Rating is checked by domain.ValidateRating so 4.5 and "4" are type errors.
	Rating  any    `json:"rating"`
	PlaceID string `json:"place_id" validate:"required"`
	// UserID defaults to the authenticated caller.
	UserID string `json:"user_id"`
}

// CreateReview handles POST /api/v1/reviews.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if req.Rating == nil {
		h.respondError(w, r, &domain.FieldError{Field: "rating", Kind: domain.ErrConstraintViolation, Message: "is required"})
		return
	}
	rating, err := domain.ValidateRating(req.Rating)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	userID := req.UserID
	if userID == "" {
		userID, _ = callerID(r)
	}
	if userID == "" {
		h.respondError(w, r, &domain.FieldError{Field: "user_id", Kind: domain.ErrConstraintViolation, Message: "is required"})
		return
	}
	if err := h.authorize(r, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	review, err := h.facade.CreateReview(r.Context(), service.CreateReviewInput{
		Text:    *req.Text,
		Rating:  rating,
		PlaceID: req.PlaceID,
		UserID:  userID,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, review.Record())
}

// ListReviews handles GET /api/v1/reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, records(h.facade.ListReviews(r.Context())))
}

// GetReview handles GET /api/v1/reviews/{id}.
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, review.Record())
}

// UpdateReview handles PUT /api/v1/reviews/{id}.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.facade.GetReview(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.authorize(r, review.UserID); err != nil {
		h.respondError(w, r, err)
		return
	}

	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	updated, err := h.facade.UpdateReview(r.Context(), review.ID, fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated.Record())
}

// DeleteReview handles DELETE /api/v1/reviews/{id}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	review, err := h.facade.GetReview(r.Context(), id)
	switch {
	case err == nil:
		if err := h.authorize(r, review.UserID); err != nil {
			h.respondError(w, r, err)
			return
		}
	case !errors.Is(err, domain.ErrNotFound):
		h.respondError(w, r, err)
		return
	}

	if err := h.facade.DeleteReview(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
