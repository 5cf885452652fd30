package handler

import (
	"errors"
	"net/http"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/service"
)

type createPlaceRequest struct {
	Title       *string  `json:"title" validate:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required"`
	Longitude   *float64 `json:"longitude" validate:"required"`
	// OwnerID defaults to the authenticated caller.
	OwnerID   string   `json:"owner_id"`
	Amenities []string `json:"amenities"`
}

// ownerSummary is the owner as embedded in place details.
type ownerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// amenitySummary is an amenity as embedded in place details.
type amenitySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreatePlace handles POST /api/v1/places.
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var req createPlaceRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.respondError(w, r, err)
		return
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID, _ = callerID(r)
	}
	if ownerID == "" {
		h.respondError(w, r, &domain.FieldError{Field: "owner_id", Kind: domain.ErrConstraintViolation, Message: "is required"})
		return
	}
	if err := h.authorize(r, ownerID); err != nil {
		h.respondError(w, r, err)
		return
	}

	place, err := h.facade.CreatePlace(r.Context(), service.CreatePlaceInput{
		Title:       *req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		OwnerID:     ownerID,
		Amenities:   req.Amenities,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, place.Record())
}

// ListPlaces handles GET /api/v1/places.
func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, records(h.facade.ListPlaces(r.Context())))
}

// GetPlace handles GET /api/v1/places/{id}. The owner, amenities and reviews
// are embedded instead of listed by id.
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	details, err := h.facade.GetPlaceDetails(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := details.Place.Record()
	if owner := details.Owner; owner != nil {
		resp["owner"] = ownerSummary{
			ID:        owner.ID,
			FirstName: owner.FirstName,
			LastName:  owner.LastName,
			Email:     owner.Email,
		}
	} else {
		resp["owner"] = nil
	}

	amenities := make([]amenitySummary, 0, len(details.Amenities))
	for _, a := range details.Amenities {
		amenities = append(amenities, amenitySummary{ID: a.ID, Name: a.Name})
	}
	resp["amenities"] = amenities
	resp["reviews"] = records(details.Reviews)

	respondJSON(w, http.StatusOK, resp)
}

// UpdatePlace handles PUT /api/v1/places/{id}.
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.facade.GetPlace(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.authorize(r, place.OwnerID); err != nil {
		h.respondError(w, r, err)
		return
	}

	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	// Transferring ownership is an admin action
	if _, ok := fields["owner_id"]; ok && h.authEnabled() && !isAdmin(r) {
		h.respondError(w, r, errForbidden)
		return
	}

	updated, err := h.facade.UpdatePlace(r.Context(), place.ID, fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated.Record())
}

// DeletePlace handles DELETE /api/v1/places/{id}.
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	place, err := h.facade.GetPlace(r.Context(), id)
	switch {
	case err == nil:
		if err := h.authorize(r, place.OwnerID); err != nil {
			h.respondError(w, r, err)
			return
		}
	case !errors.Is(err, domain.ErrNotFound):
		h.respondError(w, r, err)
		return
	}

	if err := h.facade.DeletePlace(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPlaceReviews handles GET /api/v1/places/{id}/reviews.
func (h *Handler) ListPlaceReviews(w http.ResponseWriter, r *http.Request) {
	place, err := h.facade.GetPlace(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records(h.facade.GetReviewsByPlace(r.Context(), place.ID)))
}
