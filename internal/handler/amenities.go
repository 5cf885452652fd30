package handler

import (
	"net/http"

	"github.com/prn-tf/hbnb/internal/service"
)

type createAmenityRequest struct {
	Name *string `json:"name" validate:"required"`
}

// CreateAmenity handles POST /api/v1/amenities. Amenities are shared, so
// only admins manage them when auth is enabled.
func (h *Handler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, ""); err != nil {
		h.respondError(w, r, err)
		return
	}

	var req createAmenityRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.respondError(w, r, err)
		return
	}

	amenity, err := h.facade.CreateAmenity(r.Context(), service.CreateAmenityInput{Name: *req.Name})
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, amenity.Record())
}

// ListAmenities handles GET /api/v1/amenities.
func (h *Handler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, records(h.facade.ListAmenities(r.Context())))
}

// GetAmenity handles GET /api/v1/amenities/{id}.
func (h *Handler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	amenity, err := h.facade.GetAmenity(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, amenity.Record())
}

// UpdateAmenity handles PUT /api/v1/amenities/{id}.
func (h *Handler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, ""); err != nil {
		h.respondError(w, r, err)
		return
	}

	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	amenity, err := h.facade.UpdateAmenity(r.Context(), idParam(r), fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, amenity.Record())
}

// DeleteAmenity handles DELETE /api/v1/amenities/{id}.
func (h *Handler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, ""); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.facade.DeleteAmenity(r.Context(), idParam(r)); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
