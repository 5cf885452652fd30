package handler

import (
	"net/http"

	"github.com/prn-tf/hbnb/internal/domain"
	"github.com/prn-tf/hbnb/internal/service"
)

type createUserRequest struct {
	FirstName *string `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name" validate:"required"`
	Email     *string `json:"email" validate:"required"`
	Password  string  `json:"password"`
	IsAdmin   bool    `json:"is_admin"`
}

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.respondError(w, r, err)
		return
	}

	// Only admins hand out admin rights once tokens are in play
	if req.IsAdmin && h.authEnabled() && !isAdmin(r) {
		h.respondError(w, r, errForbidden)
		return
	}

	user, err := h.facade.CreateUser(r.Context(), service.CreateUserInput{
		FirstName: *req.FirstName,
		LastName:  *req.LastName,
		Email:     *req.Email,
		Password:  req.Password,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, user.Record())
}

// ListUsers handles GET /api/v1/users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, records(h.facade.ListUsers(r.Context())))
}

// GetUser handles GET /api/v1/users/{id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.facade.GetUser(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Record())
}

// UpdateUser handles PUT /api/v1/users/{id}.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.authorize(r, id); err != nil {
		h.respondError(w, r, err)
		return
	}

	fields, err := h.decodeFields(w, r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if _, ok := fields["is_admin"]; ok && h.authEnabled() && !isAdmin(r) {
		h.respondError(w, r, errForbidden)
		return
	}

	user, err := h.facade.UpdateUser(r.Context(), id, fields)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Record())
}

// DeleteUser handles DELETE /api/v1/users/{id}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := h.authorize(r, id); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := h.facade.DeleteUser(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUserPlaces handles GET /api/v1/users/{id}/places.
func (h *Handler) ListUserPlaces(w http.ResponseWriter, r *http.Request) {
	user, err := h.facade.GetUser(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records(h.facade.GetPlacesByOwner(r.Context(), user.ID)))
}

// ListUserReviews handles GET /api/v1/users/{id}/reviews.
func (h *Handler) ListUserReviews(w http.ResponseWriter, r *http.Request) {
	user, err := h.facade.GetUser(r.Context(), idParam(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records(h.facade.GetReviewsByUser(r.Context(), user.ID)))
}

// records converts entities to their serialized form. The result is never nil
// so empty collections encode as [].
func records[T interface{ Record() domain.Record }](items []T) []domain.Record {
	out := make([]domain.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item.Record())
	}
	return out
}
