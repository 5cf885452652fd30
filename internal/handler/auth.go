package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/prn-tf/hbnb/internal/auth"
	"github.com/prn-tf/hbnb/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenResponse is returned by the refresh endpoint.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.authEnabled() {
		h.respondError(w, r, errAuthDisabled)
		return
	}

	var req loginRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}
	if err := validateRequest(&req); err != nil {
		h.respondError(w, r, err)
		return
	}

	user, err := h.facade.Authenticate(r.Context(), req.Email, req.Password)
	h.recordLogin(err == nil)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	pair, err := h.tokens.GenerateTokenPair(user.ID, user.IsAdmin)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	respondJSON(w, http.StatusOK, pair)
}

// Refresh handles POST /api/v1/auth/refresh. The refresh token is read from
// the body or, when the body is empty, from the Authorization header.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !h.authEnabled() {
		h.respondError(w, r, errAuthDisabled)
		return
	}

	var req refreshRequest
	if err := h.decodeJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		h.respondError(w, r, err)
		return
	}
	token := req.RefreshToken
	if token == "" {
		scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			token = strings.TrimSpace(value)
		}
	}
	if token == "" {
		h.respondError(w, r, &domain.FieldError{Field: "refresh_token", Kind: domain.ErrConstraintViolation, Message: "is required"})
		return
	}

	claims, err := h.tokens.ValidateRefreshToken(token)
	if err != nil {
		h.respondError(w, r, &requestError{status: http.StatusUnauthorized, message: err.Error()})
		return
	}

	// The user may have been deleted or demoted since the refresh token was issued
	user, err := h.facade.GetUser(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.respondError(w, r, &requestError{status: http.StatusUnauthorized, message: auth.ErrInvalidToken.Error()})
			return
		}
		h.respondError(w, r, err)
		return
	}

	access, err := h.tokens.GenerateAccessToken(user.ID, user.IsAdmin)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, AccessTokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokens.AccessTokenTTL().Seconds()),
	})
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	if !h.authEnabled() {
		h.respondError(w, r, errAuthDisabled)
		return
	}

	id, ok := callerID(r)
	if !ok {
		h.respondError(w, r, errUnauthenticated)
		return
	}

	user, err := h.facade.GetUser(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user.Record())
}

func (h *Handler) recordLogin(success bool) {
	if h.metrics != nil {
		h.metrics.RecordLogin(success)
	}
}
