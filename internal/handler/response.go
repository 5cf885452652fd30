package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/prn-tf/hbnb/internal/domain"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// requestError is a transport-level failure (bad JSON, oversized body, missing auth).
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string {
	return e.message
}

var (
	errEmptyBody       = &requestError{status: http.StatusBadRequest, message: "request body is empty"}
	errMalformedJSON   = &requestError{status: http.StatusBadRequest, message: "malformed JSON body"}
	errBodyTooLarge    = &requestError{status: http.StatusRequestEntityTooLarge, message: "request body too large"}
	errUnauthenticated = &requestError{status: http.StatusUnauthorized, message: "authentication required"}
	errForbidden       = &requestError{status: http.StatusForbidden, message: "not allowed to modify this resource"}
	errAuthDisabled    = &requestError{status: http.StatusNotFound, message: "authentication is not configured"}
)

// respondJSON writes a JSON response with the given status code and data.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrReferenceNotFound),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStillReferenced):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON error. Client errors are logged at debug,
// server errors at error with the detail kept out of the response.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Error:     err.Error(),
		RequestID: middleware.GetReqID(r.Context()),
	}

	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		resp.Field = fieldErr.Field
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", resp.RequestID).
			Msg("request failed")
		resp.Error = http.StatusText(status)
	} else {
		h.logger.Debug().
			Err(err).
			Int("status", status).
			Str("path", r.URL.Path).
			Msg("request rejected")
	}

	respondJSON(w, status, resp)
}
