// Package handler provides HTTP handlers for the HBnB API.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hbnb/internal/auth"
	"github.com/prn-tf/hbnb/internal/metrics"
	"github.com/prn-tf/hbnb/internal/service"
)

// DefaultMaxBodySize caps request bodies when no limit is configured.
const DefaultMaxBodySize = 1 << 20

// TokenIssuer issues and refreshes bearer tokens.
type TokenIssuer interface {
	GenerateTokenPair(userID string, isAdmin bool) (*auth.TokenPair, error)
	GenerateAccessToken(userID string, isAdmin bool) (string, error)
	ValidateRefreshToken(token string) (*auth.Claims, error)
	ValidateAccessToken(token string) (*auth.Claims, error)
	AccessTokenTTL() time.Duration
}

var _ TokenIssuer = (*auth.TokenService)(nil)

// Handler serves the /api/v1 resources on top of the facade.
type Handler struct {
	facade      *service.Facade
	tokens      TokenIssuer
	metrics     *metrics.Metrics
	maxBodySize int64
	logger      zerolog.Logger
}

// HandlerConfig contains the dependencies of a Handler.
type HandlerConfig struct {
	Facade *service.Facade

	// Tokens is optional. Without it the /auth routes answer 404.
	Tokens TokenIssuer

	// Metrics is optional.
	Metrics *metrics.Metrics

	MaxBodySize int64
	Logger      zerolog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}
	return &Handler{
		facade:      cfg.Facade,
		tokens:      cfg.Tokens,
		metrics:     cfg.Metrics,
		maxBodySize: maxBody,
		logger:      cfg.Logger.With().Str("handler", "api").Logger(),
	}
}

// idParam returns the {id} URL parameter.
func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// callerID returns the authenticated user id, if any.
func callerID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// authEnabled reports whether requests carry verified tokens.
func (h *Handler) authEnabled() bool {
	return h.tokens != nil
}

// authorize checks that the caller may modify a resource owned by ownerID.
// Admins may modify anything. Without auth every caller is allowed.
func (h *Handler) authorize(r *http.Request, ownerID string) error {
	if !h.authEnabled() {
		return nil
	}
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return errUnauthenticated
	}
	if claims.IsAdmin || claims.UserID == ownerID {
		return nil
	}
	return errForbidden
}

// isAdmin reports whether the caller holds an admin token.
func isAdmin(r *http.Request) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	return ok && claims.IsAdmin
}
