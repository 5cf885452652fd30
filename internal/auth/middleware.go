package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// AccessTokenValidator validates bearer access tokens.
type AccessTokenValidator interface {
	ValidateAccessToken(token string) (*Claims, error)
}

// Config contains configuration for the auth middleware.
type Config struct {
	// AllowAnonymousReads lets GET and HEAD requests through without a token.
	AllowAnonymousReads bool

	// SkipPaths are paths that skip authentication.
	SkipPaths []string
}

// DefaultConfig returns the default auth configuration.
func DefaultConfig() Config {
	return Config{
		AllowAnonymousReads: true,
		SkipPaths:           []string{"/health", "/metrics"},
	}
}

type contextKey struct{}

var claimsKey = contextKey{}

// WithClaims stores claims in ctx.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims of an authenticated request.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// isReadOperation checks if the HTTP method is a read operation.
func isReadOperation(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// Middleware creates an authentication middleware.
func Middleware(validator AccessTokenValidator, config Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skipped paths never reject, but still pick up a valid token
			for _, path := range config.SkipPaths {
				if r.URL.Path == path {
					next.ServeHTTP(w, withOptionalClaims(r, validator))
					return
				}
			}

			header := r.Header.Get("Authorization")
			if header == "" && config.AllowAnonymousReads && isReadOperation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			token, err := bearerToken(header)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				writeUnauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// withOptionalClaims attaches claims when the request carries a valid access token.
func withOptionalClaims(r *http.Request, validator AccessTokenValidator) *http.Request {
	token, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return r
	}
	claims, err := validator.ValidateAccessToken(token)
	if err != nil {
		return r
	}
	return r.WithContext(WithClaims(r.Context(), claims))
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidAuthorizationHeader
	}
	return strings.TrimSpace(token), nil
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	msg := ErrInvalidToken.Error()
	switch {
	case errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidAuthorizationHeader),
		errors.Is(err, ErrExpiredToken),
		errors.Is(err, ErrWrongTokenType):
		msg = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="hbnb"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
