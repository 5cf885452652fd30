// Package auth provides JWT bearer authentication for HBnB.
package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingToken indicates the Authorization header is absent.
	ErrMissingToken = errors.New("authorization header required")

	// ErrInvalidAuthorizationHeader indicates the Authorization header is not "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrInvalidToken indicates the token is malformed or its signature does not match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrWrongTokenType indicates a refresh token was used as an access token or vice versa.
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrWeakSecret indicates the signing secret is too short.
	ErrWeakSecret = errors.New("jwt secret must be at least 32 characters")
)
