package auth

import (
	"time"
)

// =============================================================================
// Token Types
// =============================================================================

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	// TokenTypeAccess authorizes API calls.
	TokenTypeAccess TokenType = "access"

	// TokenTypeRefresh can only be exchanged for a new access token.
	TokenTypeRefresh TokenType = "refresh"
)

// MinSecretLength is the shortest accepted HS256 signing secret.
const MinSecretLength = 32

// =============================================================================
// Claims
// =============================================================================

// Claims is the validated content of a token.
type Claims struct {
	// UserID is the id of the user the token was issued for.
	UserID string

	// IsAdmin mirrors the user's admin flag at issue time.
	IsAdmin bool

	// TokenType is "access" or "refresh".
	TokenType TokenType

	// ID is the unique token id (jti).
	ID string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
