package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		Secret:          testSecret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	}, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService(TokenConfig{Secret: "short", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour}, zerolog.Nop())
	require.ErrorIs(t, err, ErrWeakSecret)

	_, err = NewTokenService(TokenConfig{Secret: testSecret}, zerolog.Nop())
	require.Error(t, err)
}

func TestTokenService_AccessToken(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.GenerateAccessToken("user-1", true)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.True(t, claims.IsAdmin)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, claims.IssuedAt.Add(15*time.Minute), claims.ExpiresAt, time.Second)
}

func TestTokenService_WrongType(t *testing.T) {
	svc := newTestTokenService(t)

	refresh, err := svc.GenerateRefreshToken("user-1", false)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(refresh)
	require.ErrorIs(t, err, ErrWrongTokenType)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, TokenTypeRefresh, claims.TokenType)

	access, err := svc.GenerateAccessToken("user-1", false)
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	require.ErrorIs(t, err, ErrWrongTokenType)
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService(t)
	svc.timeFunc = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := svc.GenerateAccessToken("user-1", false)
	require.NoError(t, err)

	svc.timeFunc = time.Now
	_, err = svc.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.ValidateAccessToken("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = svc.ValidateAccessToken("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Signed with another key.
	other, err := NewTokenService(TokenConfig{
		Secret:          strings.Repeat("z", 32),
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}, zerolog.Nop())
	require.NoError(t, err)
	forged, err := other.GenerateAccessToken("user-1", true)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(forged)
	require.ErrorIs(t, err, ErrInvalidToken)

	// "none" algorithm.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		UserID:    "user-1",
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_GenerateTokenPair(t *testing.T) {
	svc := newTestTokenService(t)

	pair, err := svc.GenerateTokenPair("user-1", false)
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, int64(900), pair.ExpiresIn)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
}
