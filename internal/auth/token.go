package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenConfig contains configuration for the token service.
type TokenConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// ClockSkew is the leeway applied to exp/iat checks.
	ClockSkew time.Duration
}

// tokenClaims is the JWT payload.
type tokenClaims struct {
	UserID    string    `json:"uid"`
	IsAdmin   bool      `json:"is_admin"`
	TokenType TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 tokens.
type TokenService struct {
	signingKey      []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	clockSkew       time.Duration
	timeFunc        func() time.Time
	logger          zerolog.Logger
}

// NewTokenService creates a TokenService. The secret must be at least 32 characters.
func NewTokenService(cfg TokenConfig, logger zerolog.Logger) (*TokenService, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	if cfg.AccessTokenTTL <= 0 || cfg.RefreshTokenTTL <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return &TokenService{
		signingKey:      []byte(cfg.Secret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		clockSkew:       cfg.ClockSkew,
		timeFunc:        time.Now,
		logger:          logger.With().Str("component", "token").Logger(),
	}, nil
}

// AccessTokenTTL returns the access token lifetime.
func (s *TokenService) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// GenerateAccessToken issues an access token carrying the admin flag.
func (s *TokenService) GenerateAccessToken(userID string, isAdmin bool) (string, error) {
	return s.generate(userID, isAdmin, TokenTypeAccess, s.accessTokenTTL)
}

// GenerateRefreshToken issues a refresh token.
func (s *TokenService) GenerateRefreshToken(userID string, isAdmin bool) (string, error) {
	return s.generate(userID, isAdmin, TokenTypeRefresh, s.refreshTokenTTL)
}

// GenerateTokenPair issues an access and a refresh token together.
func (s *TokenService) GenerateTokenPair(userID string, isAdmin bool) (*TokenPair, error) {
	access, err := s.GenerateAccessToken(userID, isAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.GenerateRefreshToken(userID, isAdmin)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

// ValidateAccessToken validates a token and requires it to be an access token.
func (s *TokenService) ValidateAccessToken(token string) (*Claims, error) {
	return s.validate(token, TokenTypeAccess)
}

// ValidateRefreshToken validates a token and requires it to be a refresh token.
func (s *TokenService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.validate(token, TokenTypeRefresh)
}

func (s *TokenService) generate(userID string, isAdmin bool, tokenType TokenType, ttl time.Duration) (string, error) {
	now := s.timeFunc()
	claims := tokenClaims{
		UserID:    userID,
		IsAdmin:   isAdmin,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("token_type", string(tokenType)).Msg("failed to sign token")
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *TokenService) validate(tokenString string, want TokenType) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Debug().Err(err).Str("token_type", string(want)).Msg("token expired")
			return nil, ErrExpiredToken
		}
		s.logger.Debug().Err(err).Str("token_type", string(want)).Msg("token rejected")
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want {
		s.logger.Debug().
			Str("expected", string(want)).
			Str("actual", string(claims.TokenType)).
			Msg("wrong token type")
		return nil, ErrWrongTokenType
	}

	out := &Claims{
		UserID:    claims.UserID,
		IsAdmin:   claims.IsAdmin,
		TokenType: claims.TokenType,
		ID:        claims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
