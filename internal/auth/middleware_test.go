package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) ValidateAccessToken(token string) (*Claims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*Claims)
	return claims, args.Error(1)
}

func okHandler(t *testing.T, wantClaims bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFromContext(r.Context())
		require.Equal(t, wantClaims, ok)
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		setup      func(*mockValidator)
		wantClaims bool
		wantStatus int
	}{
		{
			name:       "valid token",
			method:     http.MethodPost,
			path:       "/api/v1/places",
			header:     "Bearer good",
			setup:      func(m *mockValidator) { m.On("ValidateAccessToken", "good").Return(&Claims{UserID: "u1"}, nil) },
			wantClaims: true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "lowercase scheme",
			method:     http.MethodPut,
			path:       "/api/v1/places/1",
			header:     "bearer good",
			setup:      func(m *mockValidator) { m.On("ValidateAccessToken", "good").Return(&Claims{UserID: "u1"}, nil) },
			wantClaims: true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "missing header on write",
			method:     http.MethodPost,
			path:       "/api/v1/places",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "anonymous read",
			method:     http.MethodGet,
			path:       "/api/v1/places",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "skip path",
			method:     http.MethodPost,
			path:       "/health",
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "skip path picks up valid token",
			method:     http.MethodPost,
			path:       "/health",
			header:     "Bearer good",
			setup:      func(m *mockValidator) { m.On("ValidateAccessToken", "good").Return(&Claims{UserID: "u1", IsAdmin: true}, nil) },
			wantClaims: true,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "skip path ignores bad token",
			method:     http.MethodPost,
			path:       "/health",
			header:     "Bearer stale",
			setup:      func(m *mockValidator) { m.On("ValidateAccessToken", "stale").Return(nil, ErrInvalidToken) },
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "malformed header",
			method:     http.MethodPost,
			path:       "/api/v1/places",
			header:     "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			method:     http.MethodDelete,
			path:       "/api/v1/reviews/1",
			header:     "Bearer expired",
			setup:      func(m *mockValidator) { m.On("ValidateAccessToken", "expired").Return(nil, ErrExpiredToken) },
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := &mockValidator{}
			if tt.setup != nil {
				tt.setup(validator)
			}

			handler := Middleware(validator, DefaultConfig())(okHandler(t, tt.wantClaims))
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				require.Contains(t, rec.Body.String(), `"error"`)
				require.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
			}
			validator.AssertExpectations(t)
		})
	}
}
