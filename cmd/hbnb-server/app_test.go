package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prn-tf/hbnb/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: time.Second,
			MaxBodySize:     1 << 20,
		},
		Auth: config.AuthConfig{
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			BcryptCost:      4,
		},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func TestNewApplication_ServesRoutes(t *testing.T) {
	app, err := newApplication(testConfig(), zerolog.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/amenities", strings.NewReader(`{"name":"Wi-Fi"}`)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hbnb_entities{type="amenities"} 1`)
}

func TestNewApplication_Auth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	cfg.Auth.JWTSecret = "short"

	_, err := newApplication(cfg, zerolog.Nop())
	require.Error(t, err)

	cfg.Auth.JWTSecret = strings.Repeat("s", 40)
	app, err := newApplication(cfg, zerolog.Nop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/amenities", strings.NewReader(`{"name":"Wi-Fi"}`)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	app, err := newApplication(testConfig(), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
