package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/prn-tf/hbnb/internal/auth"
	"github.com/prn-tf/hbnb/internal/config"
	"github.com/prn-tf/hbnb/internal/handler"
	"github.com/prn-tf/hbnb/internal/metrics"
	"github.com/prn-tf/hbnb/internal/pkg/crypto"
	"github.com/prn-tf/hbnb/internal/repository/memory"
	"github.com/prn-tf/hbnb/internal/service"
)

// application holds the wired server components.
type application struct {
	cfg     *config.Config
	facade  *service.Facade
	metrics *metrics.Metrics
	server  *http.Server
	logger  zerolog.Logger
}

// newApplication builds repositories, the facade, auth and the HTTP server from cfg.
func newApplication(cfg *config.Config, logger zerolog.Logger) (*application, error) {
	repos := memory.NewRepositories()
	hasher := crypto.NewBcryptHasher(cfg.Auth.BcryptCost)
	facade := service.NewFacade(repos, hasher, logger)

	app := &application{
		cfg:    cfg,
		facade: facade,
		logger: logger.With().Str("component", "server").Logger(),
	}

	handlerCfg := handler.HandlerConfig{
		Facade:      facade,
		MaxBodySize: cfg.Server.MaxBodySize,
		Logger:      logger,
	}
	routerCfg := handler.RouterConfig{
		MetricsPath: cfg.Metrics.Path,
		Logger:      logger,
	}

	if cfg.Metrics.Enabled {
		app.metrics = metrics.NewMetrics()
		app.metrics.RegisterEntityCounts(func() map[string]int {
			stats := facade.Stats(context.Background())
			return map[string]int{
				"users":     stats.Users,
				"places":    stats.Places,
				"amenities": stats.Amenities,
				"reviews":   stats.Reviews,
			}
		})
		handlerCfg.Metrics = app.metrics
		routerCfg.Metrics = app.metrics
	}

	if cfg.Auth.Enabled {
		tokens, err := auth.NewTokenService(auth.TokenConfig{
			Secret:          cfg.Auth.JWTSecret,
			AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
			RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
			ClockSkew:       cfg.Auth.ClockSkew,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create token service: %w", err)
		}
		handlerCfg.Tokens = tokens
		routerCfg.AuthMiddleware = handler.CreateAuthMiddleware(tokens)
	} else {
		app.logger.Warn().Msg("authentication is disabled; every API route is open")
	}

	routerCfg.Handler = handler.NewHandler(handlerCfg)
	router := handler.NewRouter(routerCfg)

	app.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// run serves until ctx is cancelled, then shuts down gracefully.
func (a *application) run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", a.server.Addr).
			Bool("auth", a.cfg.Auth.Enabled).
			Bool("metrics", a.cfg.Metrics.Enabled).
			Msg("HTTP server listening")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.logger.Error().Err(err).Msg("HTTP server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	stats := a.facade.Stats(shutdownCtx)
	a.logger.Info().
		Int("users", stats.Users).
		Int("places", stats.Places).
		Int("amenities", stats.Amenities).
		Int("reviews", stats.Reviews).
		Msg("server stopped")
	return nil
}
