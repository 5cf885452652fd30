package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hbnb/internal/auth"
	"github.com/prn-tf/hbnb/internal/metrics"
)

// APIPrefix is the path prefix of the versioned API.
const APIPrefix = "/api/v1"

// Router handles HTTP routing for the HBnB API.
type Router struct {
	handler        *Handler
	metrics        *metrics.Metrics
	metricsPath    string
	authMiddleware func(http.Handler) http.Handler
	logger         zerolog.Logger
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	Handler *Handler

	// Metrics is optional. When set, requests are instrumented and the
	// registry is served on MetricsPath.
	Metrics     *metrics.Metrics
	MetricsPath string

	// AuthMiddleware is optional. It wraps every /api/v1 route except
	// login and refresh.
	AuthMiddleware func(http.Handler) http.Handler

	Logger zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	metricsPath := config.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	return &Router{
		handler:        config.Handler,
		metrics:        config.Metrics,
		metricsPath:    metricsPath,
		authMiddleware: config.AuthMiddleware,
		logger:         config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	h := rt.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLog(rt.logger))
	r.Use(middleware.Recoverer)
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: "resource not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})

	// Health check (no auth)
	r.Get("/health", rt.handleHealth)
	if rt.metrics != nil {
		r.Method(http.MethodGet, rt.metricsPath, rt.metrics.Handler())
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.Post("/auth/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			if rt.authMiddleware != nil {
				r.Use(rt.authMiddleware)
			}

			r.Get("/auth/me", h.Me)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", h.CreateUser)
				r.Get("/", h.ListUsers)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
				r.Get("/{id}/places", h.ListUserPlaces)
				r.Get("/{id}/reviews", h.ListUserReviews)
			})

			r.Route("/amenities", func(r chi.Router) {
				r.Post("/", h.CreateAmenity)
				r.Get("/", h.ListAmenities)
				r.Get("/{id}", h.GetAmenity)
				r.Put("/{id}", h.UpdateAmenity)
				r.Delete("/{id}", h.DeleteAmenity)
			})

			r.Route("/places", func(r chi.Router) {
				r.Post("/", h.CreatePlace)
				r.Get("/", h.ListPlaces)
				r.Get("/{id}", h.GetPlace)
				r.Put("/{id}", h.UpdatePlace)
				r.Delete("/{id}", h.DeletePlace)
				r.Get("/{id}/reviews", h.ListPlaceReviews)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", h.CreateReview)
				r.Get("/", h.ListReviews)
				r.Get("/{id}", h.GetReview)
				r.Put("/{id}", h.UpdateReview)
				r.Delete("/{id}", h.DeleteReview)
			})
		})
	})

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateAuthMiddleware creates the bearer token middleware for the API.
// Registration stays open so that a first user can sign up.
func CreateAuthMiddleware(validator auth.AccessTokenValidator) func(http.Handler) http.Handler {
	config := auth.DefaultConfig()
	config.SkipPaths = append(config.SkipPaths, APIPrefix+"/users")
	return auth.Middleware(validator, config)
}
