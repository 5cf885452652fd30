package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/places/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/places/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	require.Contains(t, body, `hbnb_http_requests_total{method="GET",route="/places/{id}",status="404"} 3`)
	require.Contains(t, body, "hbnb_http_requests_in_flight 0")
}

func TestHandler_ExposesEntityCounts(t *testing.T) {
	m := NewMetrics()
	m.RegisterEntityCounts(func() map[string]int {
		return map[string]int{"users": 2, "places": 1}
	})
	m.RecordLogin(true)
	m.RecordLogin(false)
	m.RecordLogin(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.Contains(body, `hbnb_entities{type="users"} 2`), body)
	require.Contains(t, body, `hbnb_entities{type="places"} 1`)
	require.Contains(t, body, `hbnb_auth_login_attempts_total{result="failure"} 2`)
}
