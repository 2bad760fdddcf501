package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsRouter(m *Metrics) *chi.Mux {
	router := chi.NewRouter()
	router.Use(m.Middleware())
	router.Get("/metrics", m.Handler().ServeHTTP)
	return router
}

func scrape(t *testing.T, router *chi.Mux) string {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsRecordRequests(t *testing.T) {
	metrics := NewMetrics()
	router := metricsRouter(metrics)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := scrape(t, router)
	assert.Contains(t, body, "assetflow_http_requests_total")
	assert.Contains(t, body, "assetflow_http_request_duration_seconds")
	assert.Contains(t, body, `path="/health"`)
}

func TestMetricsUseRoutePattern(t *testing.T) {
	metrics := NewMetrics()
	router := metricsRouter(metrics)
	router.Get("/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("asset"))
	})

	for _, path := range []string{"/assets/7", "/assets/9"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	// both requests land in one series under the pattern
	body := scrape(t, router)
	assert.Contains(t, body, `path="/assets/{id}"`)
	assert.NotContains(t, body, `path="/assets/7"`)
}

func TestMetricsRecordStatusLabel(t *testing.T) {
	metrics := NewMetrics()
	router := metricsRouter(metrics)
	router.Get("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/missing", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	body := scrape(t, router)
	assert.Contains(t, body, `status="Not Found"`)
}
