package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/routes"
	"github.com/your-org/collectibles-storefront/internal/pkg/logger"
	"github.com/your-org/collectibles-storefront/internal/pkg/metrics"
)

type stubCheck struct {
	err error
}

func (s stubCheck) Health(context.Context) error {
	return s.err
}

func newTestServer(t *testing.T, checks map[string]HealthChecker) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "collectibles-storefront", Version: "1.0.0", Environment: "test"},
		JWT: config.JWTConfig{Secret: "server-test-secret-that-is-long-enough"},
	}
	registry := prometheus.NewRegistry()

	return NewServer(cfg, Options{
		Handlers: &routes.Handlers{},
		Metrics:  metrics.New(registry),
		Gatherer: registry,
		Checks:   checks,
	}, logger.Discard())
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	healthy := newTestServer(t, map[string]HealthChecker{"database": stubCheck{}, "redis": stubCheck{}})
	w := get(healthy, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))

	unhealthy := newTestServer(t, map[string]HealthChecker{"redis": stubCheck{err: errors.New("connection refused")}})
	w = get(unhealthy, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "redis ping failed")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	require.Equal(t, http.StatusOK, get(s, "/ready").Code)

	w := get(s, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `storefront_http_requests_total{method="GET",route="/ready",status="200"} 1`)
}

func TestStopWithoutStart(t *testing.T) {
	s := newTestServer(t, nil)
	assert.NoError(t, s.Stop(context.Background()))
}
