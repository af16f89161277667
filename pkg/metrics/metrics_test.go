package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New("users")

	m.ObserveRequest(http.MethodGet, "/api/users/:id", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/users/:id", http.StatusOK, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/users/:id", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/users/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/users/:id", "404")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New("users")
	b := New("users")

	a.HTTPRequestsInProgress.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.HTTPRequestsInProgress))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.HTTPRequestsInProgress))
}

func TestHandler(t *testing.T) {
	m := New("users")
	m.ObserveRequest(http.MethodPost, "/api/users", http.StatusCreated, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `users_http_requests_total{method="POST",path="/api/users",status="201"} 1`)
	assert.Contains(t, body, "users_http_request_duration_seconds_bucket")
	assert.Contains(t, body, "go_goroutines")
}
