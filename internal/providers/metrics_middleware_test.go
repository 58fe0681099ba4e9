package providers

import (
	"medreminder/internal/structures"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(_ string, _ time.Duration)     { m.durationCalls++ }
func (m *mockMetrics) IncCacheHits()                                        {}
func (m *mockMetrics) IncCacheMisses()                                      {}
func (m *mockMetrics) IncCachePurges()                                      {}
func (m *mockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (m *mockMetrics) SetMedicationsTotal(_ int)                            {}
func (m *mockMetrics) SetPendingTimers(_ int)                               {}
func (m *mockMetrics) IncRebuilds()                                         {}
func (m *mockMetrics) IncFirings()                                          {}
func (m *mockMetrics) IncNotifications(_ string)                            {}

var middlewareRoutes = []structures.Route{
	{Url: "/medications"},
	{Url: "/medication"},
	{Url: "/schedule"},
}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, middlewareRoutes, handler)

	req := httptest.NewRequest(http.MethodPost, "/medications", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "POST /medications", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_QueryNotInLabel(t *testing.T) {
	metrics := &mockMetrics{}
	mw := MetricsMiddleware(metrics, middlewareRoutes, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/medication?id=2f1c", nil)
	mw.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "DELETE /medication", metrics.requestEndpoint)
}

func TestMetricsMiddleware_UnknownPathsShareLabel(t *testing.T) {
	metrics := &mockMetrics{}
	mw := MetricsMiddleware(metrics, middlewareRoutes, http.NotFoundHandler())

	for _, path := range []string{"/wp-login.php", "/medications/extra", "/a/b/c"} {
		mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, unmatchedEndpoint, metrics.requestEndpoint)
		assert.Equal(t, http.StatusNotFound, metrics.requestStatus)
	}
	assert.Equal(t, 3, metrics.requestCalls)

	mw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("BREW", "/medications", nil))
	assert.Equal(t, unmatchedEndpoint, metrics.requestEndpoint)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, middlewareRoutes, handler)

	req := httptest.NewRequest(http.MethodGet, "/schedule", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
