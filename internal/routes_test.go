package internal

import (
	"medreminder/internal/controllers"
	"medreminder/internal/notify"
	"medreminder/internal/services"
	"medreminder/internal/storage"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	conf := &structures.Config{History: structures.HistoryConfig{MaxEntries: 10}}
	logger := &testutil.MockLogger{}
	store := storage.NewMemoryStore()
	medications := services.NewMedicationService(store, &testutil.MockScheduler{}, logger, &testutil.MockMetrics{})
	history := services.NewHistoryService(conf, store, &testutil.MockArchive{}, logger)
	gate := notify.NewGate(conf, &testutil.MockBackend{}, &testutil.MockPlayer{}, logger, &testutil.MockMetrics{})

	router := InitRoutes(
		controllers.NewMedicationController(logger, medications, history, testutil.NewMockCache()),
		controllers.NewHistoryController(logger, history),
		controllers.NewScheduleController(&testutil.MockScheduler{}, medications),
		controllers.NewNotificationController(gate),
	)

	mux := http.NewServeMux()
	for _, r := range router.GetRoutes() {
		mux.Handle(r.Url, r.Handler)
	}
	return mux
}

func TestInitRoutes_RegistersRoutes(t *testing.T) {
	router := InitRoutes(nil, nil, nil, nil)
	routes := router.GetRoutes()
	require.Len(t, routes, 7)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}
	for _, u := range []string{"/medications", "/medication", "/medication/log", "/history", "/history/archive", "/schedule", "/notifications/permission"} {
		assert.Contains(t, urls, u)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	mux := newTestMux(t)

	cases := []struct {
		method, path string
	}{
		{http.MethodDelete, "/medications"},
		{http.MethodPost, "/medication"},
		{http.MethodGet, "/medication/log"},
		{http.MethodPost, "/history"},
		{http.MethodPut, "/schedule"},
		{http.MethodPost, "/notifications/permission"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestInitRoutes_CreateThenList(t *testing.T) {
	mux := newTestMux(t)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/medications", strings.NewReader(`{"name":"Ibuprofen","time":"09:00 PM"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/medications", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Ibuprofen")
}
