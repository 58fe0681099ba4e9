package controllers

import (
	"io"
	"medreminder/internal/models"
	"medreminder/internal/notify"
	"medreminder/internal/services"
	"medreminder/internal/storage"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	conf        *structures.Config
	store       *storage.MemoryStore
	scheduler   *testutil.MockScheduler
	archive     *testutil.MockArchive
	cache       *testutil.MockCache
	logger      *testutil.MockLogger
	medications services.MedicationServiceInterface
	history     services.HistoryServiceInterface
	gate        *notify.Gate
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		conf: &structures.Config{
			History:  structures.HistoryConfig{MaxEntries: 2, DisplayLimit: 30},
			Notifier: structures.NotifierConfig{Permission: notify.PolicyPrompt},
		},
		store:     storage.NewMemoryStore(),
		scheduler: &testutil.MockScheduler{},
		archive:   &testutil.MockArchive{},
		cache:     testutil.NewMockCache(),
		logger:    &testutil.MockLogger{},
	}
	f.medications = services.NewMedicationService(f.store, f.scheduler, f.logger, &testutil.MockMetrics{})
	f.history = services.NewHistoryService(f.conf, f.store, f.archive, f.logger)
	f.gate = notify.NewGate(f.conf, &testutil.MockBackend{}, &testutil.MockPlayer{}, f.logger, &testutil.MockMetrics{})
	return f
}

func (f *fixture) controller() *MedicationController {
	return NewMedicationController(f.logger, f.medications, f.history, f.cache)
}

func (f *fixture) seed(t *testing.T, name, at string) models.Medication {
	t.Helper()
	m, err := f.medications.Create(models.MedicationInput{Name: name, Dosage: "1 tablet", Time: at})
	require.NoError(t, err)
	return m
}

func call(handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}
