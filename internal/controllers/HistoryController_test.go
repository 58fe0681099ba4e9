package controllers

import (
	"encoding/json"
	"medreminder/internal/models"
	"medreminder/internal/services"
	"medreminder/internal/storage"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	f := newFixture(t)
	m := f.seed(t, "Ibuprofen", "09:00 PM")
	_, err := f.history.Log(m, models.ActionTaken)
	require.NoError(t, err)
	_, err = f.history.Log(m, models.ActionSkipped)
	require.NoError(t, err)

	hc := NewHistoryController(f.logger, f.history)

	rr := call(hc.Recent, http.MethodGet, "/history", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionSkipped, entries[0].Action)

	rr = call(hc.Recent, http.MethodGet, "/history?limit=1", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
}

func TestRecent_InvalidLimit(t *testing.T) {
	f := newFixture(t)
	hc := NewHistoryController(f.logger, f.history)

	assert.Equal(t, http.StatusBadRequest, call(hc.Recent, http.MethodGet, "/history?limit=x", "").Code)
	assert.Equal(t, http.StatusBadRequest, call(hc.Recent, http.MethodGet, "/history?limit=-1", "").Code)
}

func TestArchive_MonthsAndEntries(t *testing.T) {
	conf := &structures.Config{
		Storage: structures.StorageConfig{Dir: t.TempDir()},
		History: structures.HistoryConfig{MaxEntries: 1},
	}
	logger := &testutil.MockLogger{}
	archive, err := storage.NewHistoryArchive(conf, logger)
	require.NoError(t, err)
	history := services.NewHistoryService(conf, storage.NewMemoryStore(), archive, logger)

	med := models.Medication{ID: "m1", Name: "Ibuprofen"}
	_, err = history.Log(med, models.ActionTaken)
	require.NoError(t, err)
	_, err = history.Log(med, models.ActionSkipped)
	require.NoError(t, err)
	require.NoError(t, history.Compact())

	hc := NewHistoryController(logger, history)
	month := time.Now().UTC().Format("2006-01")

	rr := call(hc.Archive, http.MethodGet, "/history/archive", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var months []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &months))
	assert.Equal(t, []string{month}, months)

	rr = call(hc.Archive, http.MethodGet, "/history/archive?month="+month, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var entries []models.HistoryEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionTaken, entries[0].Action)

	assert.Equal(t, http.StatusBadRequest, call(hc.Archive, http.MethodGet, "/history/archive?month=2026-13", "").Code)
}

func TestArchive_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	hc := NewHistoryController(f.logger, f.history)

	rr := call(hc.Archive, http.MethodGet, "/history/archive", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}
