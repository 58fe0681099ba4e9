package controllers

import (
	"errors"
	"medreminder/internal/models"
	"medreminder/internal/providers"
	"medreminder/internal/services"
	"medreminder/internal/storage"
	"net/http"
	"strconv"
)

type HistoryController struct {
	logger  providers.Logger
	history services.HistoryServiceInterface
}

func NewHistoryController(logger providers.Logger, history services.HistoryServiceInterface) *HistoryController {
	return &HistoryController{logger: logger, history: history}
}

// Recent serves the newest entries. Without ?limit the display limit applies.
func (hc *HistoryController) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	writeJSON(w, http.StatusOK, hc.history.Recent(limit))
}

// Archive lists archived months, or the entries of one month with ?month=YYYY-MM.
func (hc *HistoryController) Archive(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		months, err := hc.history.ArchivedMonths()
		if err != nil {
			hc.logger.Errorf(providers.TypeGet, "Could not list archive: %s", err)
			writeError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		if months == nil {
			months = []string{}
		}
		writeJSON(w, http.StatusOK, months)
		return
	}

	entries, err := hc.history.Archived(month)
	switch {
	case errors.Is(err, storage.ErrInvalidMonth):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		hc.logger.Errorf(providers.TypeGet, "Could not read archive %s: %s", month, err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
