package controllers

import (
	"errors"
	json "github.com/goccy/go-json"
	"medreminder/internal/models"
	"medreminder/internal/providers"
	"medreminder/internal/services"
	"net/http"
	"sync"
)

const listCacheKey = "medications"

type MedicationController struct {
	logger      providers.Logger
	medications services.MedicationServiceInterface
	history     services.HistoryServiceInterface
	cache       providers.CacheProviderInterface

	// cacheGen counts purges so a list read before a mutation is never
	// cached after it.
	cacheMu  sync.Mutex
	cacheGen uint64
}

func NewMedicationController(logger providers.Logger, medications services.MedicationServiceInterface, history services.HistoryServiceInterface, cache providers.CacheProviderInterface) *MedicationController {
	return &MedicationController{
		logger:      logger,
		medications: medications,
		history:     history,
		cache:       cache,
	}
}

type logRequest struct {
	Action models.Action `json:"action" validate:"required"`
}

func (mc *MedicationController) List(w http.ResponseWriter, r *http.Request) {
	if data, ok := mc.cache.Get(listCacheKey); ok {
		writeRaw(w, http.StatusOK, data)
		return
	}

	mc.cacheMu.Lock()
	gen := mc.cacheGen
	mc.cacheMu.Unlock()

	gson, err := json.Marshal(mc.medications.List())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	mc.cacheMu.Lock()
	if mc.cacheGen == gen {
		mc.cache.Set(listCacheKey, gson)
	}
	mc.cacheMu.Unlock()
	writeRaw(w, http.StatusOK, gson)
}

func (mc *MedicationController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.MedicationInput
	if !decodeBody(w, r, &in) {
		return
	}
	m, err := mc.medications.Create(in)
	mc.afterMutation(err)
	writeJSON(w, http.StatusCreated, m)
}

func (mc *MedicationController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	m, err := mc.medications.Get(id)
	if err != nil {
		mc.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (mc *MedicationController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var in models.MedicationInput
	if !decodeBody(w, r, &in) {
		return
	}
	m, err := mc.medications.Update(id, in)
	if errors.Is(err, services.ErrNotFound) {
		mc.writeServiceError(w, err)
		return
	}
	mc.afterMutation(err)
	writeJSON(w, http.StatusOK, m)
}

func (mc *MedicationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	err := mc.medications.Delete(id)
	if errors.Is(err, services.ErrNotFound) {
		mc.writeServiceError(w, err)
		return
	}
	mc.afterMutation(err)
	w.WriteHeader(http.StatusNoContent)
}

// Log records a taken or skipped action against a medication.
func (mc *MedicationController) Log(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var req logRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := mc.medications.Get(id)
	if err != nil {
		mc.writeServiceError(w, err)
		return
	}
	entry, err := mc.history.Log(m, req.Action)
	if errors.Is(err, services.ErrInvalidAction) {
		mc.writeServiceError(w, err)
		return
	}
	mc.afterMutation(err)
	writeJSON(w, http.StatusCreated, entry)
}

// afterMutation drops cached responses. A persistence error has already been
// applied in memory, so it is only logged.
func (mc *MedicationController) afterMutation(err error) {
	mc.cacheMu.Lock()
	mc.cacheGen++
	mc.cache.Purge()
	mc.cacheMu.Unlock()
	if err != nil {
		mc.logger.Warnf(providers.TypePost, "Mutation applied but not persisted: %s", err)
	}
}

func (mc *MedicationController) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		mc.logger.Errorf(providers.TypeApp, "Request failed: %s", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
