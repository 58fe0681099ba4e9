package services

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"medreminder/internal/models"
	"medreminder/internal/providers"
	"medreminder/internal/storage"
	storageIfaces "medreminder/internal/storage/interfaces"
	"medreminder/internal/structures"
	"sync"
	"time"
)

const DefaultDisplayLimit = 30

var ErrInvalidAction = errors.New("invalid history action")

type HistoryServiceInterface interface {
	Restore()
	Log(medication models.Medication, action models.Action) (models.HistoryEntry, error)
	Recent(limit int) []models.HistoryEntry
	Compact() error
	ArchivedMonths() ([]string, error)
	Archived(month string) ([]models.HistoryEntry, error)
}

// HistoryService keeps the taken/skipped log newest-first. The live log is
// capped at maxEntries; older entries move to the archive.
type HistoryService struct {
	mu           sync.Mutex
	entries      []models.HistoryEntry
	store        storageIfaces.StoreInterface
	archive      storageIfaces.ArchiveInterface
	logger       providers.Logger
	maxEntries   int
	displayLimit int
	now          func() time.Time
}

func NewHistoryService(conf *structures.Config, store storageIfaces.StoreInterface, archive storageIfaces.ArchiveInterface, logger providers.Logger) HistoryServiceInterface {
	displayLimit := conf.History.DisplayLimit
	if displayLimit <= 0 {
		displayLimit = DefaultDisplayLimit
	}
	return &HistoryService{
		store:        store,
		archive:      archive,
		logger:       logger,
		maxEntries:   conf.History.MaxEntries,
		displayLimit: displayLimit,
		now:          time.Now,
	}
}

func (hs *HistoryService) Restore() {
	var loaded []models.HistoryEntry
	if !hs.store.Load(storage.HistoryKey, &loaded) {
		loaded = nil
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.entries = loaded
	hs.logger.Infof(providers.TypeApp, "Restored %d history entries", len(loaded))
}

func (hs *HistoryService) Log(medication models.Medication, action models.Action) (models.HistoryEntry, error) {
	if !action.Valid() {
		return models.HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	entry := models.HistoryEntry{
		ID:     uuid.NewString(),
		MedID:  medication.ID,
		Name:   medication.Name,
		Action: action,
		Time:   hs.now().UTC(),
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	hs.entries = append([]models.HistoryEntry{entry}, hs.entries...)
	hs.trimLocked()
	if err := hs.store.Save(storage.HistoryKey, hs.entries); err != nil {
		hs.logger.Errorf(providers.TypeApp, "Error while persisting history: %s", err)
		return entry, fmt.Errorf("persist history: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// means the display limit.
func (hs *HistoryService) Recent(limit int) []models.HistoryEntry {
	if limit <= 0 {
		limit = hs.displayLimit
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()
	limit = min(limit, len(hs.entries))
	return append([]models.HistoryEntry{}, hs.entries[:limit]...)
}

// Compact re-applies the cap and flushes evicted entries to the archive.
func (hs *HistoryService) Compact() error {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if hs.trimLocked() {
		if err := hs.store.Save(storage.HistoryKey, hs.entries); err != nil {
			return fmt.Errorf("persist history: %w", err)
		}
	}
	return hs.archive.Flush()
}

func (hs *HistoryService) trimLocked() bool {
	if hs.maxEntries <= 0 || len(hs.entries) <= hs.maxEntries {
		return false
	}
	evicted := append([]models.HistoryEntry(nil), hs.entries[hs.maxEntries:]...)
	hs.entries = hs.entries[:hs.maxEntries:hs.maxEntries]
	hs.archive.Evict(evicted)
	return true
}

func (hs *HistoryService) ArchivedMonths() ([]string, error) {
	return hs.archive.Months()
}

func (hs *HistoryService) Archived(month string) ([]models.HistoryEntry, error) {
	return hs.archive.Read(month)
}
