package services

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"medreminder/internal/models"
	"medreminder/internal/providers"
	reminderIfaces "medreminder/internal/reminder/interfaces"
	"medreminder/internal/storage"
	storageIfaces "medreminder/internal/storage/interfaces"
	"sync"
	"time"
)

var ErrNotFound = errors.New("medication not found")

type MedicationServiceInterface interface {
	Restore()
	List() []models.Medication
	Get(id string) (models.Medication, error)
	Create(in models.MedicationInput) (models.Medication, error)
	Update(id string, in models.MedicationInput) (models.Medication, error)
	Delete(id string) error
	Resync()
}

// MedicationService owns the medication list. The whole list is the unit
// of persistence: every mutation writes it back and rebuilds the scheduler.
type MedicationService struct {
	mu          sync.Mutex
	medications []models.Medication
	store       storageIfaces.StoreInterface
	scheduler   reminderIfaces.SchedulerInterface
	logger      providers.Logger
	metrics     providers.MetricsProviderInterface
	now         func() time.Time
}

func NewMedicationService(store storageIfaces.StoreInterface, scheduler reminderIfaces.SchedulerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) MedicationServiceInterface {
	return &MedicationService{
		store:     store,
		scheduler: scheduler,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Restore loads the persisted list and arms it. A missing or corrupt list
// starts empty.
func (ms *MedicationService) Restore() {
	var loaded []models.Medication
	if !ms.store.Load(storage.MedicationsKey, &loaded) {
		loaded = nil
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.medications = loaded
	ms.logger.Infof(providers.TypeApp, "Restored %d medications", len(loaded))
	ms.applyLocked()
}

func (ms *MedicationService) List() []models.Medication {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]models.Medication{}, ms.medications...)
}

func (ms *MedicationService) Get(id string) (models.Medication, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if i := ms.indexLocked(id); i >= 0 {
		return ms.medications[i], nil
	}
	return models.Medication{}, ErrNotFound
}

func (ms *MedicationService) Create(in models.MedicationInput) (models.Medication, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	m := models.NewMedication(uuid.NewString(), in, ms.now())
	ms.medications = append(ms.medications, m)
	return m, ms.commitLocked()
}

func (ms *MedicationService) Update(id string, in models.MedicationInput) (models.Medication, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	i := ms.indexLocked(id)
	if i < 0 {
		return models.Medication{}, ErrNotFound
	}
	m := models.NewMedication(id, in, ms.now())
	m.CreatedAt = ms.medications[i].CreatedAt
	ms.medications[i] = m
	return m, ms.commitLocked()
}

func (ms *MedicationService) Delete(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	i := ms.indexLocked(id)
	if i < 0 {
		return ErrNotFound
	}
	ms.medications = append(ms.medications[:i:i], ms.medications[i+1:]...)
	return ms.commitLocked()
}

// Resync re-arms the scheduler from the current list without persisting.
func (ms *MedicationService) Resync() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.scheduler.Rebuild(ms.medications)
}

func (ms *MedicationService) indexLocked(id string) int {
	for i := range ms.medications {
		if ms.medications[i].ID == id {
			return i
		}
	}
	return -1
}

// commitLocked persists the list and rebuilds the scheduler. The scheduler
// is rebuilt even when the write fails; the in-memory list stays
// authoritative for the session.
func (ms *MedicationService) commitLocked() error {
	err := ms.store.Save(storage.MedicationsKey, ms.medications)
	if err != nil {
		ms.logger.Errorf(providers.TypeApp, "Error while persisting medications: %s", err)
		err = fmt.Errorf("persist medications: %w", err)
	}
	ms.applyLocked()
	return err
}

func (ms *MedicationService) applyLocked() {
	ms.metrics.SetMedicationsTotal(len(ms.medications))
	ms.scheduler.Rebuild(ms.medications)
}
