package reminder

import (
	"github.com/roylee0704/gron"
	"medreminder/internal/providers"
	"medreminder/internal/reminder/interfaces"
	"medreminder/internal/services"
	"medreminder/internal/structures"
	"sync"
)

// Maintenance runs the periodic jobs: a resync rebuild that corrects for
// host sleep and clock jumps, and history compaction.
type Maintenance struct {
	config      *structures.Config
	logger      providers.Logger
	medications services.MedicationServiceInterface
	history     services.HistoryServiceInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (m *Maintenance) Init() {
	m.cron = gron.New()

	m.cron.AddFunc(gron.Every(m.config.Scheduler.ResyncInterval), m.resync)
	m.cron.AddFunc(gron.Every(m.config.History.CompactInterval), m.compact)

	m.cron.Start()
}

func (m *Maintenance) resync() {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	m.logger.Debugf(providers.TypeScheduler, "Resync reminders...")
	m.medications.Resync()
}

func (m *Maintenance) compact() {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	err := m.history.Compact()
	if err != nil {
		m.logger.Errorf(providers.TypeApp, "Error while compacting history: %s", err)
		return
	}
	m.logger.Debugf(providers.TypeApp, "History compacted")
}

func (m *Maintenance) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

func NewMaintenance(config *structures.Config, logger providers.Logger, medications services.MedicationServiceInterface, history services.HistoryServiceInterface) interfaces.MaintenanceInterface {
	return &Maintenance{
		config:      config,
		logger:      logger,
		medications: medications,
		history:     history,
	}
}
