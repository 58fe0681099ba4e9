package interfaces

import (
	"medreminder/internal/models"
	"time"
)

type SchedulerInterface interface {
	Rebuild(medications []models.Medication)
	Pending() map[string]time.Time
	Shutdown()
}

type MaintenanceInterface interface {
	Init()
	Stop()
}
