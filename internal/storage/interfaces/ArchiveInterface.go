package interfaces

import "medreminder/internal/models"

type ArchiveInterface interface {
	// Evict buffers entries for the next Flush. No disk I/O is performed.
	Evict(entries []models.HistoryEntry)
	Flush() error
	Months() ([]string, error)
	Read(month string) ([]models.HistoryEntry, error)
}
