package controllers

import (
	"medreminder/internal/reminder/interfaces"
	"medreminder/internal/services"
	"net/http"
	"sort"
	"time"
)

type ScheduleController struct {
	scheduler   interfaces.SchedulerInterface
	medications services.MedicationServiceInterface
}

func NewScheduleController(scheduler interfaces.SchedulerInterface, medications services.MedicationServiceInterface) *ScheduleController {
	return &ScheduleController{scheduler: scheduler, medications: medications}
}

type scheduledReminder struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	FireAt time.Time `json:"fireAt"`
}

// Pending lists armed reminders, soonest first.
func (sc *ScheduleController) Pending(w http.ResponseWriter, r *http.Request) {
	names := make(map[string]string)
	for _, m := range sc.medications.List() {
		names[m.ID] = m.Name
	}

	out := make([]scheduledReminder, 0)
	for id, at := range sc.scheduler.Pending() {
		out = append(out, scheduledReminder{ID: id, Name: names[id], FireAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].FireAt.Before(out[j].FireAt)
	})
	writeJSON(w, http.StatusOK, out)
}
