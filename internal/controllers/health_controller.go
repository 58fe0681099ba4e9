package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"medreminder/internal/models"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"medreminder/internal/reminder/interfaces"
	"medreminder/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	medications services.MedicationServiceInterface
	scheduler   interfaces.SchedulerInterface
	gate        notifyIfaces.PermissionInterface
	startTime   time.Time
}

type healthResponse struct {
	Status        string            `json:"status"`
	Uptime        string            `json:"uptime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Medications   int               `json:"medications"`
	PendingTimers int               `json:"pending_timers"`
	Permission    models.Permission `json:"permission"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Medications:   len(hc.medications.List()),
		PendingTimers: len(hc.scheduler.Pending()),
		Permission:    hc.gate.Permission(),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(medications services.MedicationServiceInterface, scheduler interfaces.SchedulerInterface, gate notifyIfaces.PermissionInterface) *HealthController {
	return &HealthController{
		medications: medications,
		scheduler:   scheduler,
		gate:        gate,
		startTime:   time.Now(),
	}
}
