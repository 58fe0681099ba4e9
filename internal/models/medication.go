package models

import (
	"strings"
	"time"
)

// DateLayout is the layout of start and end dates.
const DateLayout = "2006-01-02"

var weekdayKeys = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// Weekdays toggles reminders per day of week, keyed "monday".."sunday".
// A nil or empty set means every day.
type Weekdays map[string]bool

func AllWeekdays() Weekdays {
	w := make(Weekdays, len(weekdayKeys))
	for _, k := range weekdayKeys {
		w[k] = true
	}
	return w
}

func (w Weekdays) Enabled(d time.Weekday) bool {
	if len(w) == 0 {
		return true
	}
	return w[weekdayKeys[d]]
}

func (w Weekdays) Any() bool {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Enabled(d) {
			return true
		}
	}
	return false
}

type Medication struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Dosage      string    `json:"dosage"`
	Time        string    `json:"time"`
	Days        Weekdays  `json:"days,omitempty"`
	IsRecurring *bool     `json:"isRecurring,omitempty"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Recurring reports whether the medication re-arms after firing. Records
// written without the flag are recurring.
func (m *Medication) Recurring() bool {
	return m.IsRecurring == nil || *m.IsRecurring
}

func (m *Medication) TimeOfDay() (TimeOfDay, error) {
	return ParseTimeOfDay(m.Time)
}

// MedicationInput is the editable part of a medication, as submitted by the
// reminder form.
type MedicationInput struct {
	Name        string   `json:"name" validate:"required"`
	Dosage      string   `json:"dosage"`
	Time        string   `json:"time" validate:"required"`
	Days        Weekdays `json:"days,omitempty"`
	IsRecurring *bool    `json:"isRecurring,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// NewMedication builds a record from input. Missing days default to every
// day, missing start date to today, and the end date is dropped for
// recurring medications.
func NewMedication(id string, in MedicationInput, now time.Time) Medication {
	m := Medication{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Dosage:      strings.TrimSpace(in.Dosage),
		Time:        strings.TrimSpace(in.Time),
		Days:        in.Days,
		IsRecurring: in.IsRecurring,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Notes:       in.Notes,
		CreatedAt:   now.UTC(),
	}
	if len(m.Days) == 0 {
		m.Days = AllWeekdays()
	}
	if m.StartDate == "" {
		m.StartDate = now.Format(DateLayout)
	}
	if m.Recurring() {
		m.EndDate = ""
	}
	return m
}
