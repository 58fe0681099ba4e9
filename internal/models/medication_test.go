package models

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestMedication_RecurringDefaultsToTrue(t *testing.T) {
	var m Medication
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Amoxicillin","time":"08:00 AM"}`), &m))
	assert.True(t, m.Recurring())

	m.IsRecurring = boolPtr(false)
	assert.False(t, m.Recurring())
}

func TestWeekdays_Enabled(t *testing.T) {
	var none Weekdays
	assert.True(t, none.Enabled(time.Wednesday))
	assert.True(t, none.Any())

	w := Weekdays{"monday": true, "friday": false}
	assert.True(t, w.Enabled(time.Monday))
	assert.False(t, w.Enabled(time.Friday))
	assert.False(t, w.Enabled(time.Sunday))
	assert.True(t, w.Any())

	off := Weekdays{"monday": false}
	assert.False(t, off.Any())
}

func TestNewMedication_Defaults(t *testing.T) {
	now := time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC)
	m := NewMedication("id-1", MedicationInput{
		Name:    " Ibuprofen ",
		Dosage:  "200mg",
		Time:    "08:00 AM",
		EndDate: "2026-06-01",
	}, now)

	assert.Equal(t, "id-1", m.ID)
	assert.Equal(t, "Ibuprofen", m.Name)
	assert.Equal(t, AllWeekdays(), m.Days)
	assert.Equal(t, "2026-05-02", m.StartDate)
	assert.Empty(t, m.EndDate, "recurring medications carry no end date")
	assert.Equal(t, now, m.CreatedAt)
}

func TestNewMedication_KeepsEndDateWhenNotRecurring(t *testing.T) {
	m := NewMedication("id-2", MedicationInput{
		Time:        "09:00",
		IsRecurring: boolPtr(false),
		EndDate:     "2026-06-01",
	}, time.Now())
	assert.Equal(t, "2026-06-01", m.EndDate)
}

func TestAction_Valid(t *testing.T) {
	assert.True(t, ActionTaken.Valid())
	assert.True(t, ActionSkipped.Valid())
	assert.False(t, Action("snoozed").Valid())
}
