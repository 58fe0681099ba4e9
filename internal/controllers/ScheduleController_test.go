package controllers

import (
	"encoding/json"
	"medreminder/internal/reminder"
	"medreminder/internal/services"
	"medreminder/internal/structures"
	"medreminder/internal/testutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_SortedWithNames(t *testing.T) {
	// the service stamps startDate with the real date
	y, m, d := time.Now().Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.Local)
	clock := testutil.NewFakeClock(noon)
	logger := &testutil.MockLogger{}
	scheduler := reminder.NewScheduler(&structures.Config{}, clock, &testutil.MockSink{}, logger, &testutil.MockMetrics{})
	f := newFixture(t)
	medications := services.NewMedicationService(f.store, scheduler, logger, &testutil.MockMetrics{})

	for _, in := range []struct{ name, at string }{{"Ibuprofen", "09:00 PM"}, {"Amoxicillin", "08:00 AM"}, {"Broken", "abc"}} {
		_, err := medications.Create(modelsInput(in.name, in.at))
		require.NoError(t, err)
	}

	sc := NewScheduleController(scheduler, medications)
	rr := call(sc.Pending, http.MethodGet, "/schedule", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var out []scheduledReminder
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Ibuprofen", out[0].Name)
	assert.True(t, out[0].FireAt.Equal(time.Date(y, m, d, 21, 0, 0, 0, time.Local)))
	assert.Equal(t, "Amoxicillin", out[1].Name)
	assert.True(t, out[1].FireAt.Equal(time.Date(y, m, d+1, 8, 0, 0, 0, time.Local)))
}

func TestPending_EmptyIsArray(t *testing.T) {
	f := newFixture(t)
	sc := NewScheduleController(f.scheduler, f.medications)

	rr := call(sc.Pending, http.MethodGet, "/schedule", "")
	assert.JSONEq(t, "[]", rr.Body.String())
}
