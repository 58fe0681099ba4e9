package reminder

import (
	"medreminder/internal/models"
	"time"
)

// NextOccurrence returns today's instant at tod if it is strictly after now,
// otherwise the same time on the following calendar day.
func NextOccurrence(tod models.TimeOfDay, now time.Time) time.Time {
	at := tod.On(now)
	if !at.After(now) {
		at = tod.On(now.AddDate(0, 0, 1))
	}
	return at
}

// NextOccurrenceOn is NextOccurrence restricted to enabled weekdays. It
// reports false when no weekday is enabled.
func NextOccurrenceOn(tod models.TimeOfDay, days models.Weekdays, now time.Time) (time.Time, bool) {
	if !days.Any() {
		return time.Time{}, false
	}
	at := NextOccurrence(tod, now)
	for i := 0; i < 7 && !days.Enabled(at.Weekday()); i++ {
		at = tod.On(at.AddDate(0, 0, 1))
	}
	return at, true
}
