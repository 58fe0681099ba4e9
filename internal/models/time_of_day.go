package models

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

var ErrMalformedTime = errors.New("malformed time of day")

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*([AP])\.?M?\.?)?$`)

// TimeOfDay is a minute of the day in [0, 1439].
type TimeOfDay int

// ParseTimeOfDay accepts "08:00 AM", "8:00 pm", "8:00P" and 24-hour "20:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	m := timeOfDayRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	switch m[3] {
	case "":
		if hour > 23 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}
		hour %= 12
		if m[3] == "P" {
			hour += 12
		}
	}
	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// On returns the instant at this time of day on the calendar date of day,
// in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}

// String renders the 12-hour form used by the reminder form, e.g. "08:00 AM".
func (t TimeOfDay) String() string {
	period := "AM"
	h := t.Hour()
	if h >= 12 {
		period = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, t.Minute(), period)
}
