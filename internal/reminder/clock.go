package reminder

import (
	"medreminder/internal/reminder/interfaces"
	"time"
)

type systemClock struct{}

func NewSystemClock() interfaces.ClockInterface {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) interfaces.TimerInterface {
	return time.AfterFunc(d, f)
}
