package interfaces

import "time"

type TimerInterface interface {
	Stop() bool
}

type ClockInterface interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) TimerInterface
}
