package reminder

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"medreminder/internal/models"
	notifyIfaces "medreminder/internal/notify/interfaces"
	"medreminder/internal/providers"
	"medreminder/internal/reminder/interfaces"
	"medreminder/internal/structures"
	"sync"
	"time"
)

const NotificationTitle = "Medication Reminder"

var (
	errNoWeekday = errors.New("no weekday enabled")
	errEnded     = errors.New("past end date")
)

type armed struct {
	timer  interfaces.TimerInterface
	fireAt time.Time
	seq    uint64
}

// Scheduler keeps exactly one pending timer per medication id. Every change
// to the list goes through Rebuild, which cancels all owned timers before
// arming new ones, so the last rebuild always wins.
type Scheduler struct {
	mu            sync.Mutex
	clock         interfaces.ClockInterface
	sink          notifyIfaces.SinkInterface
	logger        providers.Logger
	metrics       providers.MetricsProviderInterface
	honorWeekdays bool
	dismissAfter  time.Duration

	timers  map[string]armed
	elapsed map[string]models.Medication // one-shot medications that fired
	current []models.Medication
	seq     uint64
	closed  bool
}

func NewScheduler(conf *structures.Config, clock interfaces.ClockInterface, sink notifyIfaces.SinkInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		clock:         clock,
		sink:          sink,
		logger:        logger,
		metrics:       metrics,
		honorWeekdays: conf.Scheduler.HonorWeekdays,
		dismissAfter:  conf.Notifier.DismissAfter,
		timers:        make(map[string]armed),
		elapsed:       make(map[string]models.Medication),
	}
}

func (s *Scheduler) Rebuild(medications []models.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.current = append([]models.Medication(nil), medications...)
	s.pruneElapsedLocked()
	s.rebuildLocked(time.Time{})
}

// rebuildLocked re-arms every eligible medication in s.current for its next
// occurrence after now. When firedAt is set the rebuild follows a firing,
// and timers that were due at or before firedAt keep their deadline, so
// medications sharing a time of day all fire.
func (s *Scheduler) rebuildLocked(firedAt time.Time) {
	previous := s.cancelAllLocked()
	now := s.clock.Now()

	for _, med := range s.current {
		if s.elapsedLocked(med) {
			s.logger.Debugf(providers.TypeScheduler, "Skip %s (%s): already fired", med.ID, med.Name)
			continue
		}

		at, err := s.next(med, now)
		if p, ok := previous[med.ID]; ok && !firedAt.IsZero() && !p.fireAt.After(firedAt) {
			at, err = p.fireAt, nil
		}
		if err != nil {
			s.logger.Debugf(providers.TypeScheduler, "Skip %s (%s): %s", med.ID, med.Name, err)
			continue
		}

		if prev, dup := s.timers[med.ID]; dup {
			prev.timer.Stop()
		}
		delay := at.Sub(now)
		if delay < 0 {
			delay = 0
		}
		s.seq++
		seq, m := s.seq, med
		s.timers[med.ID] = armed{
			timer:  s.clock.AfterFunc(delay, func() { s.fire(m, seq) }),
			fireAt: at,
			seq:    seq,
		}
		s.logger.Debugf(providers.TypeScheduler, "Armed %s (%s) for %s", med.ID, med.Name, at.Format(time.RFC3339))
	}

	s.metrics.IncRebuilds()
	s.metrics.SetPendingTimers(len(s.timers))
}

// next returns the first occurrence of med strictly after now that falls on
// or after its start date, on an enabled weekday when weekdays are honored,
// and for one-shot medications no later than the end date.
func (s *Scheduler) next(med models.Medication, now time.Time) (time.Time, error) {
	tod, err := med.TimeOfDay()
	if err != nil {
		return time.Time{}, err
	}

	after := now
	if start, err := time.ParseInLocation(models.DateLayout, med.StartDate, now.Location()); err == nil && start.After(now) {
		after = start.Add(-time.Nanosecond)
	}

	at := NextOccurrence(tod, after)
	if s.honorWeekdays {
		var ok bool
		if at, ok = NextOccurrenceOn(tod, med.Days, after); !ok {
			return time.Time{}, errNoWeekday
		}
	}

	if !med.Recurring() {
		end, err := time.ParseInLocation(models.DateLayout, med.EndDate, now.Location())
		if err == nil && !at.Before(end.AddDate(0, 0, 1)) {
			return time.Time{}, errEnded
		}
	}
	return at, nil
}

// elapsedLocked reports whether med is a one-shot medication that already
// fired. Editing its schedule makes it eligible again.
func (s *Scheduler) elapsedLocked(med models.Medication) bool {
	fired, ok := s.elapsed[med.ID]
	if !ok {
		return false
	}
	if med.Recurring() || !sameSchedule(fired, med) {
		delete(s.elapsed, med.ID)
		return false
	}
	return true
}

func (s *Scheduler) pruneElapsedLocked() {
	ids := make(map[string]struct{}, len(s.current))
	for _, med := range s.current {
		ids[med.ID] = struct{}{}
	}
	for id := range s.elapsed {
		if _, ok := ids[id]; !ok {
			delete(s.elapsed, id)
		}
	}
}

func sameSchedule(a, b models.Medication) bool {
	return a.Time == b.Time &&
		a.StartDate == b.StartDate &&
		a.EndDate == b.EndDate &&
		a.Recurring() == b.Recurring() &&
		maps.Equal(a.Days, b.Days)
}

// cancelAllLocked stops every owned timer and returns what was armed.
func (s *Scheduler) cancelAllLocked() map[string]armed {
	previous := s.timers
	for _, a := range previous {
		a.timer.Stop()
	}
	s.timers = make(map[string]armed)
	return previous
}

func (s *Scheduler) fire(med models.Medication, seq uint64) {
	s.mu.Lock()
	a, ok := s.timers[med.ID]
	if s.closed || !ok || a.seq != seq {
		// superseded by a later rebuild
		s.mu.Unlock()
		return
	}
	delete(s.timers, med.ID)
	if !med.Recurring() {
		s.elapsed[med.ID] = med
	}
	s.metrics.SetPendingTimers(len(s.timers))
	s.mu.Unlock()

	s.metrics.IncFirings()
	s.deliver(med)

	if !med.Recurring() {
		s.logger.Infof(providers.TypeScheduler, "Fired %s (%s), not recurring", med.ID, med.Name)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rebuildLocked(a.fireAt)
}

func (s *Scheduler) deliver(med models.Medication) {
	n := models.Notification{
		Title:        NotificationTitle,
		Body:         fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage),
		Tag:          "med-reminder-" + med.ID,
		DismissAfter: s.dismissAfter,
	}

	err := s.sink.Notify(context.Background(), n)
	switch {
	case err == nil:
		s.logger.Infof(providers.TypeScheduler, "Reminder sent for %s (%s)", med.ID, med.Name)
	case errors.Is(err, notifyIfaces.ErrNotPermitted):
		s.logger.Debugf(providers.TypeScheduler, "Reminder for %s suppressed: %s", med.ID, err)
	default:
		s.logger.Warnf(providers.TypeScheduler, "Reminder for %s not delivered: %s", med.ID, err)
	}
}

func (s *Scheduler) Pending() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.timers))
	for id, a := range s.timers {
		out[id] = a.fireAt
	}
	return out
}

// Shutdown cancels every pending timer. Rebuilds after Shutdown are ignored.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelAllLocked()
	s.metrics.SetPendingTimers(0)
}
