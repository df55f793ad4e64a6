package mover

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// minutesPerDay is the exclusive upper bound for a window's end minute.
const minutesPerDay = 24 * 60

// ErrTimeWindowIsNotConstructed is returned when attempting to use an
// improperly initialized TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow constructor")

// TimeWindow is a half-open [start, end) range of minutes within a day,
// e.g. 9:00-17:30 is {540, 1050}.
type TimeWindow struct { //nolint:recvcheck //using for validation
	startMinute int
	endMinute   int
	guard       guard.ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from minutes-of-day. start must come
// before end and both must lie within a single day.
func NewTimeWindow(startMinute, endMinute int) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if startMinute < 0 || startMinute >= minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("startMinute", startMinute, 0, minutesPerDay-1)
	}
	if endMinute <= 0 || endMinute > minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("endMinute", endMinute, 1, minutesPerDay)
	}
	if startMinute >= endMinute {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("start %d is not before end %d", startMinute, endMinute))
	}

	w.startMinute = startMinute
	w.endMinute = endMinute
	return w, nil
}

// Validate checks that the TimeWindow was created via NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// StartMinute returns the inclusive start minute of day.
func (w TimeWindow) StartMinute() int { return w.startMinute }

// EndMinute returns the exclusive end minute of day.
func (w TimeWindow) EndMinute() int { return w.endMinute }

// ContainsMinute reports whether the given minute of day falls inside the window.
func (w TimeWindow) ContainsMinute(minute int) bool {
	return minute >= w.startMinute && minute < w.endMinute
}

// WeeklyAvailability maps each weekday to the mover's declared working
// windows. Days without entries mean the mover does not work that day.
type WeeklyAvailability map[time.Weekday][]TimeWindow

// Validate checks every window in the schedule.
func (a WeeklyAvailability) Validate() error {
	var errsJoined []error
	for day, windows := range a {
		if day < time.Sunday || day > time.Saturday {
			errsJoined = append(errsJoined, errs.NewValueIsInvalidError("weekday"))
			continue
		}
		for _, w := range windows {
			if err := w.Validate(); err != nil {
				errsJoined = append(errsJoined, err)
			}
		}
	}
	return errors.Join(errsJoined...)
}

// Covers reports whether t falls inside one of the declared windows for
// t's weekday. Evaluated in t's own location; callers pass instants already
// normalized to the marketplace timezone.
func (a WeeklyAvailability) Covers(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	for _, w := range a[t.Weekday()] {
		if w.ContainsMinute(minute) {
			return true
		}
	}
	return false
}
