package appointment

import (
	"fmt"
	"time"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// DaySchedule is the resolved opening window of one calendar day.
type DaySchedule struct {
	Open  TimeRange
	Lunch *TimeRange
}

// Busy returns the lunch break as a busy range, if there is one.
func (d DaySchedule) Busy() []TimeRange {
	if d.Lunch == nil {
		return nil
	}
	return []TimeRange{*d.Lunch}
}

// ResolveDay anchors business hours to day (in day's location). It
// reports false when the shop is closed that day.
func ResolveDay(hours *models.BusinessHours, day time.Time) (DaySchedule, bool, error) {
	if hours == nil || hours.Closed || hours.OpenTime == "" || hours.CloseTime == "" {
		return DaySchedule{}, false, nil
	}

	open, err := atClock(day, hours.OpenTime)
	if err != nil {
		return DaySchedule{}, false, err
	}
	closing, err := atClock(day, hours.CloseTime)
	if err != nil {
		return DaySchedule{}, false, err
	}
	if !closing.After(open) {
		return DaySchedule{}, false, nil
	}

	sched := DaySchedule{Open: TimeRange{Start: open, End: closing}}

	if hours.LunchStart != "" && hours.LunchEnd != "" {
		ls, err := atClock(day, hours.LunchStart)
		if err != nil {
			return DaySchedule{}, false, err
		}
		le, err := atClock(day, hours.LunchEnd)
		if err != nil {
			return DaySchedule{}, false, err
		}
		if le.After(ls) {
			sched.Lunch = &TimeRange{Start: ls, End: le}
		}
	}

	return sched, true, nil
}

// IsWithinBusinessHours reports whether [start, end) fits in the day's
// opening hours without touching the lunch break.
func IsWithinBusinessHours(hours *models.BusinessHours, start, end time.Time) (bool, error) {
	sched, open, err := ResolveDay(hours, start)
	if err != nil || !open {
		return false, err
	}

	if start.Before(sched.Open.Start) || end.After(sched.Open.End) {
		return false, nil
	}
	if sched.Lunch != nil && (TimeRange{Start: start, End: end}).Overlaps(*sched.Lunch) {
		return false, nil
	}
	return true, nil
}

func atClock(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}
