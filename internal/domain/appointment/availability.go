package appointment

import (
	"time"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         time.Time
}

// TimeRange is the half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && o.Start.Before(r.End)
}

// AvailableSlots returns the back-to-back slot starts inside window for a
// service of the given duration. A slot is offered when it fits before
// window.End, overlaps none of busy and does not start before now.
func AvailableSlots(window TimeRange, duration time.Duration, busy []TimeRange, now time.Time) []time.Time {
	slots := []time.Time{}
	if duration <= 0 || !window.End.After(window.Start) {
		return slots
	}

	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(duration) {
		if cur.Before(now) {
			continue
		}
		slot := TimeRange{Start: cur, End: cur.Add(duration)}
		if overlapsAny(slot, busy) {
			continue
		}
		slots = append(slots, cur)
	}
	return slots
}

func overlapsAny(slot TimeRange, busy []TimeRange) bool {
	for _, b := range busy {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// ContainsSlot reports whether slot is one of slots.
func ContainsSlot(slots []time.Time, slot time.Time) bool {
	for _, s := range slots {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}
