package appointment

import (
	"errors"
	"fmt"
	"time"
)

// InvalidDateError is returned when availability or a booking is requested
// for a moment that already passed.
type InvalidDateError struct {
	Date  time.Time
	Today time.Time
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("date %s is before %s", e.Date.Format("2006-01-02"), e.Today.Format("2006-01-02"))
}

// SlotConflictError means another non-cancelled appointment of the barber
// already overlaps the requested interval.
type SlotConflictError struct {
	BarberID uint
	Start    time.Time
	End      time.Time
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("barber %d already booked between %s and %s",
		e.BarberID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// CancellationWindowError is returned to customers cancelling too close to
// the appointment start.
type CancellationWindowError struct {
	Remaining time.Duration
	Required  time.Duration
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("cancellation requires %s of notice, only %s left",
		e.Required, e.Remaining.Truncate(time.Minute))
}

type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ForbiddenError is returned when the actor may not perform the operation.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func IsSlotConflict(err error) bool {
	var target *SlotConflictError
	return errors.As(err, &target)
}

func IsInvalidDate(err error) bool {
	var target *InvalidDateError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}
