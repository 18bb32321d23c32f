package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSlots keeps the wizard on SelectDate: the chosen day has no
	// availability.
	ErrNoSlots = errors.New("no available slots on this date")

	// ErrStaleSlot rejects a slot that was not offered in SelectTime.
	ErrStaleSlot = errors.New("slot is not among the offered slots")

	ErrSessionNotFound = errors.New("booking session not found or expired")

	// ErrSubmitInProgress rejects a submit while another submit of the
	// same session is running.
	ErrSubmitInProgress = errors.New("booking session is already being submitted")
)

// StepError is returned when an action is not valid for the current step.
type StepError struct {
	Action string
	Step   StepName
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cannot %s while on step %s", e.Action, e.Step)
}
