package booking

import (
	"fmt"
	"time"
)

// Snapshot is the serialisable form of a wizard, used by session stores.
type Snapshot struct {
	BarbershopID uint `json:"barbershop_id"`
	ServiceID    uint `json:"service_id"`
	CustomerID   uint `json:"customer_id"`

	Step          StepName    `json:"step"`
	BarberID      uint        `json:"barber_id,omitempty"`
	Date          time.Time   `json:"date"`
	Slots         []time.Time `json:"slots,omitempty"`
	Slot          time.Time   `json:"slot"`
	Notes         string      `json:"notes,omitempty"`
	AppointmentID uint        `json:"appointment_id,omitempty"`
	Problem       string      `json:"problem,omitempty"`
}

func (w *Wizard) Snapshot() Snapshot {
	s := Snapshot{
		BarbershopID: w.BarbershopID,
		ServiceID:    w.ServiceID,
		CustomerID:   w.CustomerID,
		Step:         w.step.Name(),
		Problem:      w.problem,
	}

	switch cur := w.step.(type) {
	case SelectDate:
		s.BarberID = cur.BarberID
	case SelectTime:
		s.BarberID, s.Date, s.Slots = cur.BarberID, cur.Date, cur.Slots
	case Confirm:
		s.BarberID, s.Date, s.Slots = cur.BarberID, cur.Date, cur.Slots
		s.Slot, s.Notes = cur.Slot, cur.Notes
	case Submitted:
		s.BarberID, s.Slot, s.AppointmentID = cur.BarberID, cur.Start, cur.AppointmentID
	}
	return s
}

func Restore(s Snapshot) (*Wizard, error) {
	w := New(s.BarbershopID, s.ServiceID, s.CustomerID)
	w.problem = s.Problem

	switch s.Step {
	case StepSelectBarber:
	case StepSelectDate:
		w.step = SelectDate{BarberID: s.BarberID}
	case StepSelectTime:
		w.step = SelectTime{BarberID: s.BarberID, Date: s.Date, Slots: s.Slots}
	case StepConfirm:
		w.step = Confirm{BarberID: s.BarberID, Date: s.Date, Slots: s.Slots, Slot: s.Slot, Notes: s.Notes}
	case StepSubmitted:
		w.step = Submitted{AppointmentID: s.AppointmentID, BarberID: s.BarberID, Start: s.Slot}
	default:
		return nil, fmt.Errorf("unknown wizard step %q", s.Step)
	}
	return w, nil
}
