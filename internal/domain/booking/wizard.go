package booking

import (
	"context"
	"time"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
)

// SlotFinder computes the bookable slots of a barber on a date for the
// wizard's service.
type SlotFinder interface {
	FindSlots(ctx context.Context, barberID uint, date time.Time) ([]time.Time, error)
}

// Request is the single create command issued on submit.
type Request struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	CustomerID   uint
	Start        time.Time
	Notes        string
}

type Booker interface {
	Book(ctx context.Context, req Request) (uint, error)
}

// Wizard drives one customer through barber, date, time and confirmation.
// It is not safe for concurrent use; each customer session owns its own.
type Wizard struct {
	BarbershopID uint
	ServiceID    uint
	CustomerID   uint

	step    Step
	problem string
}

func New(barbershopID, serviceID, customerID uint) *Wizard {
	return &Wizard{
		BarbershopID: barbershopID,
		ServiceID:    serviceID,
		CustomerID:   customerID,
		step:         SelectBarber{},
	}
}

func (w *Wizard) Step() Step { return w.step }

// Problem is the message of the last rejected action, empty after a
// successful one.
func (w *Wizard) Problem() string { return w.problem }

func (w *Wizard) fail(err error) error {
	w.problem = err.Error()
	return err
}

func (w *Wizard) advance(s Step) {
	w.step = s
	w.problem = ""
}

func (w *Wizard) ChooseBarber(barberID uint) error {
	if _, ok := w.step.(SelectBarber); !ok {
		return w.fail(&StepError{Action: "choose barber", Step: w.step.Name()})
	}
	if barberID == 0 {
		return w.fail(&domain.ValidationError{Field: "barber_id", Reason: "required"})
	}

	w.advance(SelectDate{BarberID: barberID})
	return nil
}

// ChooseDate asks finder for the day's slots. The wizard only moves to
// SelectTime when at least one slot is offered.
func (w *Wizard) ChooseDate(ctx context.Context, finder SlotFinder, date time.Time) error {
	cur, ok := w.step.(SelectDate)
	if !ok {
		return w.fail(&StepError{Action: "choose date", Step: w.step.Name()})
	}
	if date.IsZero() {
		return w.fail(&domain.ValidationError{Field: "date", Reason: "required"})
	}

	slots, err := finder.FindSlots(ctx, cur.BarberID, date)
	if err != nil {
		return w.fail(err)
	}
	if len(slots) == 0 {
		return w.fail(ErrNoSlots)
	}

	w.advance(SelectTime{BarberID: cur.BarberID, Date: date, Slots: slots})
	return nil
}

func (w *Wizard) ChooseTime(slot time.Time, notes string) error {
	cur, ok := w.step.(SelectTime)
	if !ok {
		return w.fail(&StepError{Action: "choose time", Step: w.step.Name()})
	}
	if !domain.ContainsSlot(cur.Slots, slot) {
		return w.fail(ErrStaleSlot)
	}

	w.advance(Confirm{
		BarberID: cur.BarberID,
		Date:     cur.Date,
		Slots:    cur.Slots,
		Slot:     slot,
		Notes:    notes,
	})
	return nil
}

// Submit issues exactly one create request. When the store reports a slot
// conflict the wizard goes back to SelectTime with freshly computed slots
// (SelectDate if the day filled up) and the conflict is returned; no other
// slot is tried.
func (w *Wizard) Submit(ctx context.Context, booker Booker, finder SlotFinder) error {
	cur, ok := w.step.(Confirm)
	if !ok {
		return w.fail(&StepError{Action: "submit", Step: w.step.Name()})
	}

	id, err := booker.Book(ctx, Request{
		BarbershopID: w.BarbershopID,
		BarberID:     cur.BarberID,
		ServiceID:    w.ServiceID,
		CustomerID:   w.CustomerID,
		Start:        cur.Slot,
		Notes:        cur.Notes,
	})
	if err == nil {
		w.advance(Submitted{AppointmentID: id, BarberID: cur.BarberID, Start: cur.Slot})
		return nil
	}
	if !domain.IsSlotConflict(err) {
		return w.fail(err)
	}

	slots, ferr := finder.FindSlots(ctx, cur.BarberID, cur.Date)
	if ferr != nil {
		// stay on Confirm; the customer can go back and retry the date
		return w.fail(err)
	}
	if len(slots) == 0 {
		w.step = SelectDate{BarberID: cur.BarberID}
	} else {
		w.step = SelectTime{BarberID: cur.BarberID, Date: cur.Date, Slots: slots}
	}
	return w.fail(err)
}

// Back returns to the previous pre-commit step.
func (w *Wizard) Back() error {
	switch cur := w.step.(type) {
	case SelectDate:
		w.advance(SelectBarber{})
	case SelectTime:
		w.advance(SelectDate{BarberID: cur.BarberID})
	case Confirm:
		w.advance(SelectTime{BarberID: cur.BarberID, Date: cur.Date, Slots: cur.Slots})
	default:
		return w.fail(&StepError{Action: "go back", Step: w.step.Name()})
	}
	return nil
}

func (w *Wizard) Done() bool {
	_, ok := w.step.(Submitted)
	return ok
}
