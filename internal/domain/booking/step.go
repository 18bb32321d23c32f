package booking

import "time"

type StepName string

const (
	StepSelectBarber StepName = "select_barber"
	StepSelectDate   StepName = "select_date"
	StepSelectTime   StepName = "select_time"
	StepConfirm      StepName = "confirm"
	StepSubmitted    StepName = "submitted"
)

// Step is one state of the wizard. Each variant carries only the data that
// is valid at that point of the flow.
type Step interface {
	Name() StepName
	step()
}

type SelectBarber struct{}

type SelectDate struct {
	BarberID uint
}

type SelectTime struct {
	BarberID uint
	Date     time.Time
	Slots    []time.Time
}

type Confirm struct {
	BarberID uint
	Date     time.Time
	Slots    []time.Time
	Slot     time.Time
	Notes    string
}

type Submitted struct {
	AppointmentID uint
	BarberID      uint
	Start         time.Time
}

func (SelectBarber) Name() StepName { return StepSelectBarber }
func (SelectDate) Name() StepName   { return StepSelectDate }
func (SelectTime) Name() StepName   { return StepSelectTime }
func (Confirm) Name() StepName      { return StepConfirm }
func (Submitted) Name() StepName    { return StepSubmitted }

func (SelectBarber) step() {}
func (SelectDate) step()   {}
func (SelectTime) step()   {}
func (Confirm) step()      {}
func (Submitted) step()    {}
