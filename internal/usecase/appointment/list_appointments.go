package appointment

import (
	"context"
	"time"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/dto"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

// periodLister backs the calendar views. A zero barberID lists the whole
// shop. Cancelled appointments are included so the calendar shows them.
type periodLister struct {
	repo domain.Repository
}

// list resolves the shop timezone, lets span turn it into [start, end) and
// maps the rows for the calendar.
func (l periodLister) list(
	ctx context.Context,
	actor domain.Actor,
	barbershopID, barberID uint,
	span func(loc *time.Location) (time.Time, time.Time),
) ([]dto.AppointmentListDTO, error) {
	if err := actor.RequireStaff(barbershopID); err != nil {
		return nil, err
	}

	shop, err := l.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	start, end := span(timezone.Location(shop.Timezone))
	rows, err := l.repo.ListForPeriod(ctx, barbershopID, barberID, start, end)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(rows), nil
}

type ListAppointmentsByDate struct {
	periodLister
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{periodLister{repo: repo}}
}

// Execute lists one calendar day; only the date part of date is used.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	barbershopID, barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {
	return uc.list(ctx, actor, barbershopID, barberID, func(loc *time.Location) (time.Time, time.Time) {
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	})
}

type ListAppointmentsByMonth struct {
	periodLister
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{periodLister{repo: repo}}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	actor domain.Actor,
	barbershopID, barberID uint,
	year, month int,
) ([]dto.AppointmentListDTO, error) {
	if month < 1 || month > 12 {
		return nil, &domain.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}

	return uc.list(ctx, actor, barbershopID, barberID, func(loc *time.Location) (time.Time, time.Time) {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	})
}
