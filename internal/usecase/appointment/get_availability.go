package appointment

import (
	"context"
	"time"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock}
}

// Execute lists the free slot starts of a barber for one service on one
// calendar day. The date is read in the barbershop timezone. The result is
// advisory; the store decides on booking.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]time.Time, error) {

	// --------------------------------------------------
	// Barbershop / date
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	day := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	now := uc.clock.Now().In(loc)
	today := timezone.StartOfDay(now)
	if day.Before(today) {
		return nil, &domain.InvalidDateError{Date: day, Today: today}
	}

	// --------------------------------------------------
	// Service / barber
	// --------------------------------------------------
	service, _, err := loadActive(ctx, uc.repo, in.BarbershopID, in.ServiceID, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Expediente
	// --------------------------------------------------
	hours, err := uc.repo.GetBusinessHours(ctx, in.BarbershopID, int(day.Weekday()))
	if err != nil {
		if domain.IsNotFound(err) {
			return []time.Time{}, nil
		}
		return nil, err
	}

	sched, open, err := domain.ResolveDay(hours, day)
	if err != nil {
		return nil, err
	}
	if !open {
		return []time.Time{}, nil
	}

	// --------------------------------------------------
	// Agendamentos existentes
	// --------------------------------------------------
	appointments, err := uc.repo.ListActiveForBarber(ctx, in.BarberID, sched.Open.Start, sched.Open.End)
	if err != nil {
		return nil, err
	}

	busy := sched.Busy()
	for i := range appointments {
		busy = append(busy, domain.Interval(&appointments[i]))
	}

	return domain.AvailableSlots(sched.Open, service.Duration(), busy, now), nil
}
