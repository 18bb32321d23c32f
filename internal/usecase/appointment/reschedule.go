package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

type RescheduleInput struct {
	BarbershopID  uint
	AppointmentID uint

	// BarberID 0 keeps the current barber.
	BarberID uint
	Start    time.Time
}

// Reschedule moves an appointment to a new start and optionally another
// barber. The duration and price snapshot do not change.
type Reschedule struct {
	repo   domain.Repository
	clock  timezone.Clock
	logger *zap.Logger
}

func NewReschedule(repo domain.Repository, clock timezone.Clock, logger *zap.Logger) *Reschedule {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reschedule{repo: repo, clock: clock, logger: logger}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	actor domain.Actor,
	in RescheduleInput,
) (*models.Appointment, error) {

	if err := actor.RequireStaff(in.BarbershopID); err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.BarbershopID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	status := domain.Status(ap.Status)
	if status.IsTerminal() {
		return nil, &domain.InvalidTransitionError{From: status, To: status}
	}

	loc := timezone.Location(shop.Timezone)
	now := uc.clock.Now().In(loc)
	start := in.Start.In(loc)
	if start.Before(now) {
		return nil, &domain.InvalidDateError{Date: start, Today: timezone.StartOfDay(now)}
	}

	barberID := ap.BarberID
	if in.BarberID != 0 && in.BarberID != ap.BarberID {
		barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
		if err != nil {
			return nil, err
		}
		if !barber.Active {
			return nil, &domain.NotFoundError{Resource: "barber", ID: in.BarberID}
		}
		barberID = barber.ID
	}

	end := start.Add(ap.EndTime.Sub(ap.StartTime))
	if err := withinBusinessHours(ctx, uc.repo, in.BarbershopID, start, end); err != nil {
		return nil, err
	}

	previous := ap.StartTime
	ap.BarberID = barberID
	ap.StartTime = start
	ap.EndTime = end

	if err := uc.repo.Reschedule(ctx, ap); err != nil {
		return nil, err
	}

	uc.logger.Info("appointment rescheduled",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.Time("from", previous),
		zap.Time("to", ap.StartTime),
	)

	return ap, nil
}
