package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint

	// CustomerID is forced to the actor for customers. Staff either pass
	// it or the contact fields below for a walk-in.
	CustomerID    uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Start time.Time
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier Notifier
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier Notifier,
	clock timezone.Clock,
	logger *zap.Logger,
) *CreateAppointment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateAppointment{
		repo:     repo,
		notifier: notifierOrNop(notifier),
		clock:    clock,
		logger:   logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := authorize(actor, in.BarbershopID); err != nil {
		return nil, err
	}
	if actor.IsCustomer() {
		if in.CustomerID != 0 && in.CustomerID != actor.ID {
			return nil, &domain.ForbiddenError{Reason: "customers book for themselves"}
		}
		in.CustomerID = actor.ID
	}

	// --------------------------------------------------
	// 1️⃣ Barbershop / start time
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	now := uc.clock.Now().In(loc)
	start := in.Start.In(loc)
	if start.Before(now) {
		return nil, &domain.InvalidDateError{Date: start, Today: timezone.StartOfDay(now)}
	}

	// --------------------------------------------------
	// 2️⃣ Service / barber
	// --------------------------------------------------
	service, _, err := loadActive(ctx, uc.repo, in.BarbershopID, in.ServiceID, in.BarberID)
	if err != nil {
		return nil, err
	}
	end := start.Add(service.Duration())

	// --------------------------------------------------
	// 3️⃣ Business hours + lunch
	// --------------------------------------------------
	if err := uc.checkBusinessHours(ctx, in.BarbershopID, start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Customer
	// --------------------------------------------------
	customerID, err := uc.resolveCustomer(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Insert (the store checks conflicts)
	// --------------------------------------------------
	ap := domain.NewAppointment(in.BarbershopID, in.BarberID, customerID, service, start, in.Notes)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Notification
	// --------------------------------------------------
	eventID := uc.notifier.Dispatch(appointmentEvent(notify.AppointmentCreated, actor, ap))
	uc.logger.Info("appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", ap.BarberID),
		zap.Time("start", ap.StartTime),
		zap.String("event_id", eventID),
	)

	return ap, nil
}

func (uc *CreateAppointment) checkBusinessHours(ctx context.Context, barbershopID uint, start, end time.Time) error {
	return withinBusinessHours(ctx, uc.repo, barbershopID, start, end)
}

func (uc *CreateAppointment) resolveCustomer(ctx context.Context, in CreateAppointmentInput) (uint, error) {
	if in.CustomerID != 0 {
		return in.CustomerID, nil
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return 0, &domain.ValidationError{Field: "customer_name", Reason: "required"}
	}

	customer, err := uc.repo.GetOrCreateCustomer(ctx, in.BarbershopID, name, strings.TrimSpace(in.CustomerPhone), strings.TrimSpace(in.CustomerEmail))
	if err != nil {
		return 0, err
	}
	return customer.ID, nil
}

func withinBusinessHours(ctx context.Context, repo domain.Catalog, barbershopID uint, start, end time.Time) error {
	hours, err := repo.GetBusinessHours(ctx, barbershopID, int(start.Weekday()))
	if err != nil {
		if domain.IsNotFound(err) {
			return httperr.ErrBusiness("outside_business_hours")
		}
		return err
	}

	ok, err := domain.IsWithinBusinessHours(hours, start, end)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("outside_business_hours")
	}
	return nil
}
