package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

// CancelAppointment cancels on behalf of a customer or staff. Customers may
// only cancel their own appointments and only outside the lead window.
type CancelAppointment struct {
	repo     domain.Repository
	notifier Notifier
	policy   domain.CancellationPolicy
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	notifier Notifier,
	policy domain.CancellationPolicy,
	clock timezone.Clock,
	logger *zap.Logger,
) *CancelAppointment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CancelAppointment{
		repo:     repo,
		notifier: notifierOrNop(notifier),
		policy:   policy,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	if err := authorize(actor, barbershopID); err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, err
	}

	if actor.IsCustomer() && ap.CustomerID != actor.ID {
		return nil, &domain.ForbiddenError{Reason: "not your appointment"}
	}

	// terminal states answer with the transition error before the window
	if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusCancelled); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := uc.policy.ForShop(shop).Check(ap, actor.Role, now); err != nil {
		return nil, err
	}

	return transition(ctx, uc.repo, uc.notifier, uc.logger, actor, ap, domain.StatusCancelled, now)
}
