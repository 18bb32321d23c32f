package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

// UpdateStatus moves an appointment through the status machine on behalf
// of shop staff. Customer cancellations go through CancelAppointment.
type UpdateStatus struct {
	repo     domain.Repository
	notifier Notifier
	clock    timezone.Clock
	logger   *zap.Logger
}

func NewUpdateStatus(
	repo domain.Repository,
	notifier Notifier,
	clock timezone.Clock,
	logger *zap.Logger,
) *UpdateStatus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpdateStatus{
		repo:     repo,
		notifier: notifierOrNop(notifier),
		clock:    clock,
		logger:   logger,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor domain.Actor,
	barbershopID uint,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	if err := actor.RequireStaff(barbershopID); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, err
	}

	return transition(ctx, uc.repo, uc.notifier, uc.logger, actor, ap, target, uc.clock.Now())
}

// transition applies target and persists it with a compare-and-set on the
// previous status, so two concurrent transitions cannot both win.
func transition(
	ctx context.Context,
	store domain.Store,
	notifier Notifier,
	logger *zap.Logger,
	actor domain.Actor,
	ap *models.Appointment,
	target domain.Status,
	now time.Time,
) (*models.Appointment, error) {

	from := domain.Status(ap.Status)
	if err := domain.Apply(ap, target, now); err != nil {
		return nil, err
	}

	if err := store.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	ev := appointmentEvent(notify.StatusChanged, actor, ap)
	ev.FromStatus = string(from)
	ev.ToStatus = string(target)
	eventID := notifier.Dispatch(ev)

	logger.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
		zap.String("actor_role", string(actor.Role)),
		zap.String("event_id", eventID),
	)

	return ap, nil
}
