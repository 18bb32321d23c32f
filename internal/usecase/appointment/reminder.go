package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
)

// ReminderAck acknowledges that a reminder was handed to the dispatcher.
// Delivery itself is best-effort.
type ReminderAck struct {
	AppointmentID uint   `json:"appointment_id"`
	EventID       string `json:"event_id"`
}

type RequestReminder struct {
	repo     domain.Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewRequestReminder(repo domain.Repository, notifier Notifier, logger *zap.Logger) *RequestReminder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestReminder{repo: repo, notifier: notifierOrNop(notifier), logger: logger}
}

func (uc *RequestReminder) Execute(
	ctx context.Context,
	actor domain.Actor,
	barbershopID uint,
	appointmentID uint,
) (ReminderAck, error) {

	if err := actor.RequireStaff(barbershopID); err != nil {
		return ReminderAck{}, err
	}

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return ReminderAck{}, err
	}

	if domain.Status(ap.Status).IsTerminal() {
		return ReminderAck{}, &domain.ValidationError{Field: "status", Reason: "appointment is " + ap.Status}
	}

	eventID := uc.notifier.Dispatch(appointmentEvent(notify.ReminderRequested, actor, ap))
	uc.logger.Info("reminder requested",
		zap.Uint("appointment_id", ap.ID),
		zap.String("event_id", eventID),
	)

	return ReminderAck{AppointmentID: ap.ID, EventID: eventID}, nil
}
