package appointment

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
)

// DeleteAppointment hard-deletes an appointment. Staff tooling only;
// customers cancel instead.
type DeleteAppointment struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewDeleteAppointment(repo domain.Repository, logger *zap.Logger) *DeleteAppointment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeleteAppointment{repo: repo, logger: logger}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor domain.Actor, barbershopID, appointmentID uint) error {
	if err := actor.RequireStaff(barbershopID); err != nil {
		return err
	}
	if err := uc.repo.DeleteAppointment(ctx, barbershopID, appointmentID); err != nil {
		return err
	}

	uc.logger.Info("appointment deleted",
		zap.Uint("appointment_id", appointmentID),
		zap.Uint("actor_id", actor.ID),
	)
	return nil
}
