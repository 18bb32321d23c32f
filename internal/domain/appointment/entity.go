package appointment

import (
	"time"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Apply moves ap to target and stamps the matching timestamp. The
// appointment is left untouched when the transition is not allowed.
func Apply(ap *models.Appointment, target Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), target); err != nil {
		return err
	}

	ap.Status = string(target)
	switch target {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}

func Confirm(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusConfirmed, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusCompleted, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Apply(ap, StatusCancelled, now)
}

// NewAppointment builds a scheduled appointment for service starting at
// start, snapshotting the service price and duration.
func NewAppointment(
	barbershopID uint,
	barberID uint,
	customerID uint,
	service *models.Service,
	start time.Time,
	notes string,
) *models.Appointment {
	return &models.Appointment{
		BarbershopID: barbershopID,
		BarberID:     barberID,
		CustomerID:   customerID,
		ServiceID:    service.ID,
		StartTime:    start,
		EndTime:      start.Add(service.Duration()),
		Status:       string(InitialStatus()),
		Price:        service.Price,
		Notes:        notes,
	}
}

func Interval(ap *models.Appointment) TimeRange {
	return TimeRange{Start: ap.StartTime, End: ap.EndTime}
}
