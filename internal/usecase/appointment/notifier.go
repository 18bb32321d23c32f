package appointment

import (
	"context"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
)

// Notifier is the fire-and-forget side of the notification dispatcher.
type Notifier interface {
	Dispatch(ev notify.Event) string
}

type nopNotifier struct{}

func (nopNotifier) Dispatch(notify.Event) string { return "" }

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func appointmentEvent(t notify.EventType, actor domain.Actor, ap *models.Appointment) notify.Event {
	return notify.Event{
		Type:          t,
		BarbershopID:  ap.BarbershopID,
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,
		CustomerID:    ap.CustomerID,
		ActorID:       actor.ID,
		ActorRole:     string(actor.Role),
		Start:         ap.StartTime,
	}
}

// authorize lets staff of the shop through, and customers only into the
// shop their token was issued for.
func authorize(actor domain.Actor, barbershopID uint) error {
	if actor.IsCustomer() {
		if actor.BarbershopID != barbershopID {
			return &domain.ForbiddenError{Reason: "other barbershop"}
		}
		return nil
	}
	return actor.RequireStaff(barbershopID)
}

// loadActive fetches the service and barber and hides inactive ones.
func loadActive(
	ctx context.Context,
	repo domain.Catalog,
	barbershopID, serviceID, barberID uint,
) (*models.Service, *models.Barber, error) {
	service, err := repo.GetService(ctx, barbershopID, serviceID)
	if err != nil {
		return nil, nil, err
	}
	if !service.Active {
		return nil, nil, &domain.NotFoundError{Resource: "service", ID: serviceID}
	}

	barber, err := repo.GetBarber(ctx, barbershopID, barberID)
	if err != nil {
		return nil, nil, err
	}
	if !barber.Active {
		return nil, nil, &domain.NotFoundError{Resource: "barber", ID: barberID}
	}
	return service, barber, nil
}
