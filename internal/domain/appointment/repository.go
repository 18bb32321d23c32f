package appointment

import (
	"context"
	"time"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// Catalog is the read side owned by the catalog provider. Lookups return a
// *NotFoundError when the record does not exist for the barbershop.
type Catalog interface {
	// -------- Barbershop --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)

	// -------- Service --------
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)
	ListActiveServices(ctx context.Context, barbershopID uint) ([]models.Service, error)

	// -------- Barber --------
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
	ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error)

	// -------- Business hours --------
	GetBusinessHours(ctx context.Context, barbershopID uint, weekday int) (*models.BusinessHours, error)
	ListBusinessHours(ctx context.Context, barbershopID uint) ([]models.BusinessHours, error)
	ReplaceBusinessHours(ctx context.Context, barbershopID uint, hours []models.BusinessHours) error
}

// Store is the authoritative appointment persistence. Implementations must
// make CreateAppointment and Reschedule an atomic check-and-write against
// the barber's non-cancelled appointments and answer with a
// *SlotConflictError when the interval is taken.
type Store interface {
	// -------- Customer --------
	GetOrCreateCustomer(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Customer, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	Reschedule(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)

	// UpdateStatus persists ap.Status and its timestamps only if the stored
	// status is still from. Otherwise it returns an *InvalidTransitionError
	// carrying the current stored status.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error

	DeleteAppointment(ctx context.Context, barbershopID, appointmentID uint) error

	// -------- Availability --------
	// ListActiveForBarber returns non-cancelled appointments overlapping
	// [start, end), ordered by start time.
	ListActiveForBarber(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error)

	// ListForPeriod returns every appointment of the barbershop starting in
	// [start, end) with customer, service and barber preloaded. barberID 0
	// means all barbers.
	ListForPeriod(ctx context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Appointment, error)
}

type Repository interface {
	Catalog
	Store
}
