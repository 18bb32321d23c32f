package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: resource, ID: id}
	}
	return err
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// lockBarber serialises writers of one barber's calendar for the rest of
// the transaction. A missing barber row locks nothing; the exclusion
// constraint still holds.
func lockBarber(tx *gorm.DB, barberID uint) error {
	var barber models.Barber
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", barberID).
		First(&barber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func hasTimeConflict(
	tx *gorm.DB,
	barberID uint,
	exceptID uint,
	start time.Time,
	end time.Time,
) (bool, error) {

	var count int64
	if err := tx.
		Model(&models.Appointment{}).
		Where(
			"barber_id = ? AND id <> ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID,
			exceptID,
			string(domain.StatusCancelled),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func conflictError(ap *models.Appointment) error {
	return &domain.SlotConflictError{BarberID: ap.BarberID, Start: ap.StartTime, End: ap.EndTime}
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, ap.BarberID); err != nil {
			return err
		}

		conflict, err := hasTimeConflict(tx, ap.BarberID, 0, ap.StartTime, ap.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return conflictError(ap)
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return conflictError(ap)
	}
	return err
}

func (r *AppointmentGormRepository) Reschedule(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockBarber(tx, ap.BarberID); err != nil {
			return err
		}

		conflict, err := hasTimeConflict(tx, ap.BarberID, ap.ID, ap.StartTime, ap.EndTime)
		if err != nil {
			return err
		}
		if conflict {
			return conflictError(ap)
		}

		res := tx.Model(&models.Appointment{}).
			Where("id = ? AND barbershop_id = ?", ap.ID, ap.BarbershopID).
			Updates(map[string]any{
				"barber_id":  ap.BarberID,
				"start_time": ap.StartTime,
				"end_time":   ap.EndTime,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Resource: "appointment", ID: ap.ID}
		}
		return nil
	})

	if httperr.IsExclusionConflict(err) {
		return conflictError(ap)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment", appointmentID)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND barbershop_id = ? AND status = ?", ap.ID, ap.BarbershopID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"confirmed_at": ap.ConfirmedAt,
			"completed_at": ap.CompletedAt,
			"cancelled_at": ap.CancelledAt,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// lost the race or never existed
	current, err := r.GetAppointment(ctx, ap.BarbershopID, ap.ID)
	if err != nil {
		return err
	}
	return &domain.InvalidTransitionError{
		From: domain.Status(current.Status),
		To:   domain.Status(ap.Status),
	}
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", appointmentID, barbershopID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &domain.NotFoundError{Resource: "appointment", ID: appointmentID}
	}
	return nil
}

// --------------------------------------------------
// Availability / listings
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveForBarber(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			barberID, string(domain.StatusCancelled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForPeriod(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Barber").
		Where(
			"barbershop_id = ? AND start_time >= ? AND start_time < ?",
			barbershopID,
			start,
			end,
		)
	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	if err := q.Order("start_time ASC").Order("id ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
