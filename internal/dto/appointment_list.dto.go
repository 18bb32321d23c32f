package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Status       string          `json:"status"`
	Price        decimal.Decimal `json:"price"`
	Notes        string          `json:"notes,omitempty"`
	BarberID     uint            `json:"barber_id"`
	BarberName   string          `json:"barber_name"`
	CustomerName string          `json:"customer_name"`
	ServiceName  string          `json:"service_name"`
}

// FromAppointment flattens ap for listings. Deleted barbers, services or
// customers show up with empty names.
func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		Price:        ap.Price,
		Notes:        ap.Notes,
		BarberID:     ap.BarberID,
		BarberName:   ap.Barber.Name,
		CustomerName: ap.Customer.Name,
		ServiceName:  ap.Service.Name,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
