package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

type SlotDTO struct {
	Time     string    `json:"time"`
	StartsAt time.Time `json:"starts_at"`
}

func FromSlots(slots []time.Time) []SlotDTO {
	out := make([]SlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, SlotDTO{Time: s.Format("15:04"), StartsAt: s})
	}
	return out
}

type ServiceDTO struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `json:"price"`
}

func FromServices(services []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Category:    s.Category,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}
	return out
}

type BarberDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

func FromBarbers(barbers []models.Barber) []BarberDTO {
	out := make([]BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, BarberDTO{ID: b.ID, Name: b.Name, AvatarURL: b.AvatarURL, Bio: b.Bio})
	}
	return out
}
