package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

// SeedDemo loads a small barbershop so the memory driver is usable for
// local development.
func SeedDemo(s *Store) models.Barbershop {
	shop := s.AddBarbershop(models.Barbershop{
		Name:                    "Barbearia Demo",
		Slug:                    "demo",
		Timezone:                timezone.DefaultTimezone,
		CancellationLeadMinutes: 120,
	})

	s.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte", DurationMin: 30, Price: decimal.RequireFromString("45.00"), Active: true})
	s.AddService(models.Service{BarbershopID: shop.ID, Name: "Corte + Barba", DurationMin: 60, Price: decimal.RequireFromString("70.00"), Active: true})
	s.AddBarber(models.Barber{BarbershopID: shop.ID, Name: "João", Active: true})
	s.AddBarber(models.Barber{BarbershopID: shop.ID, Name: "Carlos", Active: true})

	var days []models.BusinessHours
	for wd := 0; wd < 7; wd++ {
		wh := models.BusinessHours{Weekday: wd, OpenTime: "09:00", CloseTime: "19:00", LunchStart: "12:00", LunchEnd: "13:00"}
		if wd == 0 {
			wh = models.BusinessHours{Weekday: wd, Closed: true}
		}
		days = append(days, wh)
	}
	_ = s.ReplaceBusinessHours(context.Background(), shop.ID, days)

	return shop
}
