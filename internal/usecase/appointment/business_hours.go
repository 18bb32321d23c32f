package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

type BusinessHours struct {
	repo domain.Repository
}

func NewBusinessHours(repo domain.Repository) *BusinessHours {
	return &BusinessHours{repo: repo}
}

func (uc *BusinessHours) List(ctx context.Context, actor domain.Actor, barbershopID uint) ([]models.BusinessHours, error) {
	if err := actor.RequireStaff(barbershopID); err != nil {
		return nil, err
	}
	return uc.repo.ListBusinessHours(ctx, barbershopID)
}

// Replace swaps the whole weekly schedule. Weekdays missing from hours are
// treated as closed by availability.
func (uc *BusinessHours) Replace(
	ctx context.Context,
	actor domain.Actor,
	barbershopID uint,
	hours []models.BusinessHours,
) ([]models.BusinessHours, error) {

	if err := actor.RequireStaff(barbershopID); err != nil {
		return nil, err
	}

	seen := map[int]bool{}
	for i := range hours {
		wh := &hours[i]
		if seen[wh.Weekday] {
			return nil, &domain.ValidationError{Field: "weekday", Reason: fmt.Sprintf("duplicated weekday %d", wh.Weekday)}
		}
		seen[wh.Weekday] = true

		if err := validateDay(wh); err != nil {
			return nil, err
		}
		wh.BarbershopID = barbershopID
	}

	if err := uc.repo.ReplaceBusinessHours(ctx, barbershopID, hours); err != nil {
		return nil, err
	}
	return uc.repo.ListBusinessHours(ctx, barbershopID)
}

func validateDay(wh *models.BusinessHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return &domain.ValidationError{Field: "weekday", Reason: "must be between 0 and 6"}
	}
	if wh.Closed {
		return nil
	}

	open, err := clock("open_time", wh.OpenTime)
	if err != nil {
		return err
	}
	closing, err := clock("close_time", wh.CloseTime)
	if err != nil {
		return err
	}
	if !closing.After(open) {
		return &domain.ValidationError{Field: "close_time", Reason: "must be after open_time"}
	}

	if wh.LunchStart == "" && wh.LunchEnd == "" {
		return nil
	}
	ls, err := clock("lunch_start", wh.LunchStart)
	if err != nil {
		return err
	}
	le, err := clock("lunch_end", wh.LunchEnd)
	if err != nil {
		return err
	}
	if !le.After(ls) || ls.Before(open) || le.After(closing) {
		return &domain.ValidationError{Field: "lunch_start", Reason: "lunch must fit inside opening hours"}
	}
	return nil
}

func clock(field, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Reason: "expected HH:MM"}
	}
	return t, nil
}
