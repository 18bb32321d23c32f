package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	input := func(f *fixture, date time.Time) domain.AvailabilityInput {
		return domain.AvailabilityInput{BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID, Date: date}
	}

	t.Run("full day skips lunch", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetAvailability(f.store, f.clock(0, 7, 0))

		slots, err := uc.Execute(ctx, input(f, f.at(1, 0, 0)))
		require.NoError(t, err)

		want := []time.Time{
			f.at(1, 9, 0), f.at(1, 10, 0), f.at(1, 11, 0),
			f.at(1, 13, 0), f.at(1, 14, 0), f.at(1, 15, 0), f.at(1, 16, 0), f.at(1, 17, 0),
		}
		require.Len(t, slots, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(slots[i]), "slot %d: want %s got %s", i, want[i], slots[i])
		}
	})

	t.Run("booked slot disappears and cancelled slot returns", func(t *testing.T) {
		f := newFixture(t)
		ap := f.book(t, f.barber.ID, f.at(1, 10, 0))
		uc := NewGetAvailability(f.store, f.clock(0, 7, 0))

		slots, err := uc.Execute(ctx, input(f, f.at(1, 0, 0)))
		require.NoError(t, err)
		assert.False(t, domain.ContainsSlot(slots, f.at(1, 10, 0)))
		assert.True(t, domain.ContainsSlot(slots, f.at(1, 11, 0)))

		_, err = NewUpdateStatus(f.store, nil, f.clock(0, 7, 0), nil).Execute(ctx, f.staff, f.shop.ID, ap.ID, domain.StatusCancelled)
		require.NoError(t, err)

		slots, err = uc.Execute(ctx, input(f, f.at(1, 0, 0)))
		require.NoError(t, err)
		assert.True(t, domain.ContainsSlot(slots, f.at(1, 10, 0)))
	})

	t.Run("other barber stays free", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.barber.ID, f.at(1, 10, 0))
		uc := NewGetAvailability(f.store, f.clock(0, 7, 0))

		in := input(f, f.at(1, 0, 0))
		in.BarberID = f.other.ID
		slots, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.True(t, domain.ContainsSlot(slots, f.at(1, 10, 0)))
	})

	t.Run("today drops past slots", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetAvailability(f.store, f.clock(0, 10, 30))

		slots, err := uc.Execute(ctx, input(f, f.at(0, 0, 0)))
		require.NoError(t, err)
		require.NotEmpty(t, slots)
		assert.True(t, f.at(0, 11, 0).Equal(slots[0]))
	})

	t.Run("past date", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetAvailability(f.store, f.clock(1, 8, 0))

		_, err := uc.Execute(ctx, input(f, f.at(0, 0, 0)))
		assert.True(t, domain.IsInvalidDate(err))
	})

	t.Run("closed day is empty", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetAvailability(f.store, f.clock(0, 8, 0))

		slots, err := uc.Execute(ctx, input(f, f.at(6, 0, 0)))
		require.NoError(t, err)
		assert.NotNil(t, slots)
		assert.Empty(t, slots)
	})

	t.Run("inactive service and barber are not found", func(t *testing.T) {
		f := newFixture(t)
		uc := NewGetAvailability(f.store, f.clock(0, 8, 0))

		svc := f.service
		svc.Active = false
		f.store.SetService(svc)
		_, err := uc.Execute(ctx, input(f, f.at(1, 0, 0)))
		assert.True(t, domain.IsNotFound(err))

		f.store.SetService(f.service)
		f.store.SetBarber(models.Barber{ID: f.barber.ID, BarbershopID: f.shop.ID, Name: "João"})
		_, err = uc.Execute(ctx, input(f, f.at(1, 0, 0)))
		assert.True(t, domain.IsNotFound(err))
	})
}
