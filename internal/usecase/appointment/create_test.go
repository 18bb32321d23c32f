package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/httperr"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
)

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("customer books for themselves", func(t *testing.T) {
		f := newFixture(t)
		ap, err := f.creator(f.clock(0, 8, 0)).Execute(ctx, f.buyer, CreateAppointmentInput{
			BarbershopID: f.shop.ID,
			BarberID:     f.barber.ID,
			ServiceID:    f.service.ID,
			Start:        f.at(1, 10, 0),
			Notes:        "degradê",
		})
		require.NoError(t, err)

		assert.NotZero(t, ap.ID)
		assert.Equal(t, f.customer.ID, ap.CustomerID)
		assert.Equal(t, string(domain.StatusScheduled), ap.Status)
		assert.True(t, f.at(1, 11, 0).Equal(ap.EndTime))
		assert.True(t, decimal.RequireFromString("50").Equal(ap.Price))

		events := f.notifier.Events()
		require.Len(t, events, 1)
		assert.Equal(t, notify.AppointmentCreated, events[0].Type)
		assert.Equal(t, ap.ID, events[0].AppointmentID)
		assert.Equal(t, string(domain.RoleCustomer), events[0].ActorRole)
	})

	t.Run("overlap is a slot conflict", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.barber.ID, f.at(1, 10, 0))

		_, err := f.creator(f.clock(0, 8, 0)).Execute(ctx, f.staff, CreateAppointmentInput{
			BarbershopID: f.shop.ID,
			BarberID:     f.barber.ID,
			ServiceID:    f.service.ID,
			CustomerID:   f.customer.ID,
			Start:        f.at(1, 10, 30),
		})
		assert.True(t, domain.IsSlotConflict(err))
		assert.Len(t, f.notifier.Events(), 1)
	})

	t.Run("back to back is allowed", func(t *testing.T) {
		f := newFixture(t)
		f.book(t, f.barber.ID, f.at(1, 10, 0))
		f.book(t, f.barber.ID, f.at(1, 11, 0))
	})

	t.Run("past start", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.creator(f.clock(0, 11, 0)).Execute(ctx, f.buyer, CreateAppointmentInput{
			BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID, Start: f.at(0, 10, 0),
		})
		assert.True(t, domain.IsInvalidDate(err))
	})

	t.Run("outside business hours", func(t *testing.T) {
		f := newFixture(t)
		uc := f.creator(f.clock(0, 8, 0))

		for _, start := range []struct{ day, hh, mm int }{{1, 8, 0}, {1, 17, 30}, {1, 11, 30}, {6, 10, 0}} {
			_, err := uc.Execute(ctx, f.buyer, CreateAppointmentInput{
				BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
				Start: f.at(start.day, start.hh, start.mm),
			})
			assert.True(t, httperr.IsBusiness(err, "outside_business_hours"), "%v", start)
		}
	})

	t.Run("customer cannot book for someone else", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.creator(f.clock(0, 8, 0)).Execute(ctx, f.buyer, CreateAppointmentInput{
			BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
			CustomerID: f.customer.ID + 100, Start: f.at(1, 10, 0),
		})
		var forbidden *domain.ForbiddenError
		assert.ErrorAs(t, err, &forbidden)
	})

	t.Run("staff walk-in creates the customer", func(t *testing.T) {
		f := newFixture(t)
		uc := f.creator(f.clock(0, 8, 0))

		ap, err := uc.Execute(ctx, f.staff, CreateAppointmentInput{
			BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
			CustomerName: " Bruno ", CustomerPhone: "11988887777", Start: f.at(1, 14, 0),
		})
		require.NoError(t, err)
		assert.NotEqual(t, f.customer.ID, ap.CustomerID)

		_, err = uc.Execute(ctx, f.staff, CreateAppointmentInput{
			BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID, Start: f.at(1, 15, 0),
		})
		var validation *domain.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("staff of another shop is forbidden", func(t *testing.T) {
		f := newFixture(t)
		outsider := domain.Actor{ID: 9, BarbershopID: f.shop.ID + 1, Role: domain.RoleBarber}
		_, err := f.creator(f.clock(0, 8, 0)).Execute(ctx, outsider, CreateAppointmentInput{
			BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
			CustomerID: f.customer.ID, Start: f.at(1, 10, 0),
		})
		var forbidden *domain.ForbiddenError
		assert.ErrorAs(t, err, &forbidden)
	})

	t.Run("price snapshot survives service price change", func(t *testing.T) {
		f := newFixture(t)
		ap := f.book(t, f.barber.ID, f.at(1, 10, 0))

		svc := f.service
		svc.Price = decimal.RequireFromString("80.00")
		f.store.SetService(svc)

		stored, err := f.store.GetAppointment(ctx, f.shop.ID, ap.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("50").Equal(stored.Price))
	})
}

func TestCreateAppointment_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	uc := f.creator(f.clock(0, 8, 0))

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), f.staff, CreateAppointmentInput{
				BarbershopID: f.shop.ID, BarberID: f.barber.ID, ServiceID: f.service.ID,
				CustomerID: f.customer.ID, Start: f.at(1, 10, 0),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case domain.IsSlotConflict(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}
