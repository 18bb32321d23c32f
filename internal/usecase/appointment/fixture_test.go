package appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/infra/memory"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/notify"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Dispatch(ev notify.Event) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	ev.ID = fmt.Sprintf("evt-%d", len(n.events)+1)
	n.events = append(n.events, ev)
	return ev.ID
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	loc      *time.Location

	shop     models.Barbershop
	service  models.Service
	barber   models.Barber
	other    models.Barber
	customer models.Customer

	staff domain.Actor
	buyer domain.Actor
}

// newFixture builds a shop open Mon-Sat 09:00-18:00 with lunch 12:00-13:00,
// one 60 minute service and two barbers.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	loc := timezone.Location(timezone.DefaultTimezone)
	s := memory.New()

	f := &fixture{store: s, notifier: &recordingNotifier{}, loc: loc}
	f.shop = s.AddBarbershop(models.Barbershop{Name: "Navalha", Slug: "navalha", Timezone: timezone.DefaultTimezone, CancellationLeadMinutes: 120})
	f.service = s.AddService(models.Service{BarbershopID: f.shop.ID, Name: "Corte", DurationMin: 60, Price: decimal.RequireFromString("50.00"), Active: true})
	f.barber = s.AddBarber(models.Barber{BarbershopID: f.shop.ID, Name: "João", Active: true})
	f.other = s.AddBarber(models.Barber{BarbershopID: f.shop.ID, Name: "Carlos", Active: true})
	f.customer = s.AddCustomer(models.Customer{BarbershopID: f.shop.ID, Name: "Ana", Phone: "11999990000"})

	var hours []models.BusinessHours
	for wd := 1; wd <= 6; wd++ {
		hours = append(hours, models.BusinessHours{Weekday: wd, OpenTime: "09:00", CloseTime: "18:00", LunchStart: "12:00", LunchEnd: "13:00"})
	}
	hours = append(hours, models.BusinessHours{Weekday: 0, Closed: true})
	require.NoError(t, s.ReplaceBusinessHours(context.Background(), f.shop.ID, hours))

	f.staff = domain.Actor{ID: 1, BarbershopID: f.shop.ID, Role: domain.RoleOwner}
	f.buyer = domain.Actor{ID: f.customer.ID, BarbershopID: f.shop.ID, Role: domain.RoleCustomer}
	return f
}

// at returns 2026-03-02 (a Monday) plus dayOffset days at hh:mm shop time.
func (f *fixture) at(dayOffset, hh, mm int) time.Time {
	return time.Date(2026, time.March, 2+dayOffset, hh, mm, 0, 0, f.loc)
}

func (f *fixture) clock(dayOffset, hh, mm int) timezone.Clock {
	return timezone.Fixed(f.at(dayOffset, hh, mm))
}

func (f *fixture) creator(now timezone.Clock) *CreateAppointment {
	return NewCreateAppointment(f.store, f.notifier, now, nil)
}

func (f *fixture) book(t *testing.T, barberID uint, start time.Time) *models.Appointment {
	t.Helper()
	ap, err := f.creator(timezone.Fixed(start.Add(-24*time.Hour))).Execute(context.Background(), f.buyer, CreateAppointmentInput{
		BarbershopID: f.shop.ID,
		BarberID:     barberID,
		ServiceID:    f.service.ID,
		Start:        start,
	})
	require.NoError(t, err)
	return ap
}
