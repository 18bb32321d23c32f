package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/models"
)

// Store keeps catalog and appointments in process memory. A single mutex
// makes every check-and-write atomic, which gives the same no-overlap
// guarantee as the Postgres exclusion constraint.
type Store struct {
	mu sync.RWMutex

	shops        map[uint]models.Barbershop
	services     map[uint]models.Service
	barbers      map[uint]models.Barber
	hours        map[uint]map[int]models.BusinessHours
	customers    map[uint]models.Customer
	appointments map[uint]models.Appointment

	nextID uint
	now    func() time.Time
}

func New() *Store {
	return &Store{
		shops:        map[uint]models.Barbershop{},
		services:     map[uint]models.Service{},
		barbers:      map[uint]models.Barber{},
		hours:        map[uint]map[int]models.BusinessHours{},
		customers:    map[uint]models.Customer{},
		appointments: map[uint]models.Appointment{},
		now:          time.Now,
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (s *Store) AddBarbershop(shop models.Barbershop) models.Barbershop {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shop.ID == 0 {
		shop.ID = s.id()
	}
	s.shops[shop.ID] = shop
	return shop
}

func (s *Store) AddService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == 0 {
		svc.ID = s.id()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddBarber(b models.Barber) models.Barber {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.barbers[b.ID] = b
	return b
}

func (s *Store) AddCustomer(c models.Customer) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.id()
	}
	s.customers[c.ID] = c
	return c
}

// SetService replaces a catalog service, e.g. to deactivate it.
func (s *Store) SetService(svc models.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
}

func (s *Store) SetBarber(b models.Barber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barbers[b.ID] = b
}

// RemoveBarber drops a barber from the catalog, leaving its appointments.
func (s *Store) RemoveBarber(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.barbers, id)
}

// --------------------------------------------------
// Barbershop
// --------------------------------------------------

func (s *Store) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shop, ok := s.shops[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "barbershop", ID: id}
	}
	return &shop, nil
}

func (s *Store) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, shop := range s.shops {
		if shop.Slug == slug {
			return &shop, nil
		}
	}
	return nil, &domain.NotFoundError{Resource: "barbershop"}
}

// --------------------------------------------------
// Service / Barber
// --------------------------------------------------

func (s *Store) GetService(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svc, ok := s.services[serviceID]
	if !ok || svc.BarbershopID != barbershopID {
		return nil, &domain.NotFoundError{Resource: "service", ID: serviceID}
	}
	return &svc, nil
}

func (s *Store) ListActiveServices(_ context.Context, barbershopID uint) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Service{}
	for _, svc := range s.services {
		if svc.BarbershopID == barbershopID && svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.barbers[barberID]
	if !ok || b.BarbershopID != barbershopID {
		return nil, &domain.NotFoundError{Resource: "barber", ID: barberID}
	}
	return &b, nil
}

func (s *Store) ListActiveBarbers(_ context.Context, barbershopID uint) ([]models.Barber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Barber{}
	for _, b := range s.barbers {
		if b.BarbershopID == barbershopID && b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (s *Store) GetBusinessHours(_ context.Context, barbershopID uint, weekday int) (*models.BusinessHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wh, ok := s.hours[barbershopID][weekday]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "business_hours"}
	}
	return &wh, nil
}

func (s *Store) ListBusinessHours(_ context.Context, barbershopID uint) ([]models.BusinessHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.BusinessHours{}
	for _, wh := range s.hours[barbershopID] {
		out = append(out, wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) ReplaceBusinessHours(_ context.Context, barbershopID uint, hours []models.BusinessHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	days := map[int]models.BusinessHours{}
	for _, wh := range hours {
		wh.BarbershopID = barbershopID
		if wh.ID == 0 {
			wh.ID = s.id()
		}
		days[wh.Weekday] = wh
	}
	s.hours[barbershopID] = days
	return nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (s *Store) GetOrCreateCustomer(_ context.Context, barbershopID uint, name, phone, email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Customer{ID: s.id(), BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	s.customers[c.ID] = c
	return &c, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (s *Store) conflictLocked(barberID, exceptID uint, r domain.TimeRange) bool {
	for _, ap := range s.appointments {
		if ap.ID == exceptID || ap.BarberID != barberID || !domain.Status(ap.Status).Active() {
			continue
		}
		if r.Overlaps(domain.Interval(&ap)) {
			return true
		}
	}
	return false
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflictLocked(ap.BarberID, 0, domain.Interval(ap)) {
		return &domain.SlotConflictError{BarberID: ap.BarberID, Start: ap.StartTime, End: ap.EndTime}
	}

	now := s.now()
	ap.ID = s.id()
	ap.CreatedAt, ap.UpdatedAt = now, now
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) Reschedule(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.appointments[ap.ID]
	if !ok {
		return &domain.NotFoundError{Resource: "appointment", ID: ap.ID}
	}
	if s.conflictLocked(ap.BarberID, ap.ID, domain.Interval(ap)) {
		return &domain.SlotConflictError{BarberID: ap.BarberID, Start: ap.StartTime, End: ap.EndTime}
	}

	cur.BarberID, cur.StartTime, cur.EndTime = ap.BarberID, ap.StartTime, ap.EndTime
	cur.UpdatedAt = s.now()
	s.appointments[ap.ID] = cur
	*ap = cur
	return nil
}

func (s *Store) GetAppointment(_ context.Context, barbershopID, appointmentID uint) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ap, ok := s.appointments[appointmentID]
	if !ok || ap.BarbershopID != barbershopID {
		return nil, &domain.NotFoundError{Resource: "appointment", ID: appointmentID}
	}
	return &ap, nil
}

func (s *Store) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.appointments[ap.ID]
	if !ok {
		return &domain.NotFoundError{Resource: "appointment", ID: ap.ID}
	}
	if cur.Status != string(from) {
		return &domain.InvalidTransitionError{From: domain.Status(cur.Status), To: domain.Status(ap.Status)}
	}

	cur.Status = ap.Status
	cur.ConfirmedAt, cur.CompletedAt, cur.CancelledAt = ap.ConfirmedAt, ap.CompletedAt, ap.CancelledAt
	cur.UpdatedAt = s.now()
	s.appointments[ap.ID] = cur
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, barbershopID, appointmentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[appointmentID]
	if !ok || ap.BarbershopID != barbershopID {
		return &domain.NotFoundError{Resource: "appointment", ID: appointmentID}
	}
	delete(s.appointments, appointmentID)
	return nil
}

func (s *Store) ListActiveForBarber(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	window := domain.TimeRange{Start: start, End: end}
	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.BarberID == barberID && domain.Status(ap.Status).Active() && window.Overlaps(domain.Interval(&ap)) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListForPeriod(_ context.Context, barbershopID, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appointment{}
	for _, ap := range s.appointments {
		if ap.BarbershopID != barbershopID || (barberID != 0 && ap.BarberID != barberID) {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		// orphaned references stay zero-valued
		ap.Customer = s.customers[ap.CustomerID]
		ap.Service = s.services[ap.ServiceID]
		ap.Barber = s.barbers[ap.BarberID]
		out = append(out, ap)
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool {
		if aps[i].StartTime.Equal(aps[j].StartTime) {
			return aps[i].ID < aps[j].ID
		}
		return aps[i].StartTime.Before(aps[j].StartTime)
	})
}

var _ domain.Repository = (*Store)(nil)
