package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
	ucappointment "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/appointment"
)

const (
	DefaultSessionTTL = 30 * time.Minute

	// submitLockTTL bounds how long a crashed submit can hold a session.
	submitLockTTL = 30 * time.Second
)

// Session is what the customer sees of a wizard between requests.
type Session struct {
	ID string `json:"session_id"`
	booking.Snapshot
}

// Service persists booking wizards in a SessionStore and runs their
// transitions against the live availability and the appointment store.
type Service struct {
	catalog      domain.Catalog
	sessions     booking.SessionStore
	availability *ucappointment.GetAvailability
	create       *ucappointment.CreateAppointment
	ttl          time.Duration
	logger       *zap.Logger
}

func NewService(
	catalog domain.Catalog,
	sessions booking.SessionStore,
	availability *ucappointment.GetAvailability,
	create *ucappointment.CreateAppointment,
	ttl time.Duration,
	logger *zap.Logger,
) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:      catalog,
		sessions:     sessions,
		availability: availability,
		create:       create,
		ttl:          ttl,
		logger:       logger,
	}
}

// ======================================================
// Adapters
// ======================================================

type slotFinder struct {
	uc           *ucappointment.GetAvailability
	barbershopID uint
	serviceID    uint
}

func (f slotFinder) FindSlots(ctx context.Context, barberID uint, date time.Time) ([]time.Time, error) {
	return f.uc.Execute(ctx, domain.AvailabilityInput{
		BarbershopID: f.barbershopID,
		BarberID:     barberID,
		ServiceID:    f.serviceID,
		Date:         date,
	})
}

type booker struct {
	uc    *ucappointment.CreateAppointment
	actor domain.Actor
}

func (b booker) Book(ctx context.Context, req booking.Request) (uint, error) {
	ap, err := b.uc.Execute(ctx, b.actor, ucappointment.CreateAppointmentInput{
		BarbershopID: req.BarbershopID,
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		CustomerID:   req.CustomerID,
		Start:        req.Start,
		Notes:        req.Notes,
	})
	if err != nil {
		return 0, err
	}
	return ap.ID, nil
}

func (s *Service) finder(w *booking.Wizard) booking.SlotFinder {
	return slotFinder{uc: s.availability, barbershopID: w.BarbershopID, serviceID: w.ServiceID}
}

// ======================================================
// Session plumbing
// ======================================================

func (s *Service) load(ctx context.Context, actor domain.Actor, id string) (*booking.Wizard, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, booking.ErrSessionNotFound
	}

	snap, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsCustomer() || snap.CustomerID != actor.ID || snap.BarbershopID != actor.BarbershopID {
		return nil, &domain.ForbiddenError{Reason: "booking session belongs to another customer"}
	}

	return booking.Restore(snap)
}

// save persists w and hands back the session together with actionErr, so
// a rejected action still records its problem for the next read. A session
// removed meanwhile (submitted or abandoned) is not brought back.
func (s *Service) save(ctx context.Context, id string, w *booking.Wizard, actionErr error) (Session, error) {
	snap := w.Snapshot()
	if err := s.sessions.SaveIfExists(ctx, id, snap, s.ttl); err != nil {
		return Session{}, err
	}
	return Session{ID: id, Snapshot: snap}, actionErr
}

// ======================================================
// Operations
// ======================================================

// Start opens a wizard for an active service of the customer's barbershop.
func (s *Service) Start(ctx context.Context, actor domain.Actor, barbershopID, serviceID uint) (Session, error) {
	if !actor.IsCustomer() {
		return Session{}, &domain.ForbiddenError{Reason: "customers only"}
	}
	if actor.BarbershopID != barbershopID {
		return Session{}, &domain.ForbiddenError{Reason: "other barbershop"}
	}

	service, err := s.catalog.GetService(ctx, barbershopID, serviceID)
	if err != nil {
		return Session{}, err
	}
	if !service.Active {
		return Session{}, &domain.NotFoundError{Resource: "service", ID: serviceID}
	}

	id := uuid.NewString()
	w := booking.New(barbershopID, serviceID, actor.ID)

	s.logger.Debug("booking session started",
		zap.String("session_id", id),
		zap.Uint("barbershop_id", barbershopID),
		zap.Uint("service_id", serviceID),
	)

	snap := w.Snapshot()
	if err := s.sessions.Save(ctx, id, snap, s.ttl); err != nil {
		return Session{}, err
	}
	return Session{ID: id, Snapshot: snap}, nil
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (Session, error) {
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: id, Snapshot: w.Snapshot()}, nil
}

func (s *Service) ChooseBarber(ctx context.Context, actor domain.Actor, id string, barberID uint) (Session, error) {
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}

	if barberID != 0 {
		barber, err := s.catalog.GetBarber(ctx, w.BarbershopID, barberID)
		if err == nil && !barber.Active {
			err = &domain.NotFoundError{Resource: "barber", ID: barberID}
		}
		if err != nil {
			return Session{}, err
		}
	}

	return s.save(ctx, id, w, w.ChooseBarber(barberID))
}

// ChooseDate takes a YYYY-MM-DD date in the barbershop timezone.
func (s *Service) ChooseDate(ctx context.Context, actor domain.Actor, id, date string) (Session, error) {
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}

	shop, err := s.catalog.GetBarbershopByID(ctx, w.BarbershopID)
	if err != nil {
		return Session{}, err
	}

	day, err := timezone.ParseDate(shop.Timezone, date)
	if err != nil {
		return Session{}, &domain.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}

	return s.save(ctx, id, w, w.ChooseDate(ctx, s.finder(w), day))
}

// ChooseTime takes the slot as HH:MM on the chosen date.
func (s *Service) ChooseTime(ctx context.Context, actor domain.Actor, id, clock, notes string) (Session, error) {
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}

	cur, ok := w.Step().(booking.SelectTime)
	if !ok {
		return s.save(ctx, id, w, w.ChooseTime(time.Time{}, notes))
	}

	shop, err := s.catalog.GetBarbershopByID(ctx, w.BarbershopID)
	if err != nil {
		return Session{}, err
	}

	loc := timezone.Location(shop.Timezone)
	slot, err := timezone.ParseDateTime(shop.Timezone, cur.Date.In(loc).Format(timezone.DateLayout), clock)
	if err != nil {
		return Session{}, &domain.ValidationError{Field: "time", Reason: "expected HH:MM"}
	}

	return s.save(ctx, id, w, w.ChooseTime(slot, notes))
}

func (s *Service) Back(ctx context.Context, actor domain.Actor, id string) (Session, error) {
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}
	return s.save(ctx, id, w, w.Back())
}

// Submit is the single commit point. Submits of one session are
// exclusive: a concurrent one gets ErrSubmitInProgress, a later one finds
// the session gone. A successful submit removes the session; a conflict
// leaves it on SelectTime with fresh slots.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, id string) (Session, error) {
	if _, err := s.load(ctx, actor, id); err != nil {
		return Session{}, err
	}

	locked, err := s.sessions.Lock(ctx, id, submitLockTTL)
	if err != nil {
		return Session{}, err
	}
	if !locked {
		return Session{}, booking.ErrSubmitInProgress
	}
	defer func() {
		if uerr := s.sessions.Unlock(context.WithoutCancel(ctx), id); uerr != nil {
			s.logger.Warn("failed to release booking session", zap.String("session_id", id), zap.Error(uerr))
		}
	}()

	// reload under the lock: the previous holder may have finished
	w, err := s.load(ctx, actor, id)
	if err != nil {
		return Session{}, err
	}

	err = w.Submit(ctx, booker{uc: s.create, actor: actor}, s.finder(w))
	if err != nil {
		if domain.IsSlotConflict(err) {
			s.logger.Info("booking lost slot race",
				zap.String("session_id", id),
				zap.String("step", string(w.Step().Name())),
			)
		}
		return s.save(ctx, id, w, err)
	}

	if derr := s.sessions.Delete(ctx, id); derr != nil && !errors.Is(derr, booking.ErrSessionNotFound) {
		s.logger.Warn("failed to delete booking session", zap.String("session_id", id), zap.Error(derr))
	}
	return Session{ID: id, Snapshot: w.Snapshot()}, nil
}

// Abandon drops the session. Nothing was committed before submit, so
// there is nothing to undo.
func (s *Service) Abandon(ctx context.Context, actor domain.Actor, id string) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, id)
}
