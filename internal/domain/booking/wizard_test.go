package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
)

var day = time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

func slot(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

type fakeFinder struct {
	findFunc func(ctx context.Context, barberID uint, date time.Time) ([]time.Time, error)
	calls    int
}

func (f *fakeFinder) FindSlots(ctx context.Context, barberID uint, date time.Time) ([]time.Time, error) {
	f.calls++
	if f.findFunc != nil {
		return f.findFunc(ctx, barberID, date)
	}
	return []time.Time{slot(9), slot(10), slot(11)}, nil
}

type fakeBooker struct {
	bookFunc func(ctx context.Context, req Request) (uint, error)
	requests []Request
}

func (b *fakeBooker) Book(ctx context.Context, req Request) (uint, error) {
	b.requests = append(b.requests, req)
	if b.bookFunc != nil {
		return b.bookFunc(ctx, req)
	}
	return 99, nil
}

func wizardAtConfirm(t *testing.T, finder SlotFinder) *Wizard {
	t.Helper()
	w := New(1, 2, 3)
	require.NoError(t, w.ChooseBarber(5))
	require.NoError(t, w.ChooseDate(context.Background(), finder, day))
	require.NoError(t, w.ChooseTime(slot(10), "fade"))
	return w
}

func TestWizard_HappyPath(t *testing.T) {
	finder := &fakeFinder{}
	booker := &fakeBooker{}
	w := New(1, 2, 3)

	assert.Equal(t, StepSelectBarber, w.Step().Name())
	require.NoError(t, w.ChooseBarber(5))
	assert.Equal(t, SelectDate{BarberID: 5}, w.Step())

	require.NoError(t, w.ChooseDate(context.Background(), finder, day))
	sel, ok := w.Step().(SelectTime)
	require.True(t, ok)
	assert.Len(t, sel.Slots, 3)

	require.NoError(t, w.ChooseTime(slot(10), "fade"))
	assert.Equal(t, StepConfirm, w.Step().Name())

	require.NoError(t, w.Submit(context.Background(), booker, finder))
	require.Len(t, booker.requests, 1)
	assert.Equal(t, Request{
		BarbershopID: 1, BarberID: 5, ServiceID: 2, CustomerID: 3, Start: slot(10), Notes: "fade",
	}, booker.requests[0])

	done, ok := w.Step().(Submitted)
	require.True(t, ok)
	assert.Equal(t, uint(99), done.AppointmentID)
	assert.True(t, w.Done())
}

func TestWizard_RequiresBarber(t *testing.T) {
	w := New(1, 2, 3)

	err := w.ChooseBarber(0)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepSelectBarber, w.Step().Name())
	assert.NotEmpty(t, w.Problem())
}

func TestWizard_NoSlotsStaysOnSelectDate(t *testing.T) {
	finder := &fakeFinder{findFunc: func(context.Context, uint, time.Time) ([]time.Time, error) {
		return []time.Time{}, nil
	}}
	w := New(1, 2, 3)
	require.NoError(t, w.ChooseBarber(5))

	err := w.ChooseDate(context.Background(), finder, day)
	assert.ErrorIs(t, err, ErrNoSlots)
	assert.Equal(t, SelectDate{BarberID: 5}, w.Step())
}

func TestWizard_InvalidDateStaysOnSelectDate(t *testing.T) {
	finder := &fakeFinder{findFunc: func(context.Context, uint, time.Time) ([]time.Time, error) {
		return nil, &domain.InvalidDateError{Date: day, Today: day.AddDate(0, 0, 1)}
	}}
	w := New(1, 2, 3)
	require.NoError(t, w.ChooseBarber(5))

	err := w.ChooseDate(context.Background(), finder, day)
	assert.True(t, domain.IsInvalidDate(err))
	assert.Equal(t, StepSelectDate, w.Step().Name())
}

func TestWizard_RejectsStaleSlot(t *testing.T) {
	w := New(1, 2, 3)
	require.NoError(t, w.ChooseBarber(5))
	require.NoError(t, w.ChooseDate(context.Background(), &fakeFinder{}, day))

	err := w.ChooseTime(slot(15), "")
	assert.ErrorIs(t, err, ErrStaleSlot)
	assert.Equal(t, StepSelectTime, w.Step().Name())
}

func TestWizard_ConflictReturnsToSelectTimeWithFreshSlots(t *testing.T) {
	finder := &fakeFinder{}
	w := wizardAtConfirm(t, finder)

	finder.findFunc = func(context.Context, uint, time.Time) ([]time.Time, error) {
		return []time.Time{slot(9), slot(11)}, nil
	}
	booker := &fakeBooker{bookFunc: func(context.Context, Request) (uint, error) {
		return 0, &domain.SlotConflictError{BarberID: 5, Start: slot(10), End: slot(11)}
	}}

	err := w.Submit(context.Background(), booker, finder)
	assert.True(t, domain.IsSlotConflict(err))
	assert.Len(t, booker.requests, 1, "must not retry with another slot")

	sel, ok := w.Step().(SelectTime)
	require.True(t, ok)
	assert.Equal(t, []time.Time{slot(9), slot(11)}, sel.Slots)
	assert.Equal(t, 2, finder.calls)
}

func TestWizard_ConflictOnFullDayReturnsToSelectDate(t *testing.T) {
	finder := &fakeFinder{}
	w := wizardAtConfirm(t, finder)
	finder.findFunc = func(context.Context, uint, time.Time) ([]time.Time, error) {
		return []time.Time{}, nil
	}
	booker := &fakeBooker{bookFunc: func(context.Context, Request) (uint, error) {
		return 0, &domain.SlotConflictError{}
	}}

	err := w.Submit(context.Background(), booker, finder)
	assert.True(t, domain.IsSlotConflict(err))
	assert.Equal(t, SelectDate{BarberID: 5}, w.Step())
}

func TestWizard_OtherSubmitErrorsKeepConfirm(t *testing.T) {
	w := wizardAtConfirm(t, &fakeFinder{})
	booker := &fakeBooker{bookFunc: func(context.Context, Request) (uint, error) {
		return 0, errors.New("store unavailable")
	}}

	assert.Error(t, w.Submit(context.Background(), booker, &fakeFinder{}))
	assert.Equal(t, StepConfirm, w.Step().Name())
}

func TestWizard_StepGuards(t *testing.T) {
	w := New(1, 2, 3)
	var serr *StepError

	assert.ErrorAs(t, w.ChooseTime(slot(9), ""), &serr)
	assert.ErrorAs(t, w.ChooseDate(context.Background(), &fakeFinder{}, day), &serr)
	assert.ErrorAs(t, w.Submit(context.Background(), &fakeBooker{}, &fakeFinder{}), &serr)
	assert.ErrorAs(t, w.Back(), &serr)

	w = wizardAtConfirm(t, &fakeFinder{})
	require.NoError(t, w.Submit(context.Background(), &fakeBooker{}, &fakeFinder{}))
	assert.ErrorAs(t, w.Back(), &serr)
	assert.ErrorAs(t, w.Submit(context.Background(), &fakeBooker{}, &fakeFinder{}), &serr)
}

func TestWizard_Back(t *testing.T) {
	w := wizardAtConfirm(t, &fakeFinder{})

	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectTime, w.Step().Name())
	require.NoError(t, w.Back())
	assert.Equal(t, SelectDate{BarberID: 5}, w.Step())
	require.NoError(t, w.Back())
	assert.Equal(t, SelectBarber{}, w.Step())
}

func TestSnapshot_RoundTripEveryStep(t *testing.T) {
	finder := &fakeFinder{}
	w := New(1, 2, 3)
	check := func() {
		t.Helper()
		restored, err := Restore(w.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, w.Step(), restored.Step())
		assert.Equal(t, w.Snapshot(), restored.Snapshot())
	}

	check()
	require.NoError(t, w.ChooseBarber(5))
	check()
	require.NoError(t, w.ChooseDate(context.Background(), finder, day))
	check()
	require.NoError(t, w.ChooseTime(slot(11), "beard"))
	check()
	require.NoError(t, w.Submit(context.Background(), &fakeBooker{}, finder))
	check()

	_, err := Restore(Snapshot{Step: "paying"})
	assert.Error(t, err)
}

// calendar is a minimal atomic check-and-insert store shared by many wizards.
type calendar struct {
	mu     sync.Mutex
	booked map[time.Time]uint
	nextID uint
}

func (c *calendar) Book(_ context.Context, req Request) (uint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, taken := c.booked[req.Start]; taken {
		return 0, &domain.SlotConflictError{BarberID: req.BarberID, Start: req.Start}
	}
	c.nextID++
	c.booked[req.Start] = c.nextID
	return c.nextID, nil
}

func (c *calendar) FindSlots(_ context.Context, _ uint, _ time.Time) ([]time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var free []time.Time
	for _, s := range []time.Time{slot(9), slot(10), slot(11)} {
		if _, taken := c.booked[s]; !taken {
			free = append(free, s)
		}
	}
	return free, nil
}

func TestWizard_ConcurrentSubmitCommitsExactlyOnce(t *testing.T) {
	const n = 25
	cal := &calendar{booked: map[time.Time]uint{}}

	wizards := make([]*Wizard, n)
	for i := range wizards {
		wizards[i] = New(1, 2, uint(100+i))
		require.NoError(t, wizards[i].ChooseBarber(5))
		require.NoError(t, wizards[i].ChooseDate(context.Background(), cal, day))
		require.NoError(t, wizards[i].ChooseTime(slot(10), ""))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range wizards {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = wizards[i].Submit(context.Background(), cal, cal)
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for i, err := range errs {
		switch {
		case err == nil:
			ok++
			assert.True(t, wizards[i].Done())
		case domain.IsSlotConflict(err):
			conflicts++
			sel, isSel := wizards[i].Step().(SelectTime)
			require.True(t, isSel)
			assert.NotContains(t, sel.Slots, slot(10))
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}
