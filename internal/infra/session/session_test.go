package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
)

func sampleSnapshot() booking.Snapshot {
	day := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	return booking.Snapshot{
		BarbershopID: 1,
		ServiceID:    2,
		CustomerID:   3,
		Step:         booking.StepSelectTime,
		BarberID:     4,
		Date:         day,
		Slots:        []time.Time{day.Add(9 * time.Hour), day.Add(10 * time.Hour)},
	}
}

func exerciseStore(t *testing.T, store booking.SessionStore) {
	ctx := context.Background()
	id := uuid.NewString()

	_, err := store.Load(ctx, id)
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, id, want, time.Minute))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, want.Step, got.Step)
	assert.Equal(t, want.BarberID, got.BarberID)
	require.Len(t, got.Slots, 2)
	assert.True(t, want.Slots[1].Equal(got.Slots[1]))

	next := want
	next.Step = booking.StepConfirm
	require.NoError(t, store.SaveIfExists(ctx, id, next, time.Minute))
	got, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, booking.StepConfirm, got.Step)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)

	// a deleted session stays deleted
	assert.ErrorIs(t, store.SaveIfExists(ctx, id, next, time.Minute), booking.ErrSessionNotFound)
	_, err = store.Load(ctx, id)
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)

	ok, err := store.Lock(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.Lock(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Unlock(ctx, id))
	ok, err = store.Lock(ctx, id, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, store.Unlock(ctx, id))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)

	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "s1", sampleSnapshot(), time.Minute))

	now = now.Add(59 * time.Second)
	_, err := store.Load(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, booking.ErrSessionNotFound)
	assert.ErrorIs(t, store.SaveIfExists(ctx, "s1", sampleSnapshot(), time.Minute), booking.ErrSessionNotFound)

	ok, err := store.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	now = now.Add(time.Minute)
	ok, err = store.Lock(ctx, "s1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired submit mark is reusable")
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	exerciseStore(t, NewRedisStore(client))
}
