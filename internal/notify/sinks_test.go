package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{}, e.err
}

func sampleEvent(t EventType) Event {
	return Event{
		ID:            "0b6e1c1e-0000-4000-8000-000000000001",
		Type:          t,
		BarbershopID:  1,
		AppointmentID: 42,
		ActorID:       3,
		ActorRole:     "owner",
		Start:         time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC),
		FromStatus:    "scheduled",
		ToStatus:      "confirmed",
		OccurredAt:    time.Date(2026, 6, 30, 9, 0, 0, 0, time.UTC),
	}
}

func TestKafkaSink_Send(t *testing.T) {
	w := &fakeWriter{}
	sink := NewKafkaSink(w, "barbeflow.")

	require.NoError(t, sink.Send(context.Background(), sampleEvent(StatusChanged)))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "barbeflow.appointment.status_changed", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))

	var ev Event
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, "confirmed", ev.ToStatus)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
}

func TestKafkaSink_PropagatesWriterError(t *testing.T) {
	sink := NewKafkaSink(&fakeWriter{err: errors.New("no leader")}, "")
	assert.Error(t, sink.Send(context.Background(), sampleEvent(AppointmentCreated)))
}

func TestReminderQueueSink_OnlyReminders(t *testing.T) {
	q := &fakeEnqueuer{}
	sink := NewReminderQueueSink(q, "")

	require.NoError(t, sink.Send(context.Background(), sampleEvent(AppointmentCreated)))
	require.NoError(t, sink.Send(context.Background(), sampleEvent(ReminderRequested)))

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TypeReminderDeliver, q.tasks[0].Type())
}

func TestAuditRecord(t *testing.T) {
	rec := auditRecord(sampleEvent(StatusChanged))

	assert.Equal(t, uint(1), rec.BarbershopID)
	require.NotNil(t, rec.ActorID)
	assert.Equal(t, uint(3), *rec.ActorID)
	require.NotNil(t, rec.EntityID)
	assert.Equal(t, uint(42), *rec.EntityID)
	assert.Equal(t, "appointment.status_changed", rec.Action)
	assert.Contains(t, rec.Metadata, `"to":"confirmed"`)

	anon := sampleEvent(AppointmentCreated)
	anon.ActorID = 0
	assert.Nil(t, auditRecord(anon).ActorID)
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, SplitBrokers(" a:9092, ,b:9092 "))
	assert.Nil(t, SplitBrokers(""))
}
