package notify

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeReminderDeliver = "reminder:deliver"

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderQueueSink hands ReminderRequested events to the delivery
// workers through an asynq queue. Other event types are ignored.
type ReminderQueueSink struct {
	client TaskEnqueuer
	queue  string
}

func NewReminderQueueSink(client TaskEnqueuer, queue string) *ReminderQueueSink {
	if queue == "" {
		queue = "default"
	}
	return &ReminderQueueSink{client: client, queue: queue}
}

func (s *ReminderQueueSink) Name() string { return "asynq" }

func (s *ReminderQueueSink) Send(ctx context.Context, ev Event) error {
	if ev.Type != ReminderRequested {
		return nil
	}

	task, opts, err := NewReminderTask(ev)
	if err != nil {
		return err
	}
	opts = append(opts, asynq.Queue(s.queue))

	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

// NewReminderTask builds the delivery task for ev. The event id doubles as
// the task id so a retried dispatch is deduplicated by the queue.
func NewReminderTask(ev Event) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReminderDeliver, b)
	opts := []asynq.Option{asynq.TaskID(ev.ID), asynq.MaxRetry(5)}

	return task, opts, nil
}
