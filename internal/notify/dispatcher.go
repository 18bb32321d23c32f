package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultQueueSize = 100
	sendTimeout      = 5 * time.Second
)

// Sink delivers events to one downstream channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to its sinks on a background worker. Dispatch
// never blocks: when the queue is full the event is dropped, and sink
// failures are only logged.
type Dispatcher struct {
	sinks  []Sink
	logger *zap.Logger
	queue  chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(logger *zap.Logger, size int, sinks ...Sink) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dispatcher{
		sinks:  sinks,
		logger: logger,
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
			if err := s.Send(ctx, ev); err != nil {
				d.logger.Warn("notification sink failed",
					zap.String("sink", s.Name()),
					zap.String("event_id", ev.ID),
					zap.String("event_type", string(ev.Type)),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

// Dispatch queues ev and returns its id, assigning one when empty.
func (d *Dispatcher) Dispatch(ev Event) string {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("notification dispatcher closed, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("event_type", string(ev.Type)),
		)
		return ev.ID
	}

	select {
	case d.queue <- ev:
	default:
		// queue full: drop, never fail the caller
		d.logger.Warn("notification queue full, dropping event",
			zap.String("event_id", ev.ID),
			zap.String("event_type", string(ev.Type)),
		)
	}
	return ev.ID
}

// Close stops accepting events and waits for the queue to drain or ctx to
// expire. Events dispatched after Close are dropped.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
