package notify

import (
	"context"

	"go.uber.org/zap"
)

type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Send(_ context.Context, ev Event) error {
	s.logger.Info("appointment notification",
		zap.String("event_id", ev.ID),
		zap.String("event_type", string(ev.Type)),
		zap.Uint("barbershop_id", ev.BarbershopID),
		zap.Uint("appointment_id", ev.AppointmentID),
		zap.String("from", ev.FromStatus),
		zap.String("to", ev.ToStatus),
	)
	return nil
}
