package notify

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the sink needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaSink publishes each event to the topic named after its type,
// keyed by appointment id so one appointment's events stay ordered.
type KafkaSink struct {
	writer      MessageWriter
	topicPrefix string
}

func NewKafkaWriter(brokers string) *kafka.Writer {
	return kafka.NewWriter(kafka.WriterConfig{
		Brokers:  SplitBrokers(brokers),
		Balancer: &kafka.Hash{},
	})
}

func NewKafkaSink(writer MessageWriter, topicPrefix string) *KafkaSink {
	return &KafkaSink{writer: writer, topicPrefix: topicPrefix}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Send(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, kafka.Message{
		Topic: s.topicPrefix + string(ev.Type),
		Key:   []byte(strconv.FormatUint(uint64(ev.AppointmentID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.ID)},
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
