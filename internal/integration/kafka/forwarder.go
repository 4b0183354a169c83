// Package kafka forwards leads domain events from the in-process bus to a
// Kafka topic so downstream consumers (CRM sync, analytics) can follow the
// pipeline without polling the API.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"leadscout_backend/internal/events"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the forwarder needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// envelope is the JSON document written to the topic.
type envelope struct {
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type Forwarder struct {
	writer  MessageWriter
	timeout time.Duration
	log     *logger.Logger
}

// NewWriter builds a synchronous writer for the configured topic. Messages
// with the same key land on the same partition.
func NewWriter(cfg config.KafkaConfig) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.GetKafkaBrokers()...),
		Topic:        cfg.GetKafkaTopic(),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        false,
	}
}

func NewForwarder(writer MessageWriter, log *logger.Logger) *Forwarder {
	return &Forwarder{writer: writer, timeout: 5 * time.Second, log: log}
}

// Register subscribes the forwarder to every leads event.
func (f *Forwarder) Register(bus events.Bus) {
	events.SubscribeAll(bus, f)
}

// Handle implements events.Handler.
func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("forward %s: %w", event.EventName(), err)
	}
	f.log.Debug("event forwarded", slog.String("event", event.EventName()), slog.String("key", string(msg.Key)))
	return nil
}

func (f *Forwarder) Close() error {
	return f.writer.Close()
}

func encode(event events.Event) (kafkago.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}
	value, err := json.Marshal(envelope{
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encode %s: %w", event.EventName(), err)
	}

	msg := kafkago.Message{
		Value: value,
		Time:  event.OccurredAt(),
		Headers: []kafkago.Header{
			{Key: "event", Value: []byte(event.EventName())},
		},
	}
	if keyed, ok := event.(events.Keyed); ok {
		msg.Key = []byte(keyed.PartitionKey())
	}
	return msg, nil
}
