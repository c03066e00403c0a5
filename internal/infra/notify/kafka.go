package notify

import (
	"context"
	"encoding/json"
	"time"

	"parkspot/internal/pkg/config"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes booking lifecycle events to a Kafka topic. Consumers
// (email, push, audit) are out of process.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, func() error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	p := &KafkaPublisher{writer: writer, topic: cfg.BookingEventsTopic}
	return p, writer.Close
}

func (p *KafkaPublisher) Publish(ctx context.Context, event commands.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal booking event")
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.BookingID.String()),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrap(err, "failed to publish booking event")
	}
	return nil
}
