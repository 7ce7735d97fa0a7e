package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaSink produces one JSON message per envelope.
type KafkaSink struct {
	writer messageWriter
}

// NewKafkaSink creates a producer for topic on brokers.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, env Envelope) error {
	msg, err := serializeToMessage(env)
	if err != nil {
		return err
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", env.ID, err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

func serializeToMessage(env Envelope) (kafkago.Message, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize envelope: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(env.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "location", Value: []byte(env.Observation.LocationName)},
			{Key: "submitted_at", Value: []byte(env.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}
