// Package kafka provides an eventstream publisher backed by Apache Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/parleyco/parley/pkg/eventstream"
)

// Config is the configuration options for the Kafka publisher.
type Config struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string

	// Topic is the topic turn events are published to.
	Topic string
}

// Publisher publishes turn events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Kafka-backed eventstream publisher.
func NewPublisher(c Config) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if c.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(c.Brokers...),
			Topic:    c.Topic,
			Balancer: &kafka.LeastBytes{},
		},
	}, nil
}

// PublishTurn marshals the event and writes it to the topic, keyed by
// turn ID so all events for one turn land on the same partition.
func (p *Publisher) PublishTurn(ctx context.Context, event *eventstream.TurnRecordedEvent) error {
	if event == nil {
		return eventstream.ErrNilTurnEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal turn event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Turn.ID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to publish turn event: %w", err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
