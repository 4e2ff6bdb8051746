package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes JSON activity events to one topic, keyed by image id so
// events about the same image land on the same partition.
type Publisher struct {
	topic  string
	writer messageWriter
}

func NewPublisher(cfg Config) *Publisher {
	return &Publisher{
		topic: cfg.Topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.Topic,
			Balancer:               &kafka.Hash{},
			MaxAttempts:            5,
			ReadTimeout:            10 * time.Second,
			WriteTimeout:           10 * time.Second,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish encodes event as JSON and returns the bytes written.
func (p *Publisher) Publish(ctx context.Context, key uuid.UUID, event any) ([]byte, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode event for %s: %w", p.topic, err)
	}
	msg := kafka.Message{Key: []byte(key.String()), Value: value}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to write message to %s: %w", p.topic, err)
	}
	return value, nil
}

func (p *Publisher) Topic() string {
	return p.topic
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
