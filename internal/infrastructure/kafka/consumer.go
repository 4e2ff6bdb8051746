package kafka

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReaderConfig describes one group reader.
type ReaderConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// StartOffset is used only when the group has no committed offset yet:
	// "earliest" (default) or "latest".
	StartOffset string
}

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(cfg ReaderConfig) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		Dialer:      &kafka.Dialer{Timeout: 10 * time.Second},
		StartOffset: startOffset(cfg.StartOffset),
	})
	return &Consumer{reader: r}
}

// startOffset maps "latest" to kafka.LastOffset. Anything else reads from
// the beginning of the partition.
func startOffset(name string) int64 {
	if strings.EqualFold(strings.TrimSpace(name), "latest") {
		return kafka.LastOffset
	}
	return kafka.FirstOffset
}

func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.reader.FetchMessage(ctx)
}

func (c *Consumer) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	return c.reader.CommitMessages(ctx, msgs...)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
