package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler processes one message. It must not fail: the listener commits
// the offset as soon as it returns.
type Handler func(ctx context.Context, msg kafka.Message)

// Binding ties a topic to its handler inside a consumer group.
type Binding struct {
	Topic   string
	GroupID string
	Handle  Handler
}

// MessageSource is a group reader for a single topic.
type MessageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SourceFactory opens a reader for topic in groupID.
type SourceFactory func(topic, groupID string) MessageSource

// Listener runs bindings until its context is cancelled. Each binding gets
// `concurrency` readers in the same group; the broker splits the topic's
// partitions between them, so a partition is always read by one goroutine in
// order while different partitions and topics proceed in parallel.
type Listener struct {
	newSource   SourceFactory
	concurrency int
	retryDelay  time.Duration
	log         *zap.Logger
}

func NewListener(newSource SourceFactory, concurrency int, log *zap.Logger) *Listener {
	if concurrency < 1 {
		concurrency = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Listener{
		newSource:   newSource,
		concurrency: concurrency,
		retryDelay:  time.Second,
		log:         log,
	}
}

// Run blocks until ctx is done and every reader is closed.
func (l *Listener) Run(ctx context.Context, bindings ...Binding) error {
	if len(bindings) == 0 {
		return fmt.Errorf("listener: no bindings")
	}

	for _, b := range bindings {
		if b.Handle == nil {
			return fmt.Errorf("listener: topic %q has no handler", b.Topic)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, b := range bindings {
		for worker := 0; worker < l.concurrency; worker++ {
			b, worker := b, worker
			g.Go(func() error {
				return l.serve(ctx, b, worker)
			})
		}
	}
	return g.Wait()
}

func (l *Listener) serve(ctx context.Context, b Binding, worker int) error {
	src := l.newSource(b.Topic, b.GroupID)
	defer func() {
		if err := src.Close(); err != nil {
			l.log.Error("failed to close reader", zap.String("topic", b.Topic), zap.Error(err))
		}
	}()

	log := l.log.With(zap.String("topic", b.Topic), zap.String("group_id", b.GroupID), zap.Int("worker", worker))
	log.Info("Listener started")

	for {
		msg, err := src.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Listener stopped")
				return nil
			}
			log.Error("failed to fetch message", zap.Error(err))
			select {
			case <-ctx.Done():
				log.Info("Listener stopped")
				return nil
			case <-time.After(l.retryDelay):
			}
			continue
		}

		messagesReceived.WithLabelValues(b.Topic).Inc()
		log.Debug("Received message", zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

		b.Handle(ctx, msg)

		if err := src.CommitMessages(ctx, msg); err != nil {
			log.Error("failed to commit kafka message",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}
