// Command publisher sends one like or comment event to the activity topics,
// the way the image service does. Useful for exercising the consumer locally.
//
//	publisher -kind like -user <uuid> -image <uuid> -added=true
//	publisher -kind comment -user <uuid> -image <uuid> -comment <uuid> -content "nice!"
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/max3tmk/ImageGallery/activity/internal/config"
	"github.com/max3tmk/ImageGallery/activity/internal/domain/event"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/kafka"
	"github.com/max3tmk/ImageGallery/activity/internal/logger"
)

func main() {
	kind := flag.String("kind", "like", "event kind: like or comment")
	userID := flag.String("user", "", "user id (random when empty)")
	imageID := flag.String("image", "", "image id (random when empty)")
	commentID := flag.String("comment", "", "comment id (random when empty)")
	added := flag.Bool("added", true, "like added (false = removed)")
	created := flag.Bool("created", true, "comment created (false = removed)")
	content := flag.String("content", "", "comment text; omitted from the message when empty")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	now := event.NewTimestamp(time.Now())

	var (
		topic   string
		key     uuid.UUID
		payload any
	)
	switch *kind {
	case "like":
		dto := event.LikeEventDto{
			UserID:    idOrNew(*userID),
			ImageID:   idOrNew(*imageID),
			Added:     *added,
			Timestamp: now,
		}
		topic, key, payload = cfg.Kafka.LikeTopic, dto.ImageID, dto
	case "comment":
		dto := event.CommentEventDto{
			UserID:    idOrNew(*userID),
			ImageID:   idOrNew(*imageID),
			CommentID: idOrNew(*commentID),
			Created:   *created,
			Timestamp: now,
		}
		if *content != "" {
			dto.Content = content
		}
		topic, key, payload = cfg.Kafka.CommentTopic, dto.ImageID, dto
	default:
		logger.Error("unknown event kind", zap.String("kind", *kind))
		os.Exit(2)
	}

	publisher := kafka.NewPublisher(kafka.Config{Brokers: cfg.Kafka.Brokers, Topic: topic})
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	value, err := publisher.Publish(ctx, key, payload)
	if err != nil {
		logger.Error("failed to publish event", zap.String("topic", topic), zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Published event", zap.String("topic", publisher.Topic()), zap.ByteString("value", value))
}

func idOrNew(s string) uuid.UUID {
	if s == "" {
		return uuid.New()
	}
	id, err := uuid.Parse(s)
	if err != nil {
		logger.Fatal("invalid uuid", zap.String("value", s), zap.Error(err))
	}
	return id
}
