package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
	"github.com/max3tmk/ImageGallery/activity/internal/domain/event"
)

// Topic and group names used by the image service.
const (
	DefaultLikeTopic    = "image-like-events"
	DefaultCommentTopic = "image-comment-events"
	DefaultGroupID      = "activity-group"
)

// ActivityConsumer turns inbound like/comment messages into stored records.
//
// Every failure, whether the payload cannot be decoded, a required field is
// missing or the store rejects the insert, is logged and swallowed. The
// message counts as handled and its offset is committed, so a failed save is
// lost with only a log line and a dropped-events metric as a trace.
type ActivityConsumer struct {
	likes    activity.LikeEventStore
	comments activity.CommentEventStore
	log      *zap.Logger
	now      func() time.Time
}

func NewActivityConsumer(likes activity.LikeEventStore, comments activity.CommentEventStore, log *zap.Logger) *ActivityConsumer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityConsumer{
		likes:    likes,
		comments: comments,
		log:      log,
		now:      time.Now,
	}
}

// Bindings returns the topic handlers this consumer serves, all in groupID.
func (c *ActivityConsumer) Bindings(likeTopic, commentTopic, groupID string) []Binding {
	return []Binding{
		{Topic: likeTopic, GroupID: groupID, Handle: c.HandleLikeMessage},
		{Topic: commentTopic, GroupID: groupID, Handle: c.HandleCommentMessage},
	}
}

// HandleLikeMessage decodes a like-event payload and consumes it.
func (c *ActivityConsumer) HandleLikeMessage(ctx context.Context, msg kafka.Message) {
	var dto event.LikeEventDto
	if err := json.Unmarshal(msg.Value, &dto); err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeLike, stageDecode).Inc()
		c.log.Error("Failed to process LikeEvent: undecodable payload",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}
	c.ConsumeLikeEvent(ctx, dto)
}

func (c *ActivityConsumer) HandleCommentMessage(ctx context.Context, msg kafka.Message) {
	var dto event.CommentEventDto
	if err := json.Unmarshal(msg.Value, &dto); err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeComment, stageDecode).Inc()
		c.log.Error("Failed to process CommentEvent: undecodable payload",
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return
	}
	c.ConsumeCommentEvent(ctx, dto)
}

// ConsumeLikeEvent stores one LikeEvent built from dto. It never fails.
func (c *ActivityConsumer) ConsumeLikeEvent(ctx context.Context, dto event.LikeEventDto) {
	started := time.Now()
	stage := stageMap
	defer func() {
		c.finish(activity.EventTypeLike, started, stage, recover())
	}()

	likeEvent, err := likeEventFrom(dto, c.now())
	if err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeLike, stageMap).Inc()
		c.log.Error("Failed to process LikeEvent", zap.Error(err))
		return
	}

	stage = stageStore
	if _, err := c.likes.Save(ctx, likeEvent); err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeLike, stageStore).Inc()
		c.log.Error("Failed to process LikeEvent",
			zap.Stringer("userId", dto.UserID),
			zap.Stringer("imageId", dto.ImageID),
			zap.Error(err),
		)
		return
	}

	eventsStored.WithLabelValues(activity.EventTypeLike).Inc()
	c.log.Info("Saved LikeEvent",
		zap.Stringer("userId", dto.UserID),
		zap.Stringer("imageId", dto.ImageID),
		zap.Bool("added", dto.Added),
	)
}

// ConsumeCommentEvent stores one CommentEvent built from dto, with absent
// content stored as "". It never fails.
func (c *ActivityConsumer) ConsumeCommentEvent(ctx context.Context, dto event.CommentEventDto) {
	started := time.Now()
	stage := stageMap
	defer func() {
		c.finish(activity.EventTypeComment, started, stage, recover())
	}()

	commentEvent, err := commentEventFrom(dto, c.now())
	if err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeComment, stageMap).Inc()
		c.log.Error("Failed to process CommentEvent", zap.Error(err))
		return
	}

	stage = stageStore
	if _, err := c.comments.Save(ctx, commentEvent); err != nil {
		eventsDropped.WithLabelValues(activity.EventTypeComment, stageStore).Inc()
		c.log.Error("Failed to process CommentEvent",
			zap.Stringer("userId", dto.UserID),
			zap.Stringer("imageId", dto.ImageID),
			zap.Stringer("commentId", dto.CommentID),
			zap.Error(err),
		)
		return
	}

	eventsStored.WithLabelValues(activity.EventTypeComment).Inc()
	c.log.Info("Saved CommentEvent",
		zap.Stringer("userId", dto.UserID),
		zap.Stringer("imageId", dto.ImageID),
		zap.Stringer("commentId", dto.CommentID),
	)
}

// finish records how long an event took, whatever the outcome, and turns a
// panic raised at stage into a dropped event so the listener keeps running.
// recovered must come from a recover() call in the deferred function itself.
func (c *ActivityConsumer) finish(eventType string, started time.Time, stage string, recovered any) {
	handleDuration.WithLabelValues(eventType).Observe(time.Since(started).Seconds())
	if recovered == nil {
		return
	}
	eventsDropped.WithLabelValues(eventType, stage).Inc()
	c.log.Error("Failed to process "+eventTypeName(eventType),
		zap.String("stage", stage),
		zap.Error(fmt.Errorf("panic: %v", recovered)),
	)
}

func eventTypeName(eventType string) string {
	if eventType == activity.EventTypeComment {
		return "CommentEvent"
	}
	return "LikeEvent"
}
