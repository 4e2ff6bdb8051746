package consumer

import (
	"time"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
	"github.com/max3tmk/ImageGallery/activity/internal/domain/event"
)

func likeEventFrom(dto event.LikeEventDto, now time.Time) (activity.LikeEvent, error) {
	if err := dto.Validate(); err != nil {
		return activity.LikeEvent{}, err
	}
	ts := dto.Timestamp.Value()
	if ts.IsZero() {
		ts = now
	}
	return activity.NewLikeEvent(dto.UserID, dto.ImageID, dto.Added, ts), nil
}

func commentEventFrom(dto event.CommentEventDto, now time.Time) (activity.CommentEvent, error) {
	if err := dto.Validate(); err != nil {
		return activity.CommentEvent{}, err
	}
	ts := dto.Timestamp.Value()
	if ts.IsZero() {
		ts = now
	}
	content := ""
	if dto.Content != nil {
		content = *dto.Content
	}
	return activity.NewCommentEvent(dto.UserID, dto.ImageID, dto.CommentID, dto.Created, content, ts), nil
}
