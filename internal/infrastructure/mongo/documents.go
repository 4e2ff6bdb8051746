package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
)

// Identifiers are stored as their canonical string form and dates with
// millisecond precision, the resolution of a BSON datetime.

type likeDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ImageID   string    `bson:"imageId"`
	IsAdded   bool      `bson:"isAdded"`
	Timestamp time.Time `bson:"timestamp"`
	EventType string    `bson:"eventType"`
}

type commentDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	ImageID   string    `bson:"imageId"`
	CommentID string    `bson:"commentId"`
	IsCreated bool      `bson:"isCreated"`
	Content   string    `bson:"content"`
	Timestamp time.Time `bson:"timestamp"`
	EventType string    `bson:"eventType"`
}

func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func encodeLike(e activity.LikeEvent) likeDocument {
	return likeDocument{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		ImageID:   e.ImageID.String(),
		IsAdded:   e.IsAdded,
		Timestamp: storedTime(e.Timestamp),
		EventType: e.EventType,
	}
}

func decodeLike(d likeDocument) (activity.LikeEvent, error) {
	ids, err := parseIDs(d.ID, d.UserID, d.ImageID)
	if err != nil {
		return activity.LikeEvent{}, fmt.Errorf("decode like document %q: %w", d.ID, err)
	}
	return activity.LikeEvent{
		ID:        ids[0],
		UserID:    ids[1],
		ImageID:   ids[2],
		IsAdded:   d.IsAdded,
		Timestamp: d.Timestamp.UTC(),
		EventType: d.EventType,
	}, nil
}

func encodeComment(e activity.CommentEvent) commentDocument {
	return commentDocument{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		ImageID:   e.ImageID.String(),
		CommentID: e.CommentID.String(),
		IsCreated: e.IsCreated,
		Content:   e.Content,
		Timestamp: storedTime(e.Timestamp),
		EventType: e.EventType,
	}
}

func decodeComment(d commentDocument) (activity.CommentEvent, error) {
	ids, err := parseIDs(d.ID, d.UserID, d.ImageID, d.CommentID)
	if err != nil {
		return activity.CommentEvent{}, fmt.Errorf("decode comment document %q: %w", d.ID, err)
	}
	return activity.CommentEvent{
		ID:        ids[0],
		UserID:    ids[1],
		ImageID:   ids[2],
		CommentID: ids[3],
		IsCreated: d.IsCreated,
		Content:   d.Content,
		Timestamp: d.Timestamp.UTC(),
		EventType: d.EventType,
	}, nil
}

func parseIDs(values ...string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", v, err)
		}
		ids[i] = id
	}
	return ids, nil
}
