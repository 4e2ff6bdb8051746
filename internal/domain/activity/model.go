package activity

import (
	"time"

	"github.com/google/uuid"
)

// Event type tags stored with every record.
const (
	EventTypeLike    = "LIKE"
	EventTypeComment = "COMMENT"
)

// LikeEvent is a stored "like added/removed" fact. Records are never updated.
type LikeEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ImageID   uuid.UUID `json:"imageId"`
	IsAdded   bool      `json:"isAdded"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"eventType"`
}

// NewLikeEvent builds a record with a fresh ID.
// A zero timestamp is replaced by the current UTC time.
func NewLikeEvent(userID, imageID uuid.UUID, isAdded bool, timestamp time.Time) LikeEvent {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return LikeEvent{
		ID:        uuid.New(),
		UserID:    userID,
		ImageID:   imageID,
		IsAdded:   isAdded,
		Timestamp: timestamp.UTC(),
		EventType: EventTypeLike,
	}
}

// CommentEvent is a stored "comment created/removed" fact.
type CommentEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ImageID   uuid.UUID `json:"imageId"`
	CommentID uuid.UUID `json:"commentId"`
	IsCreated bool      `json:"isCreated"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	EventType string    `json:"eventType"`
}

func NewCommentEvent(userID, imageID, commentID uuid.UUID, isCreated bool, content string, timestamp time.Time) CommentEvent {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	return CommentEvent{
		ID:        uuid.New(),
		UserID:    userID,
		ImageID:   imageID,
		CommentID: commentID,
		IsCreated: isCreated,
		Content:   content,
		Timestamp: timestamp.UTC(),
		EventType: EventTypeComment,
	}
}
