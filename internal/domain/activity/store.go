package activity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned by FindByID when no record has the identifier.
var ErrNotFound = errors.New("activity record not found")

// LikeEventStore persists like events. Save only inserts; a record without
// an ID gets one assigned before the insert.
type LikeEventStore interface {
	Save(ctx context.Context, e LikeEvent) (LikeEvent, error)
	FindByID(ctx context.Context, id uuid.UUID) (LikeEvent, error)
	// FindAll is an unordered full scan.
	FindAll(ctx context.Context) ([]LikeEvent, error)
}

type CommentEventStore interface {
	Save(ctx context.Context, e CommentEvent) (CommentEvent, error)
	FindByID(ctx context.Context, id uuid.UUID) (CommentEvent, error)
	FindAll(ctx context.Context) ([]CommentEvent, error)
}

// WithDefaults fills a missing identifier and pins the event type to the
// model's constant. Stores call it before inserting.
func (e LikeEvent) WithDefaults() LikeEvent {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.EventType = EventTypeLike
	return e
}

func (e CommentEvent) WithDefaults() CommentEvent {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	e.EventType = EventTypeComment
	return e
}
