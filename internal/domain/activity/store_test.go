package activity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
	"github.com/max3tmk/ImageGallery/activity/internal/infrastructure/memory"
)

func TestWithDefaults_PinsEventType(t *testing.T) {
	like := activity.LikeEvent{EventType: activity.EventTypeComment}.WithDefaults()
	if like.EventType != activity.EventTypeLike {
		t.Fatalf("expected LIKE, got %q", like.EventType)
	}
	if like.ID == uuid.Nil {
		t.Fatalf("expected an assigned id")
	}

	comment := activity.CommentEvent{EventType: "like"}.WithDefaults()
	if comment.EventType != activity.EventTypeComment {
		t.Fatalf("expected COMMENT, got %q", comment.EventType)
	}
}

func TestWithDefaults_KeepsExistingID(t *testing.T) {
	id := uuid.New()
	if got := (activity.LikeEvent{ID: id}).WithDefaults().ID; got != id {
		t.Fatalf("expected id %s kept, got %s", id, got)
	}
}

func TestStore_PersistsFixedEventType(t *testing.T) {
	ctx := context.Background()
	likes := memory.NewLikeEventStore()

	saved, err := likes.Save(ctx, activity.LikeEvent{UserID: uuid.New(), ImageID: uuid.New(), EventType: activity.EventTypeComment})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := likes.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.EventType != activity.EventTypeLike {
		t.Fatalf("expected stored LIKE, got %q", got.EventType)
	}
}
