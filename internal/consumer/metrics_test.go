package consumer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
	"github.com/max3tmk/ImageGallery/activity/internal/domain/event"
)

func durationSamples(t *testing.T, eventType string) uint64 {
	t.Helper()
	var m dto.Metric
	if err := handleDuration.WithLabelValues(eventType).(prometheus.Histogram).Write(&m); err != nil {
		t.Fatalf("read histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func dropped(eventType, stage string) float64 {
	return testutil.ToFloat64(eventsDropped.WithLabelValues(eventType, stage))
}

func TestHandleDuration_ObservedOnEveryOutcome(t *testing.T) {
	likes := &fakeLikeStore{}
	c, _ := newTestConsumer(likes, &fakeCommentStore{})
	ctx := context.Background()

	before := durationSamples(t, activity.EventTypeLike)

	c.ConsumeLikeEvent(ctx, event.LikeEventDto{UserID: uuid.New(), ImageID: uuid.New()})
	c.ConsumeLikeEvent(ctx, event.LikeEventDto{ImageID: uuid.New()})
	likes.SaveFn = func(context.Context, activity.LikeEvent) (activity.LikeEvent, error) {
		return activity.LikeEvent{}, errors.New("no primary")
	}
	c.ConsumeLikeEvent(ctx, event.LikeEventDto{UserID: uuid.New(), ImageID: uuid.New()})
	likes.SaveFn = func(context.Context, activity.LikeEvent) (activity.LikeEvent, error) {
		panic("driver exploded")
	}
	c.ConsumeLikeEvent(ctx, event.LikeEventDto{UserID: uuid.New(), ImageID: uuid.New()})

	if got := durationSamples(t, activity.EventTypeLike) - before; got != 4 {
		t.Fatalf("expected 4 duration samples, got %d", got)
	}
}

func TestCommentFailure_ObservesDuration(t *testing.T) {
	comments := &fakeCommentStore{
		SaveFn: func(context.Context, activity.CommentEvent) (activity.CommentEvent, error) {
			return activity.CommentEvent{}, errors.New("write concern error")
		},
	}
	c, _ := newTestConsumer(&fakeLikeStore{}, comments)

	before := durationSamples(t, activity.EventTypeComment)
	c.ConsumeCommentEvent(context.Background(), event.CommentEventDto{UserID: uuid.New(), ImageID: uuid.New(), CommentID: uuid.New()})

	if got := durationSamples(t, activity.EventTypeComment) - before; got != 1 {
		t.Fatalf("expected 1 duration sample, got %d", got)
	}
}

func TestPanic_LabelledWithStage(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		likes := &fakeLikeStore{
			SaveFn: func(context.Context, activity.LikeEvent) (activity.LikeEvent, error) {
				panic("driver exploded")
			},
		}
		c, logs := newTestConsumer(likes, &fakeCommentStore{})
		storeBefore, mapBefore := dropped(activity.EventTypeLike, stageStore), dropped(activity.EventTypeLike, stageMap)

		c.ConsumeLikeEvent(context.Background(), event.LikeEventDto{UserID: uuid.New(), ImageID: uuid.New()})

		if got := dropped(activity.EventTypeLike, stageStore) - storeBefore; got != 1 {
			t.Fatalf("expected one store drop, got %v", got)
		}
		if got := dropped(activity.EventTypeLike, stageMap) - mapBefore; got != 0 {
			t.Fatalf("expected no map drop, got %v", got)
		}
		entries := logs.FilterMessage("Failed to process LikeEvent").All()
		if len(entries) != 1 || entries[0].ContextMap()["stage"] != stageStore {
			t.Fatalf("expected one failure logged at stage %q, got %v", stageStore, entries)
		}
	})

	t.Run("map", func(t *testing.T) {
		comments := &fakeCommentStore{}
		c, logs := newTestConsumer(&fakeLikeStore{}, comments)
		c.now = func() time.Time { panic("clock unavailable") }
		storeBefore, mapBefore := dropped(activity.EventTypeComment, stageStore), dropped(activity.EventTypeComment, stageMap)

		c.ConsumeCommentEvent(context.Background(), event.CommentEventDto{UserID: uuid.New(), ImageID: uuid.New(), CommentID: uuid.New()})

		if got := dropped(activity.EventTypeComment, stageMap) - mapBefore; got != 1 {
			t.Fatalf("expected one map drop, got %v", got)
		}
		if got := dropped(activity.EventTypeComment, stageStore) - storeBefore; got != 0 {
			t.Fatalf("expected no store drop, got %v", got)
		}
		if len(comments.saved) != 0 {
			t.Fatalf("expected nothing stored, got %+v", comments.saved)
		}
		entries := logs.FilterMessage("Failed to process CommentEvent").All()
		if len(entries) != 1 || entries[0].ContextMap()["stage"] != stageMap {
			t.Fatalf("expected one failure logged at stage %q, got %v", stageMap, entries)
		}
	})
}
