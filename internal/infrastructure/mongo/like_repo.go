package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
)

type LikeEventRepository struct {
	coll    documentCollection
	timeout time.Duration
}

func NewLikeEventRepository(db *mongo.Database, collection string, timeout time.Duration) *LikeEventRepository {
	return &LikeEventRepository{coll: driverCollection{db.Collection(collection)}, timeout: timeout}
}

func (r *LikeEventRepository) Save(ctx context.Context, e activity.LikeEvent) (activity.LikeEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e = e.WithDefaults()
	doc := encodeLike(e)
	if err := r.coll.InsertOne(ctx, doc); err != nil {
		return activity.LikeEvent{}, fmt.Errorf("insert like event: %w", err)
	}

	e.Timestamp = doc.Timestamp
	return e, nil
}

func (r *LikeEventRepository) FindByID(ctx context.Context, id uuid.UUID) (activity.LikeEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc likeDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, &doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return activity.LikeEvent{}, activity.ErrNotFound
	}
	if err != nil {
		return activity.LikeEvent{}, fmt.Errorf("find like event: %w", err)
	}

	return decodeLike(doc)
}

func (r *LikeEventRepository) FindAll(ctx context.Context) ([]activity.LikeEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var docs []likeDocument
	if err := r.coll.FindAll(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read like events: %w", err)
	}

	events := make([]activity.LikeEvent, 0, len(docs))
	for _, d := range docs {
		e, err := decodeLike(d)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
