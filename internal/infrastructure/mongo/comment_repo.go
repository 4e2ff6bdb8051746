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

type CommentEventRepository struct {
	coll    documentCollection
	timeout time.Duration
}

func NewCommentEventRepository(db *mongo.Database, collection string, timeout time.Duration) *CommentEventRepository {
	return &CommentEventRepository{coll: driverCollection{db.Collection(collection)}, timeout: timeout}
}

func (r *CommentEventRepository) Save(ctx context.Context, e activity.CommentEvent) (activity.CommentEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	e = e.WithDefaults()
	doc := encodeComment(e)
	if err := r.coll.InsertOne(ctx, doc); err != nil {
		return activity.CommentEvent{}, fmt.Errorf("insert comment event: %w", err)
	}

	e.Timestamp = doc.Timestamp
	return e, nil
}

func (r *CommentEventRepository) FindByID(ctx context.Context, id uuid.UUID) (activity.CommentEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc commentDocument
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, &doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return activity.CommentEvent{}, activity.ErrNotFound
	}
	if err != nil {
		return activity.CommentEvent{}, fmt.Errorf("find comment event: %w", err)
	}

	return decodeComment(doc)
}

func (r *CommentEventRepository) FindAll(ctx context.Context) ([]activity.CommentEvent, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var docs []commentDocument
	if err := r.coll.FindAll(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read comment events: %w", err)
	}

	events := make([]activity.CommentEvent, 0, len(docs))
	for _, d := range docs {
		e, err := decodeComment(d)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
