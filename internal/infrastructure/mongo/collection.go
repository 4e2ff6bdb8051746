package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// documentCollection is the subset of *mongo.Collection the repositories use.
// FindOne returns mongo.ErrNoDocuments when nothing matches.
type documentCollection interface {
	InsertOne(ctx context.Context, doc any) error
	FindOne(ctx context.Context, filter bson.D, out any) error
	FindAll(ctx context.Context, out any) error
}

type driverCollection struct {
	coll *mongo.Collection
}

func (c driverCollection) InsertOne(ctx context.Context, doc any) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c driverCollection) FindOne(ctx context.Context, filter bson.D, out any) error {
	return c.coll.FindOne(ctx, filter).Decode(out)
}

func (c driverCollection) FindAll(ctx context.Context, out any) error {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	return cursor.All(ctx, out)
}
