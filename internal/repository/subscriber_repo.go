package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"matchwell/internal/model"
)

// SubscriberRepo handles MongoDB operations for newsletter signups
type SubscriberRepo interface {
	Upsert(ctx context.Context, sub *model.Subscriber) error
	Count(ctx context.Context) (int64, error)
}

type subscriberRepo struct {
	collection *mongo.Collection
}

// NewSubscriberRepo creates a subscriber repository
func NewSubscriberRepo(db *mongo.Database) SubscriberRepo {
	return &subscriberRepo{
		collection: db.Collection("subscribers"),
	}
}

// Upsert keys on email so repeat signups stay idempotent.
func (r *subscriberRepo) Upsert(ctx context.Context, sub *model.Subscriber) error {
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	update := bson.M{
		"$set":         bson.M{"source": sub.Source},
		"$setOnInsert": bson.M{"_id": sub.ID, "email": sub.Email, "createdAt": sub.CreatedAt},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"email": sub.Email}, update, options.Update().SetUpsert(true))
	return err
}

func (r *subscriberRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
