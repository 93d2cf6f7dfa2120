package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"matchwell/internal/model"
)

// FeedbackRepo handles MongoDB operations for page feedback
type FeedbackRepo interface {
	Insert(ctx context.Context, fb *model.Feedback) error
	ListRecent(ctx context.Context, limit int64) ([]model.Feedback, error)
}

type feedbackRepo struct {
	collection *mongo.Collection
}

// NewFeedbackRepo creates a feedback repository
func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{
		collection: db.Collection("feedback"),
	}
}

func (r *feedbackRepo) Insert(ctx context.Context, fb *model.Feedback) error {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, fb)
	return err
}

func (r *feedbackRepo) ListRecent(ctx context.Context, limit int64) ([]model.Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []model.Feedback
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
