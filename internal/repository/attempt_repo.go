package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindhaven/internal/model"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("not found")

type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	GetByID(ctx context.Context, id string) (*model.Attempt, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.Attempt, error)
	Update(ctx context.Context, attempt *model.Attempt) error
}

type attemptRepository struct {
	collection *mongo.Collection
}

func NewAttemptRepo(db *mongo.Database) AttemptRepository {
	return &attemptRepository{
		collection: db.Collection("attempts"),
	}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	if attempt.StartedAt.IsZero() {
		attempt.StartedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, attempt)
	return err
}

func (r *attemptRepository) GetByID(ctx context.Context, id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) GetByUserID(ctx context.Context, userID string) ([]*model.Attempt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var attempts []*model.Attempt
	if err = cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *attemptRepository) Update(ctx context.Context, attempt *model.Attempt) error {
	update := bson.M{"$set": attempt}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": attempt.ID}, update)
	return err
}
