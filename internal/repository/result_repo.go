package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindhaven/internal/model"
)

// ResultRepository stores completed attempts for longitudinal tracking and
// clinician visibility
type ResultRepository interface {
	Create(ctx context.Context, result *model.AssessmentResult) error
	GetByID(ctx context.Context, id string) (*model.AssessmentResult, error)
	GetByUserID(ctx context.Context, userID string) ([]*model.AssessmentResult, error)
	GetByUserAndAssessment(ctx context.Context, userID, assessmentID string) ([]*model.AssessmentResult, error)
}

type resultRepository struct {
	collection *mongo.Collection
}

func NewResultRepo(db *mongo.Database) ResultRepository {
	return &resultRepository{
		collection: db.Collection("results"),
	}
}

func (r *resultRepository) Create(ctx context.Context, result *model.AssessmentResult) error {
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

func (r *resultRepository) GetByID(ctx context.Context, id string) (*model.AssessmentResult, error) {
	var result model.AssessmentResult
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *resultRepository) GetByUserID(ctx context.Context, userID string) ([]*model.AssessmentResult, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *resultRepository) GetByUserAndAssessment(ctx context.Context, userID, assessmentID string) ([]*model.AssessmentResult, error) {
	return r.find(ctx, bson.M{"userId": userID, "assessmentId": assessmentID})
}

func (r *resultRepository) find(ctx context.Context, filter bson.M) ([]*model.AssessmentResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.AssessmentResult
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
