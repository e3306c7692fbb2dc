package recommendations

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "tripspark/pkg/errors"
)

// Repository stores generated recommendations in MongoDB
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		collection: db.Collection("recommendations"),
	}
}

func (r *Repository) Save(ctx context.Context, rec *Recommendation) error {
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Recommendation, error) {
	var rec Recommendation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string, page, limit int) ([]Recommendation, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "generatedAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recs []Recommendation
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, 0, err
	}

	return recs, total, nil
}
