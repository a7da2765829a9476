package repository

import (
	"context"
	"wellcheck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResultRepo handles MongoDB operations for submitted assessments
type ResultRepo interface {
	Save(ctx context.Context, a *model.Assessment) (string, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Assessment, error)
	ListRecent(ctx context.Context, limit int64) ([]*model.Assessment, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("assessments"),
	}
}

// Save upserts by session id so a retried submit does not duplicate results.
// a.ID is set to the stored document's _id whether it was inserted or updated.
func (r *resultRepo) Save(ctx context.Context, a *model.Assessment) (string, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})
	doc := *a
	doc.ID = ""

	var stored struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"sessionId": a.SessionID}, bson.M{"$set": doc}, opts).Decode(&stored)
	if err != nil {
		return "", err
	}

	a.ID = stored.ID.Hex()
	return a.ID, nil
}

func (r *resultRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *resultRepo) ListRecent(ctx context.Context, limit int64) ([]*model.Assessment, error) {
	opts := options.Find().SetSort(bson.M{"completedAt": -1}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.Assessment
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
