package repository

import (
	"context"
	"time"
	"wellcheck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepo handles MongoDB operations for question catalogs
type CatalogRepo interface {
	Save(ctx context.Context, catalog *model.Catalog) error
	GetByName(ctx context.Context, name string) (*model.Catalog, error)
	List(ctx context.Context) ([]string, error)
}

type catalogRepo struct {
	collection *mongo.Collection
}

type catalogDoc struct {
	model.Catalog `bson:",inline"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(db *mongo.Database) CatalogRepo {
	return &catalogRepo{
		collection: db.Collection("catalogs"),
	}
}

func (r *catalogRepo) Save(ctx context.Context, catalog *model.Catalog) error {
	doc := catalogDoc{Catalog: *catalog, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"name": catalog.Name}, doc, opts)
	return err
}

func (r *catalogRepo) GetByName(ctx context.Context, name string) (*model.Catalog, error) {
	var doc catalogDoc
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.Catalog, nil
}

func (r *catalogRepo) List(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"name": 1}).SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}
