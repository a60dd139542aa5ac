package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// ContainerCatalogRepository stores versioned container catalogs. Exactly one
// version is active at a time; older versions are kept as history.
type ContainerCatalogRepository struct {
	collection *mongo.Collection
}

// NewContainerCatalogRepository creates a new container catalog repository.
func NewContainerCatalogRepository(db *MongoDB) *ContainerCatalogRepository {
	return &ContainerCatalogRepository{
		collection: db.ContainerCatalogs,
	}
}

// GetActive returns the active catalog, or nil when none was stored yet.
func (r *ContainerCatalogRepository) GetActive(ctx context.Context) (*model.ContainerCatalog, error) {
	var catalog model.ContainerCatalog
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"active": true}, opts).Decode(&catalog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Create stores entries as the next catalog version and makes it active.
func (r *ContainerCatalogRepository) Create(ctx context.Context, entries []model.CatalogEntry, updatedBy string) (*model.ContainerCatalog, error) {
	version, err := r.latestVersion(ctx)
	if err != nil {
		return nil, err
	}

	catalog := model.ContainerCatalog{
		Version:    version + 1,
		Containers: entries,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
		UpdatedBy:  updatedBy,
	}
	if _, err := r.collection.InsertOne(ctx, catalog); err != nil {
		return nil, err
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{"active": true, "version": bson.M{"$lt": catalog.Version}},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (r *ContainerCatalogRepository) latestVersion(ctx context.Context) (int, error) {
	var latest model.ContainerCatalog
	opts := options.FindOne().
		SetSort(bson.D{{Key: "version", Value: -1}}).
		SetProjection(bson.M{"version": 1})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return latest.Version, nil
}

// List returns catalog versions, newest first.
func (r *ContainerCatalogRepository) List(ctx context.Context, limit int) ([]model.ContainerCatalog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	catalogs := []model.ContainerCatalog{}
	if err := cursor.All(ctx, &catalogs); err != nil {
		return nil, err
	}
	return catalogs, nil
}
