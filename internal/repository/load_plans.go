package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// LoadPlanRepository stores computed load plans.
type LoadPlanRepository struct {
	collection *mongo.Collection
}

// NewLoadPlanRepository creates a new load plan repository.
func NewLoadPlanRepository(db *MongoDB) *LoadPlanRepository {
	return &LoadPlanRepository{
		collection: db.LoadPlans,
	}
}

// Save inserts plan. Its ID must be set by the caller.
func (r *LoadPlanRepository) Save(ctx context.Context, plan *model.LoadPlan) error {
	if plan.ID == "" {
		return errors.New("load plan without id")
	}
	_, err := r.collection.InsertOne(ctx, plan)
	return err
}

// Get returns the plan with id, or nil when it does not exist.
func (r *LoadPlanRepository) Get(ctx context.Context, id string) (*model.LoadPlan, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne())
}

// FindByRequestHash returns the newest complete plan computed for hash, or
// nil when there is none.
func (r *LoadPlanRepository) FindByRequestHash(ctx context.Context, hash string) (*model.LoadPlan, error) {
	filter := bson.M{"request_hash": hash, "partial": bson.M{"$ne": true}}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findOne(ctx, filter, opts)
}

func (r *LoadPlanRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*model.LoadPlan, error) {
	var plan model.LoadPlan
	err := r.collection.FindOne(ctx, filter, opts).Decode(&plan)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// List returns plan summaries, newest first.
func (r *LoadPlanRepository) List(ctx context.Context, limit, skip int) ([]model.LoadPlanSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: skip}})
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$project", Value: bson.M{
		"loading_type": 1,
		"containers":   bson.M{"$size": bson.M{"$ifNull": bson.A{"$containers", bson.A{}}}},
		"requested":    1,
		"loaded":       1,
		"created_at":   1,
	}}})

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	summaries := []model.LoadPlanSummary{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Count returns the number of stored plans.
func (r *LoadPlanRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
