package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// LogsRepository stores the request logs written by the async logger.
type LogsRepository struct {
	collection *mongo.Collection
}

// NewLogsRepository creates a logs repository on db.Logs.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs}
}

// Create inserts entry, assigning an id and timestamp when missing.
func (r *LogsRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	prepareLogEntry(entry, time.Now().UTC())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts a batch unordered, so one bad document does not drop
// the rest.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		prepareLogEntry(entry, now)
		docs = append(docs, entry)
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns the entries matching opts, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	find := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		find.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, logFilter(opts), find)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cursor.Close(ctx) }()

	entries := make([]model.LogEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching opts, ignoring paging.
func (r *LogsRepository) Count(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, logFilter(opts))
}

func prepareLogEntry(entry *model.LogEntry, now time.Time) {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
}

// logFilter matches exact fields, a path prefix and a timestamp range.
func logFilter(opts model.LogQueryOptions) bson.D {
	filter := bson.D{}
	for _, f := range []struct{ key, value string }{
		{"request_id", opts.RequestID},
		{"plan_id", opts.PlanID},
		{"level", opts.Level},
		{"method", opts.Method},
	} {
		if f.value != "" {
			filter = append(filter, bson.E{Key: f.key, Value: f.value})
		}
	}

	if opts.Path != "" {
		filter = append(filter, bson.E{Key: "path", Value: primitive.Regex{Pattern: "^" + regexp.QuoteMeta(opts.Path)}})
	}

	between := bson.D{}
	if opts.StartTime != nil {
		between = append(between, bson.E{Key: "$gte", Value: *opts.StartTime})
	}
	if opts.EndTime != nil {
		between = append(between, bson.E{Key: "$lte", Value: *opts.EndTime})
	}
	if len(between) > 0 {
		filter = append(filter, bson.E{Key: "timestamp", Value: between})
	}
	return filter
}
