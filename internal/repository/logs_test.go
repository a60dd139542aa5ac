//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

func TestLogFilter(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)

	tests := []struct {
		name     string
		opts     model.LogQueryOptions
		expected bson.D
	}{
		{name: "empty", expected: bson.D{}},
		{
			name:     "plan and level",
			opts:     model.LogQueryOptions{PlanID: "p1", Level: "warn", Limit: 5},
			expected: bson.D{{Key: "plan_id", Value: "p1"}, {Key: "level", Value: "warn"}},
		},
		{
			name:     "path prefix is quoted",
			opts:     model.LogQueryOptions{Path: "/api/load-plans/import?x=1"},
			expected: bson.D{{Key: "path", Value: primitive.Regex{Pattern: `^/api/load-plans/import\?x=1`}}},
		},
		{
			name: "time range",
			opts: model.LogQueryOptions{RequestID: "req-9", StartTime: &since, EndTime: &until},
			expected: bson.D{
				{Key: "request_id", Value: "req-9"},
				{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: since}, {Key: "$lte", Value: until}}},
			},
		},
		{
			name:     "open ended range",
			opts:     model.LogQueryOptions{Method: "POST", StartTime: &since},
			expected: bson.D{{Key: "method", Value: "POST"}, {Key: "timestamp", Value: bson.D{{Key: "$gte", Value: since}}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logFilter(tt.opts))
		})
	}
}

func TestPrepareLogEntry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := &model.LogEntry{}
	prepareLogEntry(fresh, now)
	assert.False(t, fresh.ID.IsZero())
	assert.Equal(t, now, fresh.Timestamp)

	id := primitive.NewObjectID()
	earlier := now.Add(-time.Hour)
	stamped := &model.LogEntry{ID: id, Timestamp: earlier}
	prepareLogEntry(stamped, now)
	assert.Equal(t, id, stamped.ID)
	assert.Equal(t, earlier, stamped.Timestamp)
}
