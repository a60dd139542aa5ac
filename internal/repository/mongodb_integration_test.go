//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("ttl indexes can be replaced", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30*24*time.Hour))
		require.NoError(t, db.SetLogsTTL(ctx, 7*24*time.Hour))
		require.NoError(t, db.SetPlansTTL(ctx, 90*24*time.Hour))

		cursor, err := db.LoadPlans.Indexes().List(ctx)
		require.NoError(t, err)
		var indexes []bson.M
		require.NoError(t, cursor.All(ctx, &indexes))

		var ttl any
		for _, idx := range indexes {
			if idx["name"] == "created_at_1" {
				ttl = idx["expireAfterSeconds"]
			}
		}
		assert.EqualValues(t, 90*24*3600, ttl)
	})

	t.Run("zero ttl drops the index", func(t *testing.T) {
		require.NoError(t, db.SetPlansTTL(ctx, 0))
		require.NoError(t, db.SetPlansTTL(ctx, 0))
	})
}
