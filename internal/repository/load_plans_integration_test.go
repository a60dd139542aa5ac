//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/circuitbreaker"
	"github.com/guttosm/cargo-loader/internal/domain/model"
)

func samplePlan(id, hash string, createdAt time.Time) *model.LoadPlan {
	pallet := model.ShipmentSpec{
		Name:           "pallet",
		Volume:         model.Volume{Length: 1200, Width: 800, Height: 1000},
		Weight:         300,
		CanStack:       true,
		HeightAsHeight: true,
	}
	return &model.LoadPlan{
		ID:          id,
		RequestHash: hash,
		LoadingType: model.LoadingStable,
		Containers: []model.PlannedContainer{{
			Spec:       model.AutoContainers[0],
			Cargos:     map[string]model.ShipmentSpec{"1": pallet},
			LoadPoints: []model.LoadPoint{{CargoID: "1", Length: 1200, Width: 800, Height: 1000}},
			Stats:      model.ContainerStats{Shipments: 1, LoadedWeight: 300},
		}},
		Requested: 1,
		Loaded:    1,
		Rounds:    1,
		CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
	}
}

func TestLoadPlanRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewLoadPlanRepositoryWithCircuitBreaker(
		NewLoadPlanRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)
	now := time.Now()

	t.Run("missing plan", func(t *testing.T) {
		plan, err := repo.Get(ctx, "nope")
		assert.NoError(t, err)
		assert.Nil(t, plan)
	})

	t.Run("save and get", func(t *testing.T) {
		plan := samplePlan("p1", "h1", now.Add(-time.Minute))
		require.NoError(t, repo.Save(ctx, plan))

		got, err := repo.Get(ctx, "p1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, plan, got)
	})

	t.Run("find by hash returns newest complete plan", func(t *testing.T) {
		newer := samplePlan("p2", "h1", now)
		require.NoError(t, repo.Save(ctx, newer))
		partial := samplePlan("p3", "h1", now.Add(time.Minute))
		partial.Partial = true
		require.NoError(t, repo.Save(ctx, partial))

		got, err := repo.FindByRequestHash(ctx, "h1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "p2", got.ID)

		missing, err := repo.FindByRequestHash(ctx, "h2")
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("list summaries", func(t *testing.T) {
		summaries, err := repo.List(ctx, 2, 0)
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, "p3", summaries[0].ID)
		assert.Equal(t, 1, summaries[0].Containers)
		assert.Equal(t, "p2", summaries[1].ID)

		rest, err := repo.List(ctx, 10, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "p1", rest[0].ID)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("save without id", func(t *testing.T) {
		assert.Error(t, repo.Save(ctx, &model.LoadPlan{}))
	})
}
