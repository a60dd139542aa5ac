//go:build !integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
	"github.com/guttosm/cargo-loader/internal/service"
)

func TestInitializeServices(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*config.Config)
		withCache bool
		defaults  dto.Defaults
	}{
		{
			name:      "cache enabled",
			withCache: true,
			defaults:  dto.Defaults{UnitScale: 10, LoadingType: model.LoadingStable, MaxShipments: 1000},
		},
		{
			name:     "cache disabled",
			modify:   func(c *config.Config) { c.Cache.Size = 0 },
			defaults: dto.Defaults{UnitScale: 10, LoadingType: model.LoadingStable, MaxShipments: 1000},
		},
		{
			name:      "compact default loading type in millimetres",
			modify:    func(c *config.Config) { c.Loading.DefaultLoadingType = "compact"; c.Loading.UnitScale = 1 },
			withCache: true,
			defaults:  dto.Defaults{UnitScale: 1, LoadingType: model.LoadingCompact, MaxShipments: 1000},
		},
		{
			name:      "unknown loading type falls back to stable",
			modify:    func(c *config.Config) { c.Loading.DefaultLoadingType = "tetris" },
			withCache: true,
			defaults:  dto.Defaults{UnitScale: 10, LoadingType: model.LoadingStable, MaxShipments: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.modify != nil {
				tt.modify(&cfg)
			}

			components := InitializeServices(cfg, nil)
			defer components.Close()

			require.NotNil(t, components.Planner)
			require.NotNil(t, components.Catalogs)
			assert.Equal(t, tt.defaults, components.Defaults)
			assert.Equal(t, tt.withCache, components.planCache != nil)
		})
	}
}

func TestInitializeServices_PlansWithoutDatabase(t *testing.T) {
	components := InitializeServices(testConfig(), nil)
	defer components.Close()

	req := dto.LoadPlanRequest{
		Auto:  true,
		Cargo: []dto.CargoRequest{{Name: "crate", Length: 100, Width: 100, Height: 100, Weight: 80, Count: 6}},
	}
	in, err := req.Build(components.Defaults)
	require.NoError(t, err)

	plan, err := components.Planner.Plan(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 6, plan.Loaded)
	assert.Empty(t, plan.Leftovers)

	cached, err := components.Planner.Get(context.Background(), plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, cached.ID)

	catalog, err := components.Catalogs.Active(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.CatalogSourceBuiltin, catalog.Source)
}

func TestServiceComponents_CloseIsIdempotent(t *testing.T) {
	components := InitializeServices(testConfig(), nil)

	assert.NotPanics(t, func() {
		components.Close()
		components.Close()
	})

	var nilComponents *ServiceComponents
	assert.NotPanics(t, nilComponents.Close)
}

func TestNewLoader_UsesConfiguredThresholds(t *testing.T) {
	base := newLoader(config.LoadingConfig{})
	tuned := newLoader(config.LoadingConfig{VolumeThreshold: 1.5, WeightThreshold: 0.9})

	assert.NotEqual(t, base.Settings(), tuned.Settings())
	assert.Equal(t, base.Settings(), newLoader(config.LoadingConfig{}).Settings())
}
