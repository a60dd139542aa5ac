package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

func boolPtr(b bool) *bool { return &b }

func validRequest() LoadPlanRequest {
	return LoadPlanRequest{
		Containers: []ContainerRequest{{Type: "40HQ", Length: 1203.2, Width: 235, Height: 269.7, LiftingCapacity: 28620, Count: 1}},
		Cargo: []CargoRequest{
			{Name: "pallet", Length: 120, Width: 80, Height: 100, Weight: 300, Count: 10},
			{Name: "drum", Diameter: 60, Height: 90, Weight: 200, Count: 4, Stack: boolPtr(false)},
		},
		Unit: "cm",
	}
}

func TestLoadPlanRequest_Build(t *testing.T) {
	req := validRequest()

	in, err := req.Build(Defaults{UnitScale: 10})
	require.NoError(t, err)

	pallet := model.ShipmentSpec{
		Name:           "pallet",
		Volume:         model.Volume{Length: 1200, Width: 800, Height: 1000},
		Weight:         300,
		CanStack:       true,
		HeightAsHeight: true,
	}
	drum := model.ShipmentSpec{
		Name:           "drum",
		Volume:         model.Volume{Length: 600, Width: 600, Height: 900},
		Weight:         200,
		HeightAsHeight: true,
	}
	assert.Equal(t, map[model.ShipmentSpec]int{pallet: 10, drum: 4}, in.Shipments)
	assert.Equal(t, map[model.ShipmentSpec]string{pallet: "1", drum: "2"}, in.CargoIDs)
	assert.Equal(t, []model.CatalogEntry{{
		ContainerSpec: model.ContainerSpec{Type: "40HQ", Length: 12032, Width: 2350, Height: 2697, LiftingCapacity: 28620},
		Count:         1,
	}}, in.Containers)
	assert.Equal(t, model.LoadingStable, in.LoadingType)
	assert.Equal(t, 14, in.Quantity())
}

func TestLoadPlanRequest_Build_MergesDuplicateLines(t *testing.T) {
	req := LoadPlanRequest{
		Auto: true,
		Cargo: []CargoRequest{
			{Name: "box", Length: 10, Width: 10, Height: 10, Count: 2},
			{Name: "box", Length: 10, Width: 10, Height: 10, Count: 3},
		},
		Unit:        "mm",
		LoadingType: "compact",
	}

	in, err := req.Build(Defaults{UnitScale: 10})
	require.NoError(t, err)

	require.Len(t, in.Shipments, 1)
	for spec, n := range in.Shipments {
		assert.Equal(t, 5, n)
		assert.Equal(t, "1", in.CargoIDs[spec])
	}
	assert.Empty(t, in.Containers)
	assert.Equal(t, model.LoadingCompact, in.LoadingType)
}

func TestLoadPlanRequest_Build_DefaultLoadingType(t *testing.T) {
	req := validRequest()

	in, err := req.Build(Defaults{UnitScale: 10, LoadingType: model.LoadingCompact})
	require.NoError(t, err)
	assert.Equal(t, model.LoadingCompact, in.LoadingType)

	req.LoadingType = "stable"
	in, err = req.Build(Defaults{UnitScale: 10, LoadingType: model.LoadingCompact})
	require.NoError(t, err)
	assert.Equal(t, model.LoadingStable, in.LoadingType)
}

func TestLoadPlanRequest_Build_Orientation(t *testing.T) {
	tests := []struct {
		name       string
		hh, lh, wh *bool
		expected   [3]bool
		wantErr    bool
	}{
		{name: "defaults to upright", expected: [3]bool{true, false, false}},
		{name: "explicit any side", hh: boolPtr(true), lh: boolPtr(true), wh: boolPtr(true), expected: [3]bool{true, true, true}},
		{name: "only length up", lh: boolPtr(true), expected: [3]bool{false, true, false}},
		{name: "nothing allowed", hh: boolPtr(false), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := LoadPlanRequest{Auto: true, Unit: "mm", Cargo: []CargoRequest{{
				Length: 10, Width: 10, Height: 10, Count: 1,
				HeightAsHeight: tt.hh, LengthAsHeight: tt.lh, WidthAsHeight: tt.wh,
			}}}

			in, err := req.Build(Defaults{UnitScale: 1})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for spec := range in.Shipments {
				assert.Equal(t, tt.expected, [3]bool{spec.HeightAsHeight, spec.LengthAsHeight, spec.WidthAsHeight})
			}
		})
	}
}

func TestLoadPlanRequest_Build_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LoadPlanRequest)
		max    int
		fields []string
	}{
		{name: "unknown unit", mutate: func(r *LoadPlanRequest) { r.Unit = "inch" }, fields: []string{"unit"}},
		{name: "unknown loading type", mutate: func(r *LoadPlanRequest) { r.LoadingType = "tight" }, fields: []string{"loading_type"}},
		{name: "sub-millimetre side", mutate: func(r *LoadPlanRequest) { r.Cargo[0].Height = 0.01 }, fields: []string{"cargo[0].height"}},
		{name: "cylinder without diameter", mutate: func(r *LoadPlanRequest) { r.Cargo[1].Diameter = 0 }, fields: []string{"cargo[1].length", "cargo[1].width"}},
		{name: "container side rounds to zero", mutate: func(r *LoadPlanRequest) { r.Containers[0].Width = 0.04 }, fields: []string{"containers[0].width"}},
		{name: "too many shipments", mutate: func(*LoadPlanRequest) {}, max: 13, fields: []string{"cargo"}},
		{name: "huge lines still hit the cap", mutate: func(r *LoadPlanRequest) { r.Cargo[0].Count = math.MaxInt }, max: 13, fields: []string{"cargo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := req.Build(Defaults{UnitScale: 10, MaxShipments: tt.max})
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			details := verrs.Details()
			assert.Len(t, details, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, details, f)
			}
		})
	}
}

func TestLoadPlanRequest_Build_WithoutContainersUsesCatalog(t *testing.T) {
	req := validRequest()
	req.Containers = nil

	in, err := req.Build(Defaults{UnitScale: 10})
	require.NoError(t, err)
	assert.True(t, in.UsesCatalog())
}

func TestLoadPlanRequest_Build_AutoIgnoresContainers(t *testing.T) {
	req := validRequest()
	req.Auto = true
	req.Containers = []ContainerRequest{{}}

	in, err := req.Build(Defaults{UnitScale: 10})
	require.NoError(t, err)
	assert.True(t, in.Auto)
	assert.Empty(t, in.Containers)
	assert.False(t, in.UsesCatalog())
}

func TestUpdateContainersRequest_Build(t *testing.T) {
	req := UpdateContainersRequest{Containers: []ContainerRequest{
		{Type: "20DV", Length: 5895, Width: 2350, Height: 2393, LiftingCapacity: 28200},
	}}

	entries, err := req.Build(1)
	require.NoError(t, err)
	assert.Equal(t, []model.CatalogEntry{{ContainerSpec: model.ContainerSpec{
		Type: "20DV", Length: 5895, Width: 2350, Height: 2393, LiftingCapacity: 28200,
	}}}, entries)

	_, err = (&UpdateContainersRequest{}).Build(1)
	assert.Error(t, err)
}

func TestUnitScale(t *testing.T) {
	tests := []struct {
		unit     string
		expected int
		ok       bool
	}{
		{"", 10, true},
		{"mm", 1, true},
		{"CM", 0, false},
		{"m", 1000, true},
		{"ft", 0, false},
	}
	for _, tt := range tests {
		scale, ok := UnitScale(tt.unit, 10)
		assert.Equal(t, tt.ok, ok, tt.unit)
		assert.Equal(t, tt.expected, scale, tt.unit)
	}
}

func TestValidationErrors_Details(t *testing.T) {
	var errs ValidationErrors
	errs.Add("a", "first")
	errs.Add("a", "second")
	errs.Add("b", "third")

	assert.Equal(t, map[string]string{"a": "first; second", "b": "third"}, errs.Details())
	assert.Equal(t, "a: first; a: second; b: third", errs.Error())
}
