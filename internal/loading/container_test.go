package loading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

func TestContainer_PlaceUpdatesStatistics(t *testing.T) {
	c := NewContainer(model.ContainerSpec{Length: 6000, Width: 2400, Height: 2400, LiftingCapacity: 100})
	pallet := model.ShipmentSpec{
		Volume:         model.Volume{Length: 1200, Width: 800, Height: 1000},
		Weight:         30,
		CanStack:       true,
		HeightAsHeight: true,
	}

	require.True(t, c.CanPlace(model.Origin, pallet))
	c.Place(model.Origin, Shipment{ID: 1, Spec: pallet})
	require.True(t, c.CanPlace(pt(0, 800, 0), pallet))
	c.Place(pt(0, 800, 0), Shipment{ID: 2, Spec: pallet})

	stats := c.Statistics()
	assert.Equal(t, 2, stats.Shipments)
	assert.Equal(t, 60, stats.LoadedWeight)
	assert.Equal(t, int64(2*1200*800*1000), stats.LoadedVolume)
	assert.Equal(t, 1200, stats.LoadedLength)
	assert.Equal(t, 1600, stats.LoadedWidth)
	assert.InDelta(t, 0.8, stats.LDM(), 1e-9)
	assert.Equal(t, int64(2*1200*800), stats.FloorArea)
	assert.InDelta(t, float64(2*1200*800)/float64(6000*2400), stats.FloorShare(c.Spec()), 1e-9)
	assert.InDelta(t, float64(2*1200*800*1000)/float64(6000*2400*2400), stats.VolumeShare(c.Spec()), 1e-9)

	order := c.LoadingOrder()
	require.Len(t, order, 2)
	assert.Equal(t, int64(1), order[0].Shipment.ID)
	assert.Equal(t, pt(1199, 1599, 999), order[1].Close())
}

func TestContainer_CanPlaceRespectsLiftingCapacity(t *testing.T) {
	c := NewContainer(model.ContainerSpec{Length: 10, Width: 10, Height: 10, LiftingCapacity: 5})
	item := cube(2)
	item.Weight = 3

	c.Place(model.Origin, Shipment{ID: 1, Spec: item})

	assert.False(t, c.CanPlace(pt(2, 0, 0), item))
	item.Weight = 2
	assert.True(t, c.CanPlace(pt(2, 0, 0), item))
}

func TestContainer_PlacePanicsWithoutRoom(t *testing.T) {
	c := NewContainer(model.ContainerSpec{Length: 10, Width: 10, Height: 10, LiftingCapacity: 5})

	assert.Panics(t, func() { c.Place(model.Origin, Shipment{ID: 1, Spec: cube(11)}) })
}

func TestContainer_Unload(t *testing.T) {
	c := NewContainer(model.ContainerSpec{Length: 10, Width: 10, Height: 10, LiftingCapacity: 50})
	c.Place(model.Origin, Shipment{ID: 1, Spec: cube(5)})
	require.Equal(t, 1, c.Len())

	c.Unload()

	assert.Zero(t, c.Len())
	assert.Equal(t, Statistics{}, c.Statistics())
	assert.Empty(t, c.LoadingOrder())
	assert.Equal(t, []model.Point{model.Origin}, c.OpeningPoints(Horizontal))
}

func TestStatistics_VolumeShareOfEmptySpec(t *testing.T) {
	assert.Zero(t, Statistics{LoadedVolume: 10}.VolumeShare(model.ContainerSpec{}))
	assert.Zero(t, Statistics{FloorArea: 10}.FloorShare(model.ContainerSpec{}))
}

func TestStatistics_FloorAreaCountsOnlyTheFloor(t *testing.T) {
	c := NewContainer(model.ContainerSpec{Length: 10, Width: 10, Height: 10, LiftingCapacity: 50})
	c.Place(model.Origin, Shipment{ID: 1, Spec: cube(4)})
	c.Place(pt(0, 0, 4), Shipment{ID: 2, Spec: cube(4)})

	stats := c.Statistics()
	assert.Equal(t, int64(16), stats.FloorArea)
	assert.InDelta(t, 0.16, stats.FloorShare(c.Spec()), 1e-9)
}

func TestIDAllocator(t *testing.T) {
	var ids IDAllocator
	assert.Equal(t, int64(1), ids.Reserve(1))
	start := ids.Reserve(3)
	assert.Equal(t, int64(2), start)
	assert.Equal(t, int64(5), ids.Reserve(2), "blocks do not overlap")

	block := &idBlock{next: start, end: start + 3}
	assert.Equal(t, int64(2), block.take())
	assert.Equal(t, int64(3), block.take())
	assert.Equal(t, int64(4), block.take())
	assert.Panics(t, func() { block.take() })
}
