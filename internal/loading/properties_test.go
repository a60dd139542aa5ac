package loading

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// grid is a dense occupancy map of a container, one cell per unit.
type grid struct {
	size  model.Point
	cells []int64
	stack map[int64]bool
}

func newGrid(spec model.ContainerSpec) *grid {
	return &grid{
		size:  model.Point{X: spec.Length, Y: spec.Width, Z: spec.Height},
		cells: make([]int64, spec.Length*spec.Width*spec.Height),
		stack: make(map[int64]bool),
	}
}

func (g *grid) at(x, y, z int) *int64 {
	return &g.cells[(z*g.size.Y+y)*g.size.X+x]
}

// occupy marks the cells of p and fails the test on overlap or overflow.
func (g *grid) occupy(t *testing.T, p Placement) {
	t.Helper()
	end := p.Close()
	require.True(t, end.LessEq(g.size.Sub(model.Point{X: 1, Y: 1, Z: 1})), "placement %s..%s leaves the container", p.Point, end)
	for z := p.Point.Z; z <= end.Z; z++ {
		for y := p.Point.Y; y <= end.Y; y++ {
			for x := p.Point.X; x <= end.X; x++ {
				cell := g.at(x, y, z)
				require.Zero(t, *cell, "shipment %d overlaps shipment %d at (%d,%d,%d)", p.Shipment.ID, *cell, x, y, z)
				*cell = p.Shipment.ID
			}
		}
	}
	g.stack[p.Shipment.ID] = p.Shipment.Spec.CanStack
}

// supported reports whether every cell under the footprint at z belongs to a
// stackable shipment.
func (g *grid) supported(open, close model.Point) bool {
	if open.Z == 0 {
		return true
	}
	for y := open.Y; y <= close.Y; y++ {
		for x := open.X; x <= close.X; x++ {
			id := *g.at(x, y, open.Z-1)
			if id == 0 || !g.stack[id] {
				return false
			}
		}
	}
	return true
}

func (g *grid) empty(open, close model.Point) bool {
	for z := open.Z; z <= close.Z; z++ {
		for y := open.Y; y <= close.Y; y++ {
			for x := open.X; x <= close.X; x++ {
				if *g.at(x, y, z) != 0 {
					return false
				}
			}
		}
	}
	return true
}

// assertPhysicallyValid checks containment, non-overlap, support and weight of
// the loading order with exact box arithmetic.
func assertPhysicallyValid(t *testing.T, c *Container) {
	t.Helper()
	limit := model.Point{X: c.Spec().Length - 1, Y: c.Spec().Width - 1, Z: c.Spec().Height - 1}
	order := c.LoadingOrder()
	weight := 0
	for i, p := range order {
		end := p.Close()
		assert.True(t, model.Origin.LessEq(p.Point) && end.LessEq(limit), "shipment %d leaves the container", p.Shipment.ID)

		var support int64
		for _, q := range order[:i] {
			qe := q.Close()
			assert.False(t, intersects(p.Point, end, q.Point, qe), "shipment %d overlaps shipment %d", p.Shipment.ID, q.Shipment.ID)
			if p.Point.Z > 0 && qe.Z == p.Point.Z-1 && q.Shipment.Spec.CanStack {
				support += overlapArea(p.Point, end, q.Point, qe)
			}
		}
		if p.Point.Z > 0 {
			area := int64(end.X-p.Point.X+1) * int64(end.Y-p.Point.Y+1)
			assert.Equal(t, area, support, "shipment %d at %s is not fully supported", p.Shipment.ID, p.Point)
		}
		weight += p.Shipment.Spec.Weight
	}
	assert.LessOrEqual(t, weight, c.Spec().LiftingCapacity)
	assert.Equal(t, weight, c.Statistics().LoadedWeight)
	assert.Equal(t, len(order), c.Statistics().Shipments)
}

func intersects(ao, ac, bo, bc model.Point) bool {
	return ao.X <= bc.X && bo.X <= ac.X && ao.Y <= bc.Y && bo.Y <= ac.Y && ao.Z <= bc.Z && bo.Z <= ac.Z
}

func overlapArea(ao, ac, bo, bc model.Point) int64 {
	dx := min(ac.X, bc.X) - max(ao.X, bo.X) + 1
	dy := min(ac.Y, bc.Y) - max(ao.Y, bo.Y) + 1
	if dx <= 0 || dy <= 0 {
		return 0
	}
	return int64(dx) * int64(dy)
}

func randomShipments(r *rand.Rand) map[model.ShipmentSpec]int {
	out := make(map[model.ShipmentSpec]int)
	kinds := 1 + r.IntN(4)
	for i := 0; i < kinds; i++ {
		spec := model.ShipmentSpec{
			Volume: model.Volume{
				Length: 1 + r.IntN(4),
				Width:  1 + r.IntN(4),
				Height: 1 + r.IntN(4),
			},
			Weight:         r.IntN(5),
			CanStack:       r.IntN(4) != 0,
			HeightAsHeight: true,
			LengthAsHeight: r.IntN(2) == 0,
			WidthAsHeight:  r.IntN(2) == 0,
		}
		out[spec] += 1 + r.IntN(12)
	}
	return out
}

// TestFreeSpace_MatchesDenseGrid places shipments one by one through the
// index and checks after every step that each registered box is empty and
// rests on stackable shipments or the floor.
func TestFreeSpace_MatchesDenseGrid(t *testing.T) {
	for seed := uint64(1); seed <= 60; seed++ {
		r := rand.New(rand.NewPCG(seed, 7))
		spec := model.ContainerSpec{
			Length:          4 + r.IntN(7),
			Width:           4 + r.IntN(7),
			Height:          3 + r.IntN(6),
			LiftingCapacity: 1000,
		}
		order := Horizontal
		if seed%2 == 0 {
			order = Vertical
		}

		c := NewContainer(spec)
		g := newGrid(spec)
		var next int64
		for _, s := range sortedSpecs(randomShipments(r)) {
			variants := s.RotationVariants()
			for n := 0; n < 6; n++ {
				point, variant, ok := findPlace(c, variants, order)
				if !ok {
					break
				}
				next++
				c.Place(point, Shipment{ID: next, Spec: variant})
				g.occupy(t, Placement{Point: point, Shipment: Shipment{ID: next, Spec: variant}})

				for open, closes := range c.FreeSpace().snapshot() {
					for _, close := range closes {
						require.True(t, close.LessEq(g.size.Sub(model.Point{X: 1, Y: 1, Z: 1})), "seed %d: box %s..%s leaves the container", seed, open, close)
						require.True(t, g.empty(open, close), "seed %d: box %s..%s is not empty", seed, open, close)
						require.True(t, g.supported(open, close), "seed %d: box %s..%s is not supported", seed, open, close)
					}
				}
			}
		}
	}
}

// TestFreeSpace_FloorIsNeverLost checks that an empty floor cell is always
// covered by some ground-level box.
func TestFreeSpace_FloorIsNeverLost(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		r := rand.New(rand.NewPCG(seed, 11))
		spec := model.ContainerSpec{Length: 8, Width: 6, Height: 4, LiftingCapacity: 1000}
		c := NewContainer(spec)
		g := newGrid(spec)

		for i := int64(1); i <= 6; i++ {
			variant := model.ShipmentSpec{
				Volume:         model.Volume{Length: 1 + r.IntN(3), Width: 1 + r.IntN(3), Height: 1 + r.IntN(2)},
				CanStack:       true,
				HeightAsHeight: true,
			}
			point, _, ok := findPlace(c, []model.ShipmentSpec{variant}, Horizontal)
			if !ok {
				break
			}
			c.Place(point, Shipment{ID: i, Spec: variant})
			g.occupy(t, Placement{Point: point, Shipment: Shipment{ID: i, Spec: variant}})
		}

		snapshot := c.FreeSpace().snapshot()
		for y := 0; y < spec.Width; y++ {
			for x := 0; x < spec.Length; x++ {
				if *g.at(x, y, 0) != 0 {
					continue
				}
				assert.True(t, coveredAtFloor(snapshot, x, y), "seed %d: free floor cell (%d,%d) has no box", seed, x, y)
			}
		}
	}
}

func coveredAtFloor(snapshot map[model.Point][]model.Point, x, y int) bool {
	for open, closes := range snapshot {
		if open.Z != 0 {
			continue
		}
		for _, close := range closes {
			if open.X <= x && x <= close.X && open.Y <= y && y <= close.Y {
				return true
			}
		}
	}
	return false
}

func TestLoader_Load_RandomisedIsPhysicallyValid(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		r := rand.New(rand.NewPCG(seed, 3))
		shipments := randomShipments(r)
		requested := make(map[model.ShipmentSpec]int, len(shipments))
		for s, n := range shipments {
			requested[s] = n
		}
		lt := model.LoadingStable
		if seed%3 == 0 {
			lt = model.LoadingCompact
		}

		result, err := newTestLoader().Load(context.Background(), Request{
			Shipments: shipments,
			Containers: map[model.ContainerSpec]int{
				{Type: "a", Length: 6, Width: 5, Height: 4, LiftingCapacity: 40}: 2,
				{Type: "b", Length: 9, Width: 4, Height: 5, LiftingCapacity: 25}: 1,
			},
			LoadingType: lt,
		})
		require.NoError(t, err)

		placed := placedBySpec(t, result)
		for spec, n := range requested {
			assert.Equal(t, n, placed[spec]+result.Leftover[spec], "seed %d", seed)
		}
		for _, c := range result.Containers {
			assertPhysicallyValid(t, c)
		}
	}
}
