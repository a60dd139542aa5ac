package loading

import (
	"fmt"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// Shipment is one physical unit placed in a container. Spec is the rotated
// variant actually used.
type Shipment struct {
	ID   int64
	Spec model.ShipmentSpec
	// Origin is the requested spec Spec was rotated from.
	Origin model.ShipmentSpec
}

// Placement records where a shipment sits.
type Placement struct {
	Point    model.Point
	Shipment Shipment
}

// Close returns the far corner of the placed shipment, inclusive.
func (p Placement) Close() model.Point {
	return p.Point.Add(p.Shipment.Spec.Extent()).Sub(model.Point{X: 1, Y: 1, Z: 1})
}

// Container is one container being filled. It is not safe for concurrent use.
type Container struct {
	spec   model.ContainerSpec
	space  *FreeSpace
	points map[int64]model.Point
	order  []Shipment
	stats  Statistics
}

// NewContainer returns an empty container of the given type.
func NewContainer(spec model.ContainerSpec) *Container {
	return &Container{
		spec:   spec,
		space:  NewFreeSpace(spec),
		points: make(map[int64]model.Point),
	}
}

// Spec returns the container type.
func (c *Container) Spec() model.ContainerSpec { return c.spec }

// FreeSpace exposes the free-space index, read-only by convention.
func (c *Container) FreeSpace() *FreeSpace { return c.space }

// Statistics returns the running totals.
func (c *Container) Statistics() Statistics { return c.stats }

// Len returns the number of placed shipments.
func (c *Container) Len() int { return len(c.order) }

// CanPlace reports whether variant fits at point and stays within the
// lifting capacity.
func (c *Container) CanPlace(point model.Point, variant model.ShipmentSpec) bool {
	if c.stats.LoadedWeight+variant.Weight > c.spec.LiftingCapacity {
		return false
	}
	return c.space.Fits(point, variant)
}

// Place puts s at point. The caller must have checked CanPlace.
func (c *Container) Place(point model.Point, s Shipment) {
	if !c.CanPlace(point, s.Spec) {
		panic(fmt.Sprintf("loading: shipment %d does not fit at %s", s.ID, point))
	}
	pl := Placement{Point: point, Shipment: s}
	c.space.Place(point, pl.Close(), s.Spec.CanStack)
	c.points[s.ID] = point
	c.order = append(c.order, s)
	c.stats.add(pl)
}

// Unload removes every shipment and resets the free space.
func (c *Container) Unload() {
	c.space.Reset()
	c.points = make(map[int64]model.Point)
	c.order = nil
	c.stats = Statistics{}
}

// LoadingOrder returns the placements in the order they were made.
func (c *Container) LoadingOrder() []Placement {
	out := make([]Placement, len(c.order))
	for i, s := range c.order {
		out[i] = Placement{Point: c.points[s.ID], Shipment: s}
	}
	return out
}

// OpeningPoints returns the free corners sorted by order.
func (c *Container) OpeningPoints(order PointOrder) []model.Point {
	points := c.space.OpeningPoints()
	SortPoints(points, order)
	return points
}
