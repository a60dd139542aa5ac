package loading

import (
	"cmp"
	"slices"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// OrderShipments returns the specs in placement order: orientation-restricted
// first, then by longest side, side sum and weight, all descending. Remaining
// fields break ties so the result never depends on map iteration order.
func OrderShipments(specs []model.ShipmentSpec) []model.ShipmentSpec {
	out := slices.Clone(specs)
	slices.SortStableFunc(out, compareShipments)
	return out
}

func compareShipments(a, b model.ShipmentSpec) int {
	if a.Restricted() != b.Restricted() {
		if a.Restricted() {
			return -1
		}
		return 1
	}
	return cmp.Or(
		cmp.Compare(b.MaxDimension(), a.MaxDimension()),
		cmp.Compare(b.DimensionSum(), a.DimensionSum()),
		cmp.Compare(b.Weight, a.Weight),
		cmp.Compare(b.Volume.LoadingVolume(), a.Volume.LoadingVolume()),
		cmp.Compare(b.Length, a.Length),
		cmp.Compare(b.Width, a.Width),
		cmp.Compare(b.Height, a.Height),
		cmp.Compare(b.Extension, a.Extension),
		compareBool(b.CanStack, a.CanStack),
		compareBool(b.HeightAsHeight, a.HeightAsHeight),
		compareBool(b.LengthAsHeight, a.LengthAsHeight),
		compareBool(b.WidthAsHeight, a.WidthAsHeight),
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Type, b.Type),
		cmp.Compare(a.Color, b.Color),
	)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

// sortedSpecs returns the keys of m with a positive count, in placement order.
func sortedSpecs(m map[model.ShipmentSpec]int) []model.ShipmentSpec {
	specs := make([]model.ShipmentSpec, 0, len(m))
	for s, n := range m {
		if n > 0 {
			specs = append(specs, s)
		}
	}
	return OrderShipments(specs)
}
