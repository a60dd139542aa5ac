package loading

import (
	"sort"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// PointOrder is the order in which free corners are tried.
type PointOrder int

const (
	// Horizontal orders by (z, x, y): whole floor layers first.
	Horizontal PointOrder = iota
	// Vertical orders by (x, y, z): columns first.
	Vertical
)

// OrderFor maps a loading type onto its point order.
func OrderFor(lt model.LoadingType) PointOrder {
	if lt == model.LoadingCompact {
		return Vertical
	}
	return Horizontal
}

func (o PointOrder) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// SortPoints sorts points in place.
func SortPoints(points []model.Point, order PointOrder) {
	less := func(a, b model.Point) bool {
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}
	if order == Vertical {
		less = pointLess
	}
	sort.Slice(points, func(i, j int) bool { return less(points[i], points[j]) })
}
