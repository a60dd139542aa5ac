package model

import "sort"

// ShipmentSpec describes one kind of cargo. Two specs with equal fields are
// interchangeable for packing, so the struct is used directly as a map key.
type ShipmentSpec struct {
	Name   string `json:"name" bson:"name" example:"crate"`
	Type   string `json:"type,omitempty" bson:"type,omitempty" example:"box"`
	Volume `bson:",inline"`
	Weight int    `json:"weight" bson:"weight" example:"120"`
	Color  string `json:"color,omitempty" bson:"color,omitempty" example:"#1f77b4"`
	// CanStack allows other shipments to rest on this one.
	CanStack bool `json:"can_stack" bson:"can_stack"`
	// The orientation flags say which declared side may point up.
	HeightAsHeight bool `json:"height_as_height" bson:"height_as_height"`
	LengthAsHeight bool `json:"length_as_height" bson:"length_as_height"`
	WidthAsHeight  bool `json:"width_as_height" bson:"width_as_height"`
}

// Restricted reports whether the shipment cannot be turned on every side.
func (s ShipmentSpec) Restricted() bool {
	return !(s.HeightAsHeight && s.LengthAsHeight && s.WidthAsHeight)
}

// MaxDimension returns the longest declared side.
func (s ShipmentSpec) MaxDimension() int {
	return max(s.Length, s.Width, s.Height)
}

// DimensionSum returns length + width + height.
func (s ShipmentSpec) DimensionSum() int {
	return s.Length + s.Width + s.Height
}

func (s ShipmentSpec) rotated(length, width, height int) ShipmentSpec {
	r := s
	r.Volume = Volume{Length: length, Width: width, Height: height, Extension: s.Extension}
	return r
}

// RotationVariants returns every permitted orientation of s, duplicates removed.
//
// Stackable shipments come largest footprint first so they leave flat tops;
// non-stackable ones come tallest first so they take the least useful space.
func (s ShipmentSpec) RotationVariants() []ShipmentSpec {
	l, w, h := s.Length, s.Width, s.Height
	candidates := make([]ShipmentSpec, 0, 6)
	if s.HeightAsHeight {
		candidates = append(candidates, s.rotated(l, w, h), s.rotated(w, l, h))
	}
	if s.LengthAsHeight {
		candidates = append(candidates, s.rotated(w, h, l), s.rotated(h, w, l))
	}
	if s.WidthAsHeight {
		candidates = append(candidates, s.rotated(l, h, w), s.rotated(h, l, w))
	}

	seen := make(map[Volume]struct{}, len(candidates))
	variants := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.Volume]; ok {
			continue
		}
		seen[c.Volume] = struct{}{}
		variants = append(variants, c)
	}

	sort.SliceStable(variants, func(i, j int) bool {
		a, b := variants[i].Volume, variants[j].Volume
		if s.CanStack {
			return descending(a.Length, a.Width, a.Height, b.Length, b.Width, b.Height)
		}
		return descending(a.Height, a.Length, a.Width, b.Height, b.Length, b.Width)
	})
	return variants
}

func descending(a1, a2, a3, b1, b2, b3 int) bool {
	if a1 != b1 {
		return a1 > b1
	}
	if a2 != b2 {
		return a2 > b2
	}
	return a3 > b3
}

// Valid reports whether the shipment has usable geometry and a non-negative weight.
func (s ShipmentSpec) Valid() bool {
	return s.Volume.Valid() && s.Weight >= 0
}
