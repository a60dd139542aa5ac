package model

import "math"

// HasVolume is implemented by anything with physical dimensions.
// Shipments and containers share fit-check code through it.
type HasVolume interface {
	Dimensions() Volume
}

// Volume holds the length, width and height of a physical object in millimetres.
//
// Extension is a packing margin: the footprint is inflated by sqrt(1+Extension)
// on both horizontal axes, modelling stacking clearance without changing the
// declared dimensions.
type Volume struct {
	Length    int     `json:"length" bson:"length" example:"1200"`
	Width     int     `json:"width" bson:"width" example:"800"`
	Height    int     `json:"height" bson:"height" example:"1000"`
	Extension float64 `json:"extension,omitempty" bson:"extension,omitempty" example:"0"`
}

// Dimensions implements HasVolume.
func (v Volume) Dimensions() Volume { return v }

// Valid reports whether all sides are positive and the extension is non-negative.
func (v Volume) Valid() bool {
	return v.Length > 0 && v.Width > 0 && v.Height > 0 && v.Extension >= 0
}

// LoadingLength is the length occupied on the floor, extension included.
func (v Volume) LoadingLength() int { return v.inflate(v.Length) }

// LoadingWidth is the width occupied on the floor, extension included.
func (v Volume) LoadingWidth() int { return v.inflate(v.Width) }

func (v Volume) inflate(side int) int {
	if v.Extension == 0 {
		return side
	}
	return int(math.Ceil(float64(side) * math.Sqrt(1+v.Extension)))
}

// Volume returns the declared volume.
func (v Volume) Volume() int64 {
	return int64(v.Length) * int64(v.Width) * int64(v.Height)
}

// LoadingVolume returns the volume actually consumed inside a container.
func (v Volume) LoadingVolume() int64 {
	return v.FootprintArea() * int64(v.Height)
}

// FootprintArea returns the floor area taken when loaded, extension included.
func (v Volume) FootprintArea() int64 {
	return int64(v.LoadingLength()) * int64(v.LoadingWidth())
}

// Extent returns the loading extents as a point offset (length, width, height).
func (v Volume) Extent() Point {
	return Point{X: v.LoadingLength(), Y: v.LoadingWidth(), Z: v.Height}
}
