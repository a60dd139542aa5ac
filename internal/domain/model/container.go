package model

// LDMLaneWidth converts loaded floor area (mm²) into loading metres.
// A trailer lane is 2400 mm wide, and the extra factor of 1000 turns mm into m.
const LDMLaneWidth = 2400 * 1000

// ContainerSpec describes one container type.
type ContainerSpec struct {
	Name            string `json:"name,omitempty" bson:"name,omitempty" example:"40 ft high cube"`
	Type            string `json:"type" bson:"type" example:"40HQ"`
	Length          int    `json:"length" bson:"length" example:"12032"`
	Width           int    `json:"width" bson:"width" example:"2350"`
	Height          int    `json:"height" bson:"height" example:"2697"`
	LiftingCapacity int    `json:"lifting_capacity" bson:"lifting_capacity" example:"28620"`
}

// Dimensions implements HasVolume.
func (c ContainerSpec) Dimensions() Volume {
	return Volume{Length: c.Length, Width: c.Width, Height: c.Height}
}

// Volume returns the inner volume.
func (c ContainerSpec) Volume() int64 {
	return c.Dimensions().Volume()
}

// Valid reports whether the spec has positive dimensions and a non-negative capacity.
func (c ContainerSpec) Valid() bool {
	return c.Dimensions().Valid() && c.LiftingCapacity >= 0
}

// Label returns the name, falling back to the type.
func (c ContainerSpec) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type
}

// AutoContainers is the standard ISO catalog used when the caller asks for
// automatic container selection. Each type is available without limit.
var AutoContainers = []ContainerSpec{
	{Name: "20 ft dry van", Type: "20DV", Length: 5895, Width: 2350, Height: 2393, LiftingCapacity: 28200},
	{Name: "40 ft dry van", Type: "40DV", Length: 12032, Width: 2350, Height: 2393, LiftingCapacity: 28800},
	{Name: "40 ft high cube", Type: "40HQ", Length: 12032, Width: 2350, Height: 2697, LiftingCapacity: 28620},
	{Name: "45 ft high cube", Type: "45HQ", Length: 13556, Width: 2350, Height: 2697, LiftingCapacity: 27600},
}

// LoadingType selects the order in which free corners are tried.
type LoadingType string

const (
	// LoadingStable fills complete floor layers before rising.
	LoadingStable LoadingType = "stable"
	// LoadingCompact fills columns before moving along the container.
	LoadingCompact LoadingType = "compact"
)

// ParseLoadingType maps a request value onto a LoadingType. Empty means stable.
func ParseLoadingType(s string) (LoadingType, bool) {
	switch LoadingType(s) {
	case "", LoadingStable:
		return LoadingStable, true
	case LoadingCompact:
		return LoadingCompact, true
	default:
		return "", false
	}
}
