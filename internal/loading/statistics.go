package loading

import "github.com/guttosm/cargo-loader/internal/domain/model"

// Statistics are the running totals of a container.
type Statistics struct {
	Shipments    int
	LoadedWeight int
	LoadedVolume int64
	LoadedLength int
	LoadedWidth  int
	// FloorArea sums the footprints of the shipments standing on the floor.
	FloorArea int64
}

func (s *Statistics) add(p Placement) {
	v := p.Shipment.Spec.Volume
	s.Shipments++
	s.LoadedWeight += p.Shipment.Spec.Weight
	s.LoadedVolume += v.LoadingVolume()
	s.LoadedLength = max(s.LoadedLength, p.Point.X+v.LoadingLength())
	s.LoadedWidth = max(s.LoadedWidth, p.Point.Y+v.LoadingWidth())
	if p.Point.Z == 0 {
		s.FloorArea += v.FootprintArea()
	}
}

// LDM returns the loading metres used: the loaded floor rectangle divided by
// the lane width.
func (s Statistics) LDM() float64 {
	return float64(s.LoadedLength) * float64(s.LoadedWidth) / model.LDMLaneWidth
}

// VolumeShare returns the loaded fraction of the container volume.
func (s Statistics) VolumeShare(spec model.ContainerSpec) float64 {
	total := spec.Volume()
	if total == 0 {
		return 0
	}
	return float64(s.LoadedVolume) / float64(total)
}

// FloorShare returns the fraction of the container floor covered by
// shipments standing on it.
func (s Statistics) FloorShare(spec model.ContainerSpec) float64 {
	floor := int64(spec.Length) * int64(spec.Width)
	if floor == 0 {
		return 0
	}
	return float64(s.FloorArea) / float64(floor)
}
