package loading

import (
	"math"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

// Default selector thresholds. A container counts as large enough once its
// capacity exceeds the remaining demand by the threshold factor.
const (
	DefaultVolumeThreshold = 1.1
	DefaultWeightThreshold = 1.0
)

// Demand is the aggregate of shipments not yet loaded.
type Demand struct {
	Volume int64
	Weight int64
}

// DemandOf sums volume and weight over remaining quantities.
func DemandOf(remaining map[model.ShipmentSpec]int) Demand {
	var d Demand
	for spec, n := range remaining {
		if n <= 0 {
			continue
		}
		d.Volume += spec.Volume.LoadingVolume() * int64(n)
		d.Weight += int64(spec.Weight) * int64(n)
	}
	return d
}

// ContainerSelector picks the container type best suited to the remaining demand.
type ContainerSelector struct {
	VolumeThreshold float64
	WeightThreshold float64
}

// NewContainerSelector returns a selector with the default thresholds.
func NewContainerSelector() ContainerSelector {
	return ContainerSelector{
		VolumeThreshold: DefaultVolumeThreshold,
		WeightThreshold: DefaultWeightThreshold,
	}
}

type coefficients struct {
	volume, weight float64
}

func (c coefficients) min() float64 { return min(c.volume, c.weight) }

// sum skips infinite terms so zero-weight demand still ranks by volume.
func (c coefficients) sum() float64 {
	var total float64
	for _, v := range []float64{c.volume, c.weight} {
		if !math.IsInf(v, 1) {
			total += v
		}
	}
	return total
}

func (s ContainerSelector) coefficients(spec model.ContainerSpec, d Demand) coefficients {
	return coefficients{
		volume: ratio(float64(spec.Volume()), float64(d.Volume)) / s.VolumeThreshold,
		weight: ratio(float64(spec.LiftingCapacity), float64(d.Weight)) / s.WeightThreshold,
	}
}

// ratio treats zero demand as infinitely covered.
func ratio(capacity, demand float64) float64 {
	if demand <= 0 {
		return math.Inf(1)
	}
	return capacity / demand
}

// Select scans candidates keeping a running best. While the best is still
// short of the demand, a candidate closer to sufficiency replaces it; once
// it is sufficient, only a sufficient candidate with a smaller coefficient
// sum does. It returns false when there are no candidates.
func (s ContainerSelector) Select(candidates []model.ContainerSpec, d Demand) (model.ContainerSpec, bool) {
	if len(candidates) == 0 {
		return model.ContainerSpec{}, false
	}
	best := candidates[0]
	bestC := s.coefficients(best, d)
	for _, c := range candidates[1:] {
		cc := s.coefficients(c, d)
		if bestC.min() < 1 {
			if cc.min() > bestC.min() {
				best, bestC = c, cc
			}
			continue
		}
		if cc.min() >= 1 && cc.sum() < bestC.sum() {
			best, bestC = c, cc
		}
	}
	return best, true
}
