// Package dto defines the request and response bodies of the HTTP API and
// converts them to and from the domain model.
package dto

import (
	"fmt"
	"math"
	"strconv"

	"github.com/guttosm/cargo-loader/internal/domain/model"
)

const (
	// MaxExtension bounds the footprint margin a cargo line may ask for.
	MaxExtension = 1.0
	// MaxCount bounds the quantity of one cargo line or imported row. It
	// matches the lte rule on CargoRequest.Count.
	MaxCount = math.MaxInt32
)

var unitScales = map[string]int{
	"mm": 1,
	"cm": 10,
	"dm": 100,
	"m":  1000,
}

// UnitScale returns the millimetres per unit. Empty means defaultScale.
func UnitScale(unit string, defaultScale int) (int, bool) {
	if unit == "" {
		return defaultScale, defaultScale > 0
	}
	scale, ok := unitScales[unit]
	return scale, ok
}

// ContainerRequest is one container type offered to the planner.
//
// @Description Container type with the number of units available (0 = unlimited)
type ContainerRequest struct {
	Name            string  `json:"name,omitempty" example:"40 ft high cube"`
	Type            string  `json:"type" binding:"required_without=Name" example:"40HQ"`
	Length          float64 `json:"length" binding:"gt=0" example:"1203.2"`
	Width           float64 `json:"width" binding:"gt=0" example:"235"`
	Height          float64 `json:"height" binding:"gt=0" example:"269.7"`
	LiftingCapacity int     `json:"lifting_capacity" binding:"gt=0" example:"28620"`
	Count           int     `json:"count" binding:"gte=0" example:"2"`
} // @name ContainerRequest

// CargoRequest is one shipment line.
//
// A positive Diameter describes cylindrical cargo and replaces both length
// and width. When no orientation flag is given the cargo keeps its declared
// height.
//
// @Description Shipment line: dimensions, weight, handling flags and quantity
type CargoRequest struct {
	Name           string  `json:"name" example:"euro pallet"`
	Type           string  `json:"type,omitempty" example:"pallet"`
	Length         float64 `json:"length" binding:"gte=0" example:"120"`
	Width          float64 `json:"width" binding:"gte=0" example:"80"`
	Height         float64 `json:"height" binding:"gt=0" example:"100"`
	Diameter       float64 `json:"diameter,omitempty" binding:"gte=0" example:"0"`
	Weight         int     `json:"weight" binding:"gte=0" example:"300"`
	Color          string  `json:"color,omitempty" example:"#1f77b4"`
	Count          int     `json:"count" binding:"gt=0,lte=2147483647" example:"24"`
	Stack          *bool   `json:"stack,omitempty" example:"true"`
	HeightAsHeight *bool   `json:"height_as_height,omitempty" example:"true"`
	LengthAsHeight *bool   `json:"length_as_height,omitempty" example:"false"`
	WidthAsHeight  *bool   `json:"width_as_height,omitempty" example:"false"`
	Extension      float64 `json:"extension,omitempty" binding:"gte=0,lte=1" example:"0"`
} // @name CargoRequest

// LoadPlanRequest is the body of POST /api/load-plans.
//
// Without containers and auto the active container catalog is used.
//
// @Description Cargo to load plus an explicit container list, auto mode or neither (active catalog)
type LoadPlanRequest struct {
	Containers  []ContainerRequest `json:"containers,omitempty" binding:"omitempty,dive"`
	Auto        bool               `json:"auto" example:"false"`
	Cargo       []CargoRequest     `json:"cargo" binding:"required,min=1,dive"`
	LoadingType string             `json:"loading_type,omitempty" binding:"omitempty,oneof=stable compact" enums:"stable,compact" example:"stable"`
	// Unit of every length in the request: mm, cm, dm or m.
	Unit string `json:"unit,omitempty" binding:"omitempty,oneof=mm cm dm m" enums:"mm,cm,dm,m" example:"cm"`
} // @name LoadPlanRequest

// LoadPlanInput is a validated request in engine units.
type LoadPlanInput struct {
	Shipments map[model.ShipmentSpec]int
	CargoIDs  map[model.ShipmentSpec]string
	// Containers is empty when the stored catalog should be used.
	Containers  []model.CatalogEntry
	Auto        bool
	LoadingType model.LoadingType
}

// UsesCatalog reports whether the request left container choice to the
// active catalog.
func (in LoadPlanInput) UsesCatalog() bool {
	return !in.Auto && len(in.Containers) == 0
}

// Quantity returns the total number of shipments requested.
func (in LoadPlanInput) Quantity() int {
	n := 0
	for _, c := range in.Shipments {
		n += c
	}
	return n
}

// Defaults fill in what a request leaves out.
type Defaults struct {
	// UnitScale is the millimetres per request unit when no unit is given.
	UnitScale   int
	LoadingType model.LoadingType
	// MaxShipments caps the total quantity when positive.
	MaxShipments int
}

// Build converts r into engine units. r is expected to have passed its
// binding rules; Build checks what they cannot express: the scaled lengths,
// the orientation flags and the shipment cap.
func (r *LoadPlanRequest) Build(d Defaults) (LoadPlanInput, error) {
	var errs ValidationErrors

	scale, ok := UnitScale(r.Unit, d.UnitScale)
	if !ok {
		errs.Add("unit", "must be one of mm, cm, dm, m")
		scale = 1
	}
	loadingType := d.LoadingType
	if r.LoadingType != "" || loadingType == "" {
		if loadingType, ok = model.ParseLoadingType(r.LoadingType); !ok {
			errs.Add("loading_type", "must be stable or compact")
		}
	}

	in := LoadPlanInput{
		Shipments:   make(map[model.ShipmentSpec]int, len(r.Cargo)),
		CargoIDs:    make(map[model.ShipmentSpec]string, len(r.Cargo)),
		Auto:        r.Auto,
		LoadingType: loadingType,
	}

	total := 0
	for i, c := range r.Cargo {
		spec, ok := c.spec(fmt.Sprintf("cargo[%d]", i), scale, &errs)
		if !ok {
			continue
		}
		if _, seen := in.CargoIDs[spec]; !seen {
			in.CargoIDs[spec] = strconv.Itoa(i + 1)
		}
		in.Shipments[spec] += c.Count
		total += min(c.Count, MaxCount)
	}
	if d.MaxShipments > 0 && total > d.MaxShipments {
		errs.Add("cargo", fmt.Sprintf("at most %d shipments per request", d.MaxShipments))
	}

	if !r.Auto {
		for i, c := range r.Containers {
			if entry, ok := c.entry(fmt.Sprintf("containers[%d]", i), scale, &errs); ok {
				in.Containers = append(in.Containers, entry)
			}
		}
	}

	if errs.Empty() {
		return in, nil
	}
	return LoadPlanInput{}, errs
}

func (c CargoRequest) spec(field string, scale int, errs *ValidationErrors) (model.ShipmentSpec, bool) {
	before := len(*errs)

	length, width := c.Length, c.Width
	if c.Diameter > 0 {
		length, width = c.Diameter, c.Diameter
	}

	l := toMillimetres(field+".length", length, scale, errs)
	w := toMillimetres(field+".width", width, scale, errs)
	h := toMillimetres(field+".height", c.Height, scale, errs)

	hh, lh, wh := flag(c.HeightAsHeight, false), flag(c.LengthAsHeight, false), flag(c.WidthAsHeight, false)
	if c.HeightAsHeight == nil && c.LengthAsHeight == nil && c.WidthAsHeight == nil {
		hh = true
	}
	if !hh && !lh && !wh {
		errs.Add(field, "at least one orientation must be allowed")
	}

	if len(*errs) > before {
		return model.ShipmentSpec{}, false
	}
	return model.ShipmentSpec{
		Name:           c.Name,
		Type:           c.Type,
		Volume:         model.Volume{Length: l, Width: w, Height: h, Extension: c.Extension},
		Weight:         c.Weight,
		Color:          c.Color,
		CanStack:       flag(c.Stack, true),
		HeightAsHeight: hh,
		LengthAsHeight: lh,
		WidthAsHeight:  wh,
	}, true
}

func (c ContainerRequest) entry(field string, scale int, errs *ValidationErrors) (model.CatalogEntry, bool) {
	before := len(*errs)

	l := toMillimetres(field+".length", c.Length, scale, errs)
	w := toMillimetres(field+".width", c.Width, scale, errs)
	h := toMillimetres(field+".height", c.Height, scale, errs)

	if len(*errs) > before {
		return model.CatalogEntry{}, false
	}
	return model.CatalogEntry{
		ContainerSpec: model.ContainerSpec{
			Name:            c.Name,
			Type:            c.Type,
			Length:          l,
			Width:           w,
			Height:          h,
			LiftingCapacity: c.LiftingCapacity,
		},
		Count: c.Count,
	}, true
}

// toMillimetres rounds v·scale to whole millimetres. The result must be positive.
func toMillimetres(field string, v float64, scale int, errs *ValidationErrors) int {
	mm := math.Round(v * float64(scale))
	if math.IsNaN(mm) || mm < 1 || mm > math.MaxInt32 {
		errs.Add(field, "must be a positive length")
		return 0
	}
	return int(mm)
}

func flag(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// UpdateContainersRequest is the body of PUT /api/containers.
//
// @Description Replacement container catalog
type UpdateContainersRequest struct {
	Containers []ContainerRequest `json:"containers" binding:"required,min=1,dive"`
	Unit       string             `json:"unit,omitempty" binding:"omitempty,oneof=mm cm dm m" enums:"mm,cm,dm,m" example:"mm"`
} // @name UpdateContainersRequest

// Build converts r into catalog entries in engine units.
func (r *UpdateContainersRequest) Build(defaultScale int) ([]model.CatalogEntry, error) {
	var errs ValidationErrors

	scale, ok := UnitScale(r.Unit, defaultScale)
	if !ok {
		errs.Add("unit", "must be one of mm, cm, dm, m")
		scale = 1
	}

	entries := make([]model.CatalogEntry, 0, len(r.Containers))
	for i, c := range r.Containers {
		if entry, ok := c.entry(fmt.Sprintf("containers[%d]", i), scale, &errs); ok {
			entries = append(entries, entry)
		}
	}

	if errs.Empty() {
		return entries, nil
	}
	return nil, errs
}
