package model

import "time"

// PlanUnit is the length unit used inside the engine and in stored plans.
const PlanUnit = "mm"

// LoadPoint is one placement in loading order.
//
// @Description A shipment placed at (x, y, z) using the oriented dimensions below
type LoadPoint struct {
	X       int    `json:"x" bson:"x" example:"0"`
	Y       int    `json:"y" bson:"y" example:"0"`
	Z       int    `json:"z" bson:"z" example:"0"`
	CargoID string `json:"cargo_id" bson:"cargo_id" example:"1"`
	Length  int    `json:"length" bson:"length" example:"1200"`
	Width   int    `json:"width" bson:"width" example:"800"`
	Height  int    `json:"height" bson:"height" example:"1000"`
}

// ContainerStats summarises one filled container.
type ContainerStats struct {
	Shipments    int     `json:"shipments" bson:"shipments" example:"24"`
	LoadedWeight int     `json:"loaded_weight" bson:"loaded_weight" example:"2880"`
	LoadedVolume int64   `json:"loaded_volume" bson:"loaded_volume" example:"23040000000"`
	VolumeShare  float64 `json:"volume_share" bson:"volume_share" example:"0.68"`
	LoadedLength int     `json:"loaded_length" bson:"loaded_length" example:"9600"`
	LoadedWidth  int     `json:"loaded_width" bson:"loaded_width" example:"2400"`
	LDM          float64 `json:"ldm" bson:"ldm" example:"9.6"`
	FloorShare   float64 `json:"floor_share" bson:"floor_share" example:"0.8"`
}

// PlannedContainer is one container of a load plan.
type PlannedContainer struct {
	Spec       ContainerSpec           `json:"container" bson:"container"`
	Cargos     map[string]ShipmentSpec `json:"cargos" bson:"cargos"`
	LoadPoints []LoadPoint             `json:"load_points" bson:"load_points"`
	Stats      ContainerStats          `json:"stats" bson:"stats"`
}

// Leftover is a shipment quantity that could not be placed.
type Leftover struct {
	CargoID  string       `json:"cargo_id" bson:"cargo_id" example:"2"`
	Shipment ShipmentSpec `json:"shipment" bson:"shipment"`
	Count    int          `json:"count" bson:"count" example:"3"`
}

// LoadPlan is the persisted result of one load calculation.
//
// @Description Containers in loading order with placements, plus leftovers
type LoadPlan struct {
	ID          string      `json:"id" bson:"_id" example:"6f1c2d0e-8a57-4d3b-9b3a-2f0f3a6b1e42"`
	RequestHash string      `json:"-" bson:"request_hash"`
	LoadingType LoadingType `json:"loading_type" bson:"loading_type" example:"stable"`
	// Unit is the length unit of every dimension and coordinate in the plan.
	Unit       string             `json:"unit" bson:"unit" example:"mm"`
	Containers []PlannedContainer `json:"containers" bson:"containers"`
	Leftovers  []Leftover         `json:"leftovers" bson:"leftovers"`
	Requested  int                `json:"requested" bson:"requested" example:"40"`
	Loaded     int                `json:"loaded" bson:"loaded" example:"37"`
	Rounds     int                `json:"rounds" bson:"rounds" example:"2"`
	Partial    bool               `json:"partial,omitempty" bson:"partial,omitempty"`
	DurationMs int64              `json:"duration_ms" bson:"duration_ms" example:"12"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

// LoadPlanSummary is the listing view of a stored plan.
type LoadPlanSummary struct {
	ID          string      `json:"id" bson:"_id"`
	LoadingType LoadingType `json:"loading_type" bson:"loading_type"`
	Containers  int         `json:"containers" bson:"containers"`
	Requested   int         `json:"requested" bson:"requested"`
	Loaded      int         `json:"loaded" bson:"loaded"`
	CreatedAt   time.Time   `json:"created_at" bson:"created_at"`
}

// Summary returns the listing view of p.
func (p LoadPlan) Summary() LoadPlanSummary {
	return LoadPlanSummary{
		ID:          p.ID,
		LoadingType: p.LoadingType,
		Containers:  len(p.Containers),
		Requested:   p.Requested,
		Loaded:      p.Loaded,
		CreatedAt:   p.CreatedAt,
	}
}

// ContainerCatalog is a versioned list of available container types.
type ContainerCatalog struct {
	Version    int            `json:"version" bson:"version" example:"3"`
	Containers []CatalogEntry `json:"containers" bson:"containers"`
	Active     bool           `json:"active" bson:"active"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	UpdatedBy  string         `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

// CatalogEntry is a container type with the number of units on hand.
// A non-positive Count means unlimited.
type CatalogEntry struct {
	ContainerSpec `bson:",inline"`
	Count         int `json:"count" bson:"count" example:"2"`
}
