package service

import (
	"github.com/guttosm/cargo-loader/internal/domain/dto"
	"github.com/guttosm/cargo-loader/internal/domain/model"
)

var (
	testBox = model.ShipmentSpec{
		Name:           "crate",
		Volume:         model.Volume{Length: 1000, Width: 1000, Height: 1000},
		Weight:         10,
		CanStack:       true,
		HeightAsHeight: true,
	}
	testOversize = model.ShipmentSpec{
		Name:           "turbine",
		Volume:         model.Volume{Length: 4000, Width: 4000, Height: 4000},
		Weight:         10,
		HeightAsHeight: true,
	}
	testContainer = model.ContainerSpec{Type: "BOX", Length: 3000, Width: 2000, Height: 2000, LiftingCapacity: 5000}
)

func boxInput(count int) dto.LoadPlanInput {
	return dto.LoadPlanInput{
		Shipments:   map[model.ShipmentSpec]int{testBox: count},
		CargoIDs:    map[model.ShipmentSpec]string{testBox: "1"},
		Containers:  []model.CatalogEntry{{ContainerSpec: testContainer, Count: 1}},
		LoadingType: model.LoadingStable,
	}
}

func storedCatalog() *model.ContainerCatalog {
	return &model.ContainerCatalog{
		Version: 2,
		Active:  true,
		Containers: []model.CatalogEntry{
			{ContainerSpec: model.ContainerSpec{Type: "BOX", Length: 3000, Width: 2000, Height: 2000, LiftingCapacity: 5000}, Count: 1},
		},
	}
}
