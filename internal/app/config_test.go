package app

import (
	"time"

	"github.com/guttosm/cargo-loader/config"
)

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "8080", RateLimit: 100, RateWindow: time.Minute},
		Cache:  config.CacheConfig{Size: 64, TTL: time.Minute},
		Loading: config.LoadingConfig{
			VolumeThreshold:    1.1,
			WeightThreshold:    1.0,
			Parallelism:        1,
			Timeout:            10 * time.Second,
			DefaultLoadingType: "stable",
			UnitScale:          10,
			MaxShipments:       1000,
		},
	}
}
