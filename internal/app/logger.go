// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/cargo-loader/config"
	"github.com/guttosm/cargo-loader/internal/logger"
)

// InitializeLogger configures the global JSON logger.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
