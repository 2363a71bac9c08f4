package app

import (
	"go.trai.ch/rcpack/internal/adapters/logger"             //nolint:depguard // the CLI switches output modes on the concrete logger
	"go.trai.ch/rcpack/internal/adapters/telemetry/progrock" //nolint:depguard // the CLI attaches the watch dashboard to the feed
	"go.trai.ch/rcpack/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    *logger.Logger
	Telemetry ports.Telemetry
	Progress  *progrock.Feed
}
