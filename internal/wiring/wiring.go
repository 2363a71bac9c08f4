// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rcpack/internal/adapters/cas"
	_ "go.trai.ch/rcpack/internal/adapters/config"
	_ "go.trai.ch/rcpack/internal/adapters/depfile"
	_ "go.trai.ch/rcpack/internal/adapters/emitter"
	_ "go.trai.ch/rcpack/internal/adapters/fs"
	_ "go.trai.ch/rcpack/internal/adapters/logger"
	_ "go.trai.ch/rcpack/internal/adapters/manifest"
	_ "go.trai.ch/rcpack/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/rcpack/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/rcpack/internal/app"
	_ "go.trai.ch/rcpack/internal/engine/pipeline"
)
