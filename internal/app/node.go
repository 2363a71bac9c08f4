package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rcpack/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/emitter"            //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/manifest"           //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/rcpack/internal/core/ports"
	"go.trai.ch/rcpack/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			fs.ScannerNodeID,
			manifest.NodeID,
			emitter.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.ConcreteNodeID,
			progrock.NodeID,
			progrock.FeedNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[ports.ManifestBuilder](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.ManifestCache](ctx)
	if err != nil {
		return nil, err
	}

	em, err := graft.Dep[ports.Emitter](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, pipe, builder, cache, em, hasher, store, fileWatcher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	feed, err := graft.Dep[*progrock.Feed](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: telemetry,
		Progress:  feed,
	}, nil
}
