package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rcpack/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/depfile"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/emitter"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/manifest"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/rcpack/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			manifest.NodeID,
			emitter.NodeID,
			fs.HasherNodeID,
			cas.NodeID,
			depfile.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
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

			deps, err := graft.Dep[ports.DepfileWriter](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(builder, cache, em, hasher, store, deps, telemetry, log), nil
		},
	})
}
