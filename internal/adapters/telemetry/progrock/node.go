package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/vito/progrock"
	"go.trai.ch/rcpack/internal/adapters/logger"
	"go.trai.ch/rcpack/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the telemetry adapter node.
	NodeID graft.ID = "adapter.telemetry"
	// FeedNodeID is the unique identifier for the dashboard feed node.
	FeedNodeID graft.ID = "adapter.telemetry.feed"
)

func init() {
	graft.Register(graft.Node[*Feed]{
		ID:        FeedNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Feed, error) {
			return NewFeed(), nil
		},
	})

	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, FeedNodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			feed, err := graft.Dep[*Feed](ctx)
			if err != nil {
				return nil, err
			}
			return NewRecorder(Fanout{progrock.NewTape(), NewStatusLog(log), feed}), nil
		},
	})
}
