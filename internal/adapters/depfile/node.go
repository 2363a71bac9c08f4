package depfile

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rcpack/internal/core/ports"
)

// NodeID is the unique identifier for the depfile writer Graft node.
const NodeID graft.ID = "adapter.depfile"

func init() {
	graft.Register(graft.Node[ports.DepfileWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DepfileWriter, error) {
			return NewWriter(), nil
		},
	})
}
