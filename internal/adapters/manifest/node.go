package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/rcpack/internal/core/domain"
	"go.trai.ch/rcpack/internal/core/ports"
)

// NodeID is the unique identifier for the manifest cache Graft node.
const NodeID graft.ID = "adapter.manifest_cache"

func init() {
	graft.Register(graft.Node[ports.ManifestCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestCache, error) {
			return NewCache(domain.SystemClock), nil
		},
	})
}
