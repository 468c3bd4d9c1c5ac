package storage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasklist/internal/core/ports"
)

// NodeID is the unique identifier for the repository factory Graft node.
const NodeID graft.ID = "adapter.storage"

func init() {
	graft.Register(graft.Node[ports.RepositoryFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RepositoryFactory, error) {
			return NewFactory(), nil
		},
	})
}
