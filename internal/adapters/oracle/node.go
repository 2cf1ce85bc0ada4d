package oracle

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/skeinlabs/gcx/internal/core/ports"
)

// NodeID is the unique identifier for the isomorphism oracle Graft node.
const NodeID graft.ID = "adapter.oracle"

func init() {
	graft.Register(graft.Node[ports.Oracle]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Oracle, error) {
			return NewBruteForce(), nil
		},
	})
}
