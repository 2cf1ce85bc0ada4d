package store

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"

	"github.com/skeinlabs/gcx/internal/adapters/config"
	"github.com/skeinlabs/gcx/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.artifact_store"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			plan, err := loader.Load(".")
			if err != nil {
				return nil, err
			}
			root, err := loader.DiscoverRoot(".")
			if err != nil {
				return nil, err
			}
			path := plan.StorePath
			if !filepath.IsAbs(path) {
				path = filepath.Join(root, path)
			}
			return NewStore(path)
		},
	})
}
