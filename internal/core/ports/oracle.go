// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"github.com/skeinlabs/gcx/internal/core/domain"
)

// Oracle is the graph-isomorphism capability the engines build on:
// enumeration of isomorphism classes, canonical labelling and automorphism
// groups. Implementations must respect vertex color classes.
//
//go:generate mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type Oracle interface {
	// Enumerate returns one canonical representative per isomorphism class
	// of connected graphs matching the grading key: its total vertex and
	// edge counts, its color partition and its family's degree constraints.
	Enumerate(ctx context.Context, key domain.GradingKey) ([]domain.Graph, error)

	// Canonicalize returns the canonical form of g under the partition and
	// the vertex permutation that maps g onto it (old label to new label).
	Canonicalize(ctx context.Context, g domain.Graph, partition [][]int) (domain.Graph, []int, error)

	// Automorphisms returns every partition-respecting automorphism of g,
	// the identity included.
	Automorphisms(ctx context.Context, g domain.Graph, partition [][]int) ([][]int, error)
}
