// Package domain contains the core domain models for graph complexes:
// gradings, graphs, generators, sparse matrices and cohomology tables.
package domain

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Edge is an undirected edge between two vertex indices, normalized so U < V.
type Edge struct {
	U, V int
}

// NewEdge normalizes the endpoint order.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Less orders edges lexicographically. This ordering fixes the edge slots
// used by the orientation conventions, so it must never change.
func (e Edge) Less(other Edge) bool {
	if e.U != other.U {
		return e.U < other.U
	}
	return e.V < other.V
}

// Graph is an immutable simple undirected graph on vertices 0..n-1.
// Edges are kept sorted lexicographically; the sorted position of an edge
// is its orientation slot.
type Graph struct {
	n     int
	edges []Edge
}

// NewGraph builds a graph from an edge list. Edges are normalized, sorted
// and checked for loops, duplicates and out-of-range endpoints.
func NewGraph(n int, edges []Edge) (Graph, error) {
	es := make([]Edge, len(edges))
	for i, e := range edges {
		es[i] = NewEdge(e.U, e.V)
	}
	slices.SortFunc(es, func(a, b Edge) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	for i, e := range es {
		if e.U < 0 || e.V >= n {
			return Graph{}, zerr.With(zerr.Wrap(ErrInvalidGraph, "edge out of range"), "edge", fmt.Sprintf("(%d,%d)", e.U, e.V))
		}
		if e.U == e.V {
			return Graph{}, zerr.With(zerr.Wrap(ErrInvalidGraph, "self loop"), "loop_at", e.U)
		}
		if i > 0 && es[i-1] == e {
			return Graph{}, zerr.With(zerr.Wrap(ErrInvalidGraph, "duplicate edge"), "edge", fmt.Sprintf("(%d,%d)", e.U, e.V))
		}
	}
	return Graph{n: n, edges: es}, nil
}

// MustGraph is NewGraph for literals in tests and table construction.
func MustGraph(n int, edges []Edge) Graph {
	g, err := NewGraph(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// Order returns the number of vertices.
func (g Graph) Order() int { return g.n }

// Size returns the number of edges.
func (g Graph) Size() int { return len(g.edges) }

// Edges returns the edges in lexicographic order. The slice is shared;
// callers must not mutate it.
func (g Graph) Edges() []Edge { return g.edges }

// HasEdge reports whether the normalized edge (a,b) is present.
func (g Graph) HasEdge(a, b int) bool {
	e := NewEdge(a, b)
	_, ok := slices.BinarySearchFunc(g.edges, e, compareEdges)
	return ok
}

// EdgeIndex returns the orientation slot of the normalized edge (a,b).
func (g Graph) EdgeIndex(a, b int) (int, bool) {
	return slices.BinarySearchFunc(g.edges, NewEdge(a, b), compareEdges)
}

func compareEdges(a, b Edge) int {
	if a.Less(b) {
		return -1
	}
	if b.Less(a) {
		return 1
	}
	return 0
}

// Degrees returns the degree of every vertex.
func (g Graph) Degrees() []int {
	deg := make([]int, g.n)
	for _, e := range g.edges {
		deg[e.U]++
		deg[e.V]++
	}
	return deg
}

// MinDegree returns the smallest vertex degree, or 0 for the empty graph.
func (g Graph) MinDegree() int {
	if g.n == 0 {
		return 0
	}
	deg := g.Degrees()
	return slices.Min(deg)
}

// IsConnected reports whether the graph is connected. The empty graph and
// the one-vertex graph count as connected.
func (g Graph) IsConnected() bool {
	if g.n <= 1 {
		return true
	}
	adj := make([][]int, g.n)
	for _, e := range g.edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}
	seen := make([]bool, g.n)
	queue := []int{0}
	seen[0] = true
	count := 1
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range adj[v] {
			if !seen[w] {
				seen[w] = true
				count++
				queue = append(queue, w)
			}
		}
	}
	return count == g.n
}

// Relabel returns the graph with vertex i renamed to p[i].
func (g Graph) Relabel(p []int) Graph {
	es := make([]Edge, len(g.edges))
	for i, e := range g.edges {
		es[i] = NewEdge(p[e.U], p[e.V])
	}
	slices.SortFunc(es, compareEdges)
	return Graph{n: g.n, edges: es}
}

// DeleteEdge returns the graph with the edge at orientation slot i removed.
// Vertex labels are unchanged.
func (g Graph) DeleteEdge(i int) Graph {
	es := make([]Edge, 0, len(g.edges)-1)
	es = append(es, g.edges[:i]...)
	es = append(es, g.edges[i+1:]...)
	return Graph{n: g.n, edges: es}
}

// ContractResult is the outcome of merging the two endpoints of an edge.
type ContractResult struct {
	Graph Graph
	// Slots maps each edge of the contracted graph (in its lexicographic
	// order) back to the orientation slot it occupied in the source graph.
	Slots []int
	// Degenerate is set when the contraction creates a parallel edge, in
	// which case the image is zero and Graph/Slots are unset.
	Degenerate bool
}

// ContractEdge merges the endpoints of the edge at slot i into a single
// vertex and renumbers the remaining vertices densely. The merged vertex
// takes the smaller label. Edge identity is tracked through the merge via
// the source orientation slots.
func (g Graph) ContractEdge(i int) ContractResult {
	e := g.edges[i]
	// q maps old labels to new ones: both endpoints collapse onto e.U's
	// image, and labels above e.V shift down.
	q := make([]int, g.n)
	shift := 0
	for v := 0; v < g.n; v++ {
		if v == e.V {
			shift = 1
			q[v] = q[e.U]
			continue
		}
		q[v] = v - shift
	}

	type slotted struct {
		edge Edge
		slot int
	}
	mapped := make([]slotted, 0, len(g.edges)-1)
	for j, f := range g.edges {
		if j == i {
			continue
		}
		ne := NewEdge(q[f.U], q[f.V])
		mapped = append(mapped, slotted{edge: ne, slot: j})
	}
	slices.SortFunc(mapped, func(a, b slotted) int { return compareEdges(a.edge, b.edge) })
	for k := 1; k < len(mapped); k++ {
		if mapped[k].edge == mapped[k-1].edge {
			return ContractResult{Degenerate: true}
		}
	}

	es := make([]Edge, len(mapped))
	slots := make([]int, len(mapped))
	for k, s := range mapped {
		es[k] = s.edge
		slots[k] = s.slot
	}
	return ContractResult{
		Graph: Graph{n: g.n - 1, edges: es},
		Slots: slots,
	}
}

// String renders the graph as "n:(u,v)(u,v)..." for logs and errors.
func (g Graph) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:", g.n)
	for _, e := range g.edges {
		fmt.Fprintf(&b, "(%d,%d)", e.U, e.V)
	}
	return b.String()
}
