package portfolio

import (
	"github.com/katalvlaran/portfolios/bbl"
)

// Graph is an undirected association graph over BBLs.
//
// Invariants:
//   - b ∈ adjacency[a] ⇔ a ∈ adjacency[b];
//   - a ∉ adjacency[a];
//   - every BBL passed to Define, or to Associate with a distinct partner, is a key of adjacency.
type Graph struct {
	// adjacency[(from)BBL][(to)BBL] = struct{}{}
	adjacency map[bbl.BBL]map[bbl.BBL]struct{}
	edges     int
}

// NewGraph returns an empty Graph.
// Complexity: O(1), or O(n) with WithCapacity(n).
func NewGraph(opts ...Option) *Graph {
	g := &Graph{}
	for _, opt := range opts {
		opt(g)
	}
	if g.adjacency == nil {
		g.adjacency = make(map[bbl.BBL]map[bbl.BBL]struct{})
	}

	return g
}

// Define ensures b is a vertex, without adding edges. Idempotent.
// Complexity: O(1).
func (g *Graph) Define(b bbl.BBL) {
	g.neighborSet(b)
}

// Associate records that a and b belong to the same portfolio.
// Both are defined as vertices. a == b is a no-op and defines nothing. Idempotent.
// Complexity: O(1) amortized.
func (g *Graph) Associate(a, b bbl.BBL) {
	if a == b {
		return
	}
	fromA := g.neighborSet(a)
	if _, ok := fromA[b]; ok {
		return // already associated; symmetry guarantees the mirror exists
	}
	fromA[b] = struct{}{}
	g.neighborSet(b)[a] = struct{}{}
	g.edges++
}

// neighborSet returns the adjacency set of b, creating it when missing.
func (g *Graph) neighborSet(b bbl.BBL) map[bbl.BBL]struct{} {
	set, ok := g.adjacency[b]
	if !ok {
		set = make(map[bbl.BBL]struct{})
		g.adjacency[b] = set
	}

	return set
}

// VertexCount returns the number of distinct BBLs defined so far.
func (g *Graph) VertexCount() int { return len(g.adjacency) }

// EdgeCount returns the number of distinct undirected associations.
func (g *Graph) EdgeCount() int { return g.edges }

// HasVertex reports whether b has been defined.
func (g *Graph) HasVertex(b bbl.BBL) bool {
	_, ok := g.adjacency[b]
	return ok
}

// HasEdge reports whether a and b were associated.
func (g *Graph) HasEdge(a, b bbl.BBL) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// Neighbors returns the BBLs directly associated with b, sorted.
// Unknown b yields nil.
// Complexity: O(d log d).
func (g *Graph) Neighbors(b bbl.BBL) []bbl.BBL {
	set, ok := g.adjacency[b]
	if !ok {
		return nil
	}

	return sortedKeys(set)
}

// Vertices returns every defined BBL, sorted.
// Complexity: O(V log V).
func (g *Graph) Vertices() []bbl.BBL {
	return sortedKeys(g.adjacency)
}

// sortedKeys collects the keys of m sorted by the BBL order.
func sortedKeys[V any](m map[bbl.BBL]V) []bbl.BBL {
	out := make([]bbl.BBL, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	bbl.Sort(out)

	return out
}
