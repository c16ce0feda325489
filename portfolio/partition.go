package portfolio

import (
	"github.com/katalvlaran/portfolios/bbl"
)

// Partition splits the graph into connected components.
//
// Behavior:
//  1. Sort all vertices by the BBL order.
//  2. Scan them; each vertex not yet assigned starts a new portfolio.
//  3. Collect everything reachable from it with an explicit-stack DFS,
//     so long association chains cannot overflow the goroutine stack.
//  4. Sort the collected members and assign the next portfolio index.
//
// Because scanning is in sorted order, the root of every portfolio is its
// smallest member and portfolios come out ordered by it.
//
// Partition only reads the graph and may be called more than once.
// Complexity: O(V log V + E) time, O(V) memory.
func (g *Graph) Partition() *Map {
	vertices := g.Vertices()
	m := &Map{
		portfolios: make([][]bbl.BBL, 0),
		index:      make(map[bbl.BBL]int, len(vertices)),
	}

	stack := make([]bbl.BBL, 0)
	for _, root := range vertices {
		if _, seen := m.index[root]; seen {
			continue
		}
		id := len(m.portfolios)

		// DFS from root; a vertex is indexed when pushed, so it is pushed once.
		m.index[root] = id
		members := []bbl.BBL{root}
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for v := range g.adjacency[u] {
				if _, seen := m.index[v]; seen {
					continue
				}
				m.index[v] = id
				members = append(members, v)
				stack = append(stack, v)
			}
		}

		bbl.Sort(members)
		m.portfolios = append(m.portfolios, members)
	}

	return m
}
