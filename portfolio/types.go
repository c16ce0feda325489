package portfolio

import (
	"errors"

	"github.com/katalvlaran/portfolios/bbl"
)

// ErrPortfolioIndex indicates a portfolio index outside [0, Map.Len()).
var ErrPortfolioIndex = errors.New("portfolio: index out of range")

// Option configures a Graph before use.
type Option func(g *Graph)

// WithCapacity preallocates room for n vertices.
func WithCapacity(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.adjacency = make(map[bbl.BBL]map[bbl.BBL]struct{}, n)
		}
	}
}

// Map is the partition of a Graph into portfolios.
//
// portfolios[i] is sorted; portfolios are ordered by their first element.
// index maps every vertex to the position of its portfolio.
type Map struct {
	portfolios [][]bbl.BBL
	index      map[bbl.BBL]int
}
