package portfolio

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/portfolios/bbl"
)

// Len returns the number of portfolios.
func (m *Map) Len() int { return len(m.portfolios) }

// Portfolios returns every portfolio in order. The slices are copies.
func (m *Map) Portfolios() [][]bbl.BBL {
	out := make([][]bbl.BBL, len(m.portfolios))
	for i, p := range m.portfolios {
		out[i] = slices.Clone(p)
	}

	return out
}

// At returns a copy of portfolio i, or ErrPortfolioIndex.
func (m *Map) At(i int) ([]bbl.BBL, error) {
	if i < 0 || i >= len(m.portfolios) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPortfolioIndex, i, len(m.portfolios))
	}

	return slices.Clone(m.portfolios[i]), nil
}

// IndexOf returns the index of the portfolio holding b.
func (m *Map) IndexOf(b bbl.BBL) (int, bool) {
	i, ok := m.index[b]
	return i, ok
}

// PortfolioOf returns a copy of the portfolio holding b, or nil.
func (m *Map) PortfolioOf(b bbl.BBL) []bbl.BBL {
	i, ok := m.index[b]
	if !ok {
		return nil
	}

	return slices.Clone(m.portfolios[i])
}

// SizeOf returns the size of the portfolio holding b; 0 when b is unknown.
func (m *Map) SizeOf(b bbl.BBL) int {
	i, ok := m.index[b]
	if !ok {
		return 0
	}

	return len(m.portfolios[i])
}

// Sizes returns the size of each portfolio, by index.
func (m *Map) Sizes() []int {
	out := make([]int, len(m.portfolios))
	for i, p := range m.portfolios {
		out[i] = len(p)
	}

	return out
}

// Index returns a copy of the BBL → portfolio index lookup.
func (m *Map) Index() map[bbl.BBL]int {
	out := make(map[bbl.BBL]int, len(m.index))
	for k, v := range m.index {
		out[k] = v
	}

	return out
}
