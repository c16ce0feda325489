package portfolio_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/portfolios/bbl"
	"github.com/katalvlaran/portfolios/portfolio"
)

// randomGraph builds a sparse graph of n vertices and n edges.
func randomGraph(n int) *portfolio.Graph {
	rng := rand.New(rand.NewSource(42))
	g := portfolio.NewGraph(portfolio.WithCapacity(n))
	pick := func() bbl.BBL {
		i := rng.Intn(n)
		return bbl.New(bbl.Borough(1+i%5), uint32(i/5), uint16(i%9999))
	}
	for i := 0; i < n; i++ {
		g.Associate(pick(), pick())
	}

	return g
}

// BenchmarkAssociate measures edge insertion with repeated endpoints.
func BenchmarkAssociate(b *testing.B) {
	g := portfolio.NewGraph()
	root := bbl.New(1, 1, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Associate(root, bbl.New(2, uint32(i%100000), uint16(i%10000)))
	}
}

// BenchmarkPartition measures Partition on a 100k-vertex random graph.
// Complexity: O(V log V + E)
func BenchmarkPartition(b *testing.B) {
	g := randomGraph(100_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Partition()
	}
}
