package portfolio_test

import (
	"fmt"

	"github.com/katalvlaran/portfolios/bbl"
	"github.com/katalvlaran/portfolios/portfolio"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Partition
////////////////////////////////////////////////////////////////////////////////

// ExampleGraph_Partition builds two portfolios plus a parcel with no
// associations, then prints each portfolio and a reverse lookup.
func ExampleGraph_Partition() {
	g := portfolio.NewGraph()
	g.Associate(bbl.MustParse("3000070002"), bbl.MustParse("3000070001"))
	g.Associate(bbl.MustParse("1001000001"), bbl.MustParse("1001000002"))
	g.Associate(bbl.MustParse("1001000002"), bbl.MustParse("2000500010"))
	g.Define(bbl.MustParse("4000010001"))

	m := g.Partition()
	for i, p := range m.Portfolios() {
		fmt.Println(i, p)
	}
	i, _ := m.IndexOf(bbl.MustParse("3000070002"))
	fmt.Println("3000070002 ->", i, "size", m.SizeOf(bbl.MustParse("3000070002")))

	// Output:
	// 0 [1001000001 1001000002 2000500010]
	// 1 [3000070001 3000070002]
	// 2 [4000010001]
	// 3000070002 -> 1 size 2
}
