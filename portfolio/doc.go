// Package portfolio groups parcels into portfolios: maximal sets of BBLs
// connected through shared ownership records.
//
// What:
//
//   - Graph accumulates undirected "same portfolio" associations between BBLs
//     as a map of adjacency sets: adjacency[a][b] = struct{}{}.
//   - Associate(a, b) inserts both directions and implicitly defines both
//     vertices; self-associations are ignored; repeated calls are no-ops.
//   - Define(b) registers a parcel with no associations (a singleton portfolio).
//   - Partition() splits the graph into connected components.
//
// Determinism:
//
//   - Every portfolio is sorted by the BBL order.
//   - Portfolios are ordered by their smallest member.
//   - The result depends only on the vertex and edge sets, never on insertion
//     order or map iteration order.
//
// Concurrency:
//
//   - Graph has no internal locking. Build it from a single goroutine; callers
//     that fetch ownership data in parallel collect results first and replay
//     the associations sequentially.
//
// Complexity:
//
//   - Define, Associate:  O(1) amortized.
//   - Partition:          O(V log V + E) time, O(V) memory.
//
// Errors:
//
//   - ErrPortfolioIndex: Map.At called with an out-of-range index.
//
// Graph operations themselves never fail.
package portfolio
