// Package pipeline enriches parsed parcels with ownership data and partitions
// them into portfolios.
//
// Behavior:
//  1. Deduplicate parcel BBLs, keeping first-seen order.
//  2. Fetch associated addresses (and optionally aggregates) for each BBL
//     concurrently, bounded by Options.Concurrency. Results land in
//     per-parcel slots; no goroutine touches the graph.
//  3. Replay, from the calling goroutine, Define(parcel) and
//     Associate(parcel, entry) for every result, in parcel order.
//  4. Partition the graph.
//
// Since Partition depends only on vertex and edge sets, the outcome does not
// depend on which fetch finished first.
package pipeline
