// Package portfolios groups New York City parcels into ownership portfolios.
//
// What:
//
//	A parcel is identified by its BBL (borough, block, lot). An ownership
//	lookup says which other parcels share an owner with a given one. Parcels
//	linked directly or through a chain of such links form one portfolio.
//
// Packages:
//
//	bbl/        BBL value type: parse, canonical ten-digit text, total order
//	portfolio/  undirected association graph and its deterministic partition
//	parcels/    input CSV of parcels (borough/block/lot or one BBL column)
//	wow/        Who Owns What API client (address lookup, aggregates)
//	httpcache/  caching http.RoundTripper over a file or Redis store
//	pipeline/   concurrent fetch, sequential graph build, partition
//	report/     per-parcel CSV rows and Markdown summaries
//	store/      PostgreSQL sink for report rows
//	config/     viper/TOML/.env configuration
//	logger/     slog setup
//	cmd/        the portfolios command line
//
// Determinism:
//
//	For the same set of parcels and associations, the portfolios, their
//	order and the member order are always the same: portfolios are ordered
//	by their smallest member and members ascend by BBL.
package portfolios
