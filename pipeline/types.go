package pipeline

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/portfolios/bbl"
	"github.com/katalvlaran/portfolios/parcels"
	"github.com/katalvlaran/portfolios/portfolio"
	"github.com/katalvlaran/portfolios/wow"
)

// Fetcher retrieves ownership data for one parcel. *wow.Client satisfies it.
type Fetcher interface {
	Lookup(ctx context.Context, b bbl.BBL) (*wow.Addresses, error)
	Aggregate(ctx context.Context, b bbl.BBL) (*wow.Aggregate, error)
}

// Option configures Run.
type Option func(*Options)

// Options holds Run settings.
type Options struct {
	// Concurrency bounds in-flight fetches; values < 1 mean 1.
	Concurrency int

	// Aggregates also fetches the aggregate record of every parcel.
	Aggregates bool

	// TolerateFetchErrors logs failed fetches and keeps going; the parcel
	// still appears as a vertex. By default the first failure aborts Run.
	TolerateFetchErrors bool

	// ProgressEvery logs progress after this many parcels; 0 disables it.
	ProgressEvery int

	// Logger receives progress and tolerated errors; nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns sequential, fail-fast settings without aggregates.
func DefaultOptions() Options {
	return Options{Concurrency: 1, ProgressEvery: 100}
}

// WithConcurrency sets Options.Concurrency.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithAggregates enables aggregate fetching.
func WithAggregates(on bool) Option {
	return func(o *Options) { o.Aggregates = on }
}

// WithTolerateFetchErrors keeps going after failed fetches.
func WithTolerateFetchErrors() Option {
	return func(o *Options) { o.TolerateFetchErrors = true }
}

// WithProgressEvery sets Options.ProgressEvery.
func WithProgressEvery(n int) Option {
	return func(o *Options) { o.ProgressEvery = n }
}

// WithLogger sets Options.Logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Result is the outcome of Run.
type Result struct {
	// Parcels is the input, unchanged.
	Parcels []parcels.Parcel

	// Graph holds every association discovered.
	Graph *portfolio.Graph

	// Map is Graph.Partition().
	Map *portfolio.Map

	// Aggregates by parcel BBL; nil entries mean the API had none.
	Aggregates map[bbl.BBL]*wow.Aggregate

	// Failed holds tolerated fetch errors by parcel BBL.
	Failed map[bbl.BBL]error

	// SkippedEntries counts associated entries whose BBL did not parse.
	SkippedEntries int
}
