package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/portfolios/bbl"
	"github.com/katalvlaran/portfolios/parcels"
	"github.com/katalvlaran/portfolios/portfolio"
	"github.com/katalvlaran/portfolios/wow"
)

// slot holds the fetch results of one distinct parcel.
type slot struct {
	addrs *wow.Addresses
	agg   *wow.Aggregate
	err   error
}

// Run fetches ownership data for ps through f and partitions the parcels.
func Run(ctx context.Context, ps []parcels.Parcel, f Fetcher, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Concurrency < 1 {
		o.Concurrency = 1
	}
	log := o.Logger
	if log == nil {
		log = slog.Default()
	}

	// 1. Distinct BBLs in first-seen order.
	seen := make(map[bbl.BBL]struct{}, len(ps))
	distinct := make([]bbl.BBL, 0, len(ps))
	for _, p := range ps {
		if _, ok := seen[p.BBL]; ok {
			continue
		}
		seen[p.BBL] = struct{}{}
		distinct = append(distinct, p.BBL)
	}

	// 2. Concurrent fetch into per-parcel slots.
	slots := make([]slot, len(distinct))
	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for i, b := range distinct {
		g.Go(func() error {
			err := fetch(gctx, f, b, &slots[i], o.Aggregates)
			n := done.Add(1)
			if o.ProgressEvery > 0 && n%int64(o.ProgressEvery) == 0 {
				log.Info("fetch_progress", "done", n, "total", len(distinct))
			}
			if err == nil {
				return nil
			}
			if o.TolerateFetchErrors && ctx.Err() == nil {
				log.Warn("fetch_failed", "bbl", b.String(), "err", err)
				slots[i].err = err
				return nil
			}
			return fmt.Errorf("pipeline: %s: %w", b, err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// 3. Sequential replay.
	res := &Result{
		Parcels:    ps,
		Graph:      portfolio.NewGraph(portfolio.WithCapacity(len(distinct))),
		Aggregates: make(map[bbl.BBL]*wow.Aggregate),
		Failed:     make(map[bbl.BBL]error),
	}
	for i, b := range distinct {
		s := slots[i]
		res.Graph.Define(b)
		if s.err != nil {
			res.Failed[b] = s.err
		}
		if s.addrs != nil {
			for _, entry := range s.addrs.BBLs {
				res.Graph.Associate(b, entry)
			}
			res.SkippedEntries += len(s.addrs.Skipped)
			if len(s.addrs.Skipped) > 0 {
				log.Debug("entries_skipped", "bbl", b.String(), "values", s.addrs.Skipped)
			}
		}
		if o.Aggregates {
			res.Aggregates[b] = s.agg
		}
	}

	// 4. Partition.
	res.Map = res.Graph.Partition()
	log.Info("partition_done",
		"parcels", len(ps),
		"vertices", res.Graph.VertexCount(),
		"associations", res.Graph.EdgeCount(),
		"portfolios", res.Map.Len(),
		"failed", len(res.Failed),
	)

	return res, nil
}

// fetch fills s for b. A missing aggregate is not an error. On an aggregate
// failure s.addrs stays filled, so the associations are still replayed.
func fetch(ctx context.Context, f Fetcher, b bbl.BBL, s *slot, aggregates bool) error {
	addrs, err := f.Lookup(ctx, b)
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	s.addrs = addrs

	if !aggregates {
		return nil
	}
	agg, err := f.Aggregate(ctx, b)
	if errors.Is(err, wow.ErrNoAggregate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	s.agg = agg

	return nil
}
