package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/portfolios/config"
	"github.com/katalvlaran/portfolios/httpcache"
	"github.com/katalvlaran/portfolios/logger"
	"github.com/katalvlaran/portfolios/parcels"
	"github.com/katalvlaran/portfolios/pipeline"
	"github.com/katalvlaran/portfolios/report"
	"github.com/katalvlaran/portfolios/store"
	"github.com/katalvlaran/portfolios/wow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build portfolios from the input CSV and write the report",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	addPipelineFlags(runCmd)
	runCmd.Flags().StringP("output", "o", "", `report CSV path, "-" for stdout`)
	runCmd.Flags().String("pg-dsn", "", "also save rows to this PostgreSQL database")
	runCmd.Flags().String("run-id", "", "run id for saved rows (default: UTC timestamp)")

	rootCmd.AddCommand(runCmd)
}

// addPipelineFlags registers the flags shared by run and summary.
func addPipelineFlags(c *cobra.Command) {
	c.Flags().StringP("input", "i", "", "input CSV of parcels")
	c.Flags().Bool("strict", false, "abort on the first malformed record")
	c.Flags().Bool("aggregates", false, "fetch aggregate statistics per parcel")
	c.Flags().Bool("tolerate-errors", false, "keep going when a fetch fails")
	c.Flags().Int("concurrency", 0, "parallel API requests")
	c.Flags().String("api-url", "", "Who Owns What base URL")
	c.Flags().String("cache-dir", "", "response cache directory")
	c.Flags().String("redis", "", "cache responses in Redis at this address instead")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	res, err := execute(ctx, cfg)
	if err != nil {
		return err
	}
	rows := report.Build(res)

	if err := writeReport(cmd.OutOrStdout(), cfg.Output, rows); err != nil {
		return err
	}

	if cfg.Postgres.DSN != "" {
		runID, _ := cmd.Flags().GetString("run-id")
		if runID == "" {
			runID = time.Now().UTC().Format("20060102T150405Z")
		}
		if err := saveRows(ctx, cfg.Postgres.DSN, runID, rows); err != nil {
			return err
		}
	}

	logger.L().Info("run_done",
		"rows", len(rows),
		"portfolios", res.Map.Len(),
		"failed", len(res.Failed),
		"output", cfg.Output,
	)

	return nil
}

// execute reads the input and runs the pipeline against the configured API.
func execute(ctx context.Context, c config.Config) (*pipeline.Result, error) {
	ps, err := readParcels(c)
	if err != nil {
		return nil, err
	}

	cache, closeCache, err := openCache(ctx, c.Cache)
	if err != nil {
		return nil, err
	}
	defer closeCache()

	client := wow.New(
		wow.WithBaseURL(c.API.BaseURL),
		wow.WithBBLPath(c.API.BBLPath),
		wow.WithHTTPClient(httpcache.NewClient(cache, c.API.Timeout, logger.L())),
	)

	opts := []pipeline.Option{
		pipeline.WithConcurrency(c.API.Concurrency),
		pipeline.WithAggregates(c.Aggregates),
		pipeline.WithLogger(logger.L()),
	}
	if c.TolerateErrors {
		opts = append(opts, pipeline.WithTolerateFetchErrors())
	}

	return pipeline.Run(ctx, ps, client, opts...)
}

func readParcels(c config.Config) ([]parcels.Parcel, error) {
	f, err := os.Open(c.Input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	opts := []parcels.Option{
		parcels.WithOnSkip(func(e *parcels.RecordError) {
			logger.L().Warn("record_skipped", "line", e.Line, "column", e.Column, "value", e.Value, "err", e.Err)
		}),
	}
	if c.Columns.BBL != "" {
		opts = append(opts, parcels.WithBBLColumn(c.Columns.BBL))
	} else {
		opts = append(opts, parcels.WithColumns(c.Columns.Borough, c.Columns.Block, c.Columns.Lot))
	}
	if c.Strict {
		opts = append(opts, parcels.WithStrict())
	}

	ps, err := parcels.Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.Input, err)
	}
	logger.L().Info("input_read", "file", c.Input, "parcels", len(ps))

	return ps, nil
}

// openCache returns the Redis store when an address is configured and the
// file store otherwise.
func openCache(ctx context.Context, c config.CacheConfig) (httpcache.Store, func(), error) {
	if c.RedisAddr != "" {
		rs, err := httpcache.NewRedisStore(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB, c.RedisTTL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}
	fs, err := httpcache.NewFileStore(c.Dir)
	if err != nil {
		return nil, nil, err
	}

	return fs, func() {}, nil
}

func writeReport(stdout io.Writer, path string, rows []report.Row) error {
	if path == "-" {
		return report.WriteCSV(stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := report.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func saveRows(ctx context.Context, dsn, runID string, rows []report.Row) error {
	s, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.EnsureSchema(ctx); err != nil {
		return err
	}

	return s.SaveRows(ctx, runID, rows)
}
