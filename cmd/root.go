package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/portfolios/config"
	"github.com/katalvlaran/portfolios/logger"
)

var rootCmd = &cobra.Command{
	Use:   "portfolios",
	Short: "Group NYC parcels into ownership portfolios",
	Long: "portfolios reads a list of parcels (borough/block/lot), asks Who Owns What which\n" +
		"parcels share an owner with each one, and partitions everything into portfolios.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// cfg is the configuration of the running command, set by loadConfig.
var cfg config.Config

// flagKeys maps flag names to config keys; bound per command before it runs.
var flagKeys = map[string]string{
	"log-level":       "log.level",
	"log-format":      "log.format",
	"input":           "input",
	"output":          "output",
	"strict":          "strict",
	"aggregates":      "aggregates",
	"tolerate-errors": "tolerate_errors",
	"concurrency":     "api.concurrency",
	"api-url":         "api.base_url",
	"cache-dir":       "cache.dir",
	"redis":           "cache.redis_addr",
	"pg-dsn":          "postgres.dsn",
	"top":             "summary_top",
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default .portfolios.toml in . or $HOME)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "text or json")
}

// loadConfig reads the config file and environment, applies the flags the
// user set and configures logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.Init(cfgFile); err != nil {
		return err
	}
	bindFlags(cmd.Flags())

	c, err := config.Load()
	if err != nil {
		return err
	}
	cfg = c
	logger.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if used := viper.ConfigFileUsed(); used != "" {
		logger.L().Debug("config_loaded", "file", used)
	}

	return nil
}

func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && f.Changed {
			_ = viper.BindPFlag(key, f)
		}
	})
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
