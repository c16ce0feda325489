// Package config loads runtime configuration from defaults, an optional
// config file (.portfolios.toml/.yaml), a .env file, PORTFOLIOS_* environment
// variables and bound CLI flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override, e.g.
// PORTFOLIOS_API_BASE_URL for api.base_url.
const EnvPrefix = "PORTFOLIOS"

// ErrInvalid reports a configuration value out of its domain.
var ErrInvalid = errors.New("config: invalid value")

// APIConfig holds Who Owns What client settings.
type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	BBLPath     string        `mapstructure:"bbl_path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// CacheConfig selects where fetched responses are kept. RedisAddr, when set,
// replaces the file cache.
type CacheConfig struct {
	Dir           string        `mapstructure:"dir"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisTTL      time.Duration `mapstructure:"redis_ttl"`
}

// ColumnsConfig names the input CSV columns. A non-empty BBL wins over the
// borough/block/lot triple.
type ColumnsConfig struct {
	Borough string `mapstructure:"borough"`
	Block   string `mapstructure:"block"`
	Lot     string `mapstructure:"lot"`
	BBL     string `mapstructure:"bbl"`
}

// PostgresConfig enables the report sink when DSN is set.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds all runtime configuration for one run.
type Config struct {
	Input          string         `mapstructure:"input"`
	Output         string         `mapstructure:"output"`
	Strict         bool           `mapstructure:"strict"`
	Aggregates     bool           `mapstructure:"aggregates"`
	TolerateErrors bool           `mapstructure:"tolerate_errors"`
	SummaryTop     int            `mapstructure:"summary_top"`
	Columns        ColumnsConfig  `mapstructure:"columns"`
	API            APIConfig      `mapstructure:"api"`
	Cache          CacheConfig    `mapstructure:"cache"`
	Postgres       PostgresConfig `mapstructure:"postgres"`
	Log            LogConfig      `mapstructure:"log"`
}

// Defaults are applied before any other source.
var Defaults = map[string]any{
	"input":                "data/Certification_of_No_Harassment__CONH__Pilot_Building_List.csv",
	"output":               "portfolios.csv",
	"strict":               false,
	"aggregates":           true,
	"tolerate_errors":      false,
	"summary_top":          10,
	"columns.borough":      "Borocode",
	"columns.block":        "Block",
	"columns.lot":          "Lot",
	"columns.bbl":          "",
	"api.base_url":         "https://whoownswhat.justfix.org",
	"api.bbl_path":         "$.addrs[*].bbl",
	"api.timeout":          30 * time.Second,
	"api.concurrency":      4,
	"cache.dir":            "cache",
	"cache.redis_addr":     "",
	"cache.redis_password": "",
	"cache.redis_db":       0,
	"cache.redis_ttl":      0 * time.Second,
	"postgres.dsn":         "",
	"log.level":            "info",
	"log.format":           "text",
}

// Init wires viper to the config file, .env and environment. An explicit
// cfgFile must exist; otherwise .portfolios.{toml,yaml} is searched in the
// working and home directories and may be absent.
func Init(cfgFile string) error {
	// A missing .env is normal.
	_ = godotenv.Load(".env")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".portfolios")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: reading %s: %w", viper.ConfigFileUsed(), err)
	}

	return nil
}

// bindEnv maps PORTFOLIOS_SECTION_KEY variables onto section.key.
func bindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying Defaults for any value not
// set by a config file, the environment or flags.
func Load() (Config, error) {
	for k, v := range Defaults {
		viper.SetDefault(k, v)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks value domains.
func (c Config) Validate() error {
	switch {
	case c.API.Concurrency < 1:
		return fmt.Errorf("%w: api.concurrency must be >= 1, got %d", ErrInvalid, c.API.Concurrency)
	case c.API.Timeout <= 0:
		return fmt.Errorf("%w: api.timeout must be positive, got %s", ErrInvalid, c.API.Timeout)
	case c.API.BaseURL == "":
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalid)
	case c.API.BBLPath == "":
		return fmt.Errorf("%w: api.bbl_path is empty", ErrInvalid)
	case c.Columns.BBL == "" && (c.Columns.Borough == "" || c.Columns.Block == "" || c.Columns.Lot == ""):
		return fmt.Errorf("%w: columns need either bbl or borough/block/lot", ErrInvalid)
	case c.SummaryTop < 0:
		return fmt.Errorf("%w: summary_top must be >= 0, got %d", ErrInvalid, c.SummaryTop)
	}
	if _, err := jsonpath.New(c.API.BBLPath); err != nil {
		return fmt.Errorf("%w: api.bbl_path %q: %v", ErrInvalid, c.API.BBLPath, err)
	}

	return nil
}
