package config

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is the conventional location of the config file.
const DefaultPath = ".portfolios.toml"

// fileDoc mirrors Config with durations as strings, the form viper decodes.
type fileDoc struct {
	Input          string `toml:"input"`
	Output         string `toml:"output"`
	Strict         bool   `toml:"strict"`
	Aggregates     bool   `toml:"aggregates"`
	TolerateErrors bool   `toml:"tolerate_errors"`
	SummaryTop     int    `toml:"summary_top"`
	Columns        struct {
		Borough string `toml:"borough"`
		Block   string `toml:"block"`
		Lot     string `toml:"lot"`
		BBL     string `toml:"bbl"`
	} `toml:"columns"`
	API struct {
		BaseURL     string `toml:"base_url"`
		BBLPath     string `toml:"bbl_path"`
		Timeout     string `toml:"timeout"`
		Concurrency int    `toml:"concurrency"`
	} `toml:"api"`
	Cache struct {
		Dir       string `toml:"dir"`
		RedisAddr string `toml:"redis_addr"`
		RedisDB   int    `toml:"redis_db"`
		RedisTTL  string `toml:"redis_ttl"`
	} `toml:"cache"`
	Postgres struct {
		DSN string `toml:"dsn"`
	} `toml:"postgres"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

func toDoc(c Config) fileDoc {
	var d fileDoc
	d.Input, d.Output = c.Input, c.Output
	d.Strict, d.Aggregates, d.TolerateErrors = c.Strict, c.Aggregates, c.TolerateErrors
	d.SummaryTop = c.SummaryTop
	d.Columns.Borough, d.Columns.Block, d.Columns.Lot, d.Columns.BBL = c.Columns.Borough, c.Columns.Block, c.Columns.Lot, c.Columns.BBL
	d.API.BaseURL, d.API.BBLPath = c.API.BaseURL, c.API.BBLPath
	d.API.Timeout, d.API.Concurrency = c.API.Timeout.String(), c.API.Concurrency
	d.Cache.Dir, d.Cache.RedisAddr, d.Cache.RedisDB = c.Cache.Dir, c.Cache.RedisAddr, c.Cache.RedisDB
	d.Cache.RedisTTL = c.Cache.RedisTTL.String()
	d.Postgres.DSN = c.Postgres.DSN
	d.Log.Level, d.Log.Format = c.Log.Level, c.Log.Format

	return d
}

// Write stores c as TOML at path, creating parent directories. The Redis
// password is never written; set it through the environment.
func Write(path string, c Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	data, err := toml.Marshal(toDoc(c))
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// WriteDefault writes the effective configuration (defaults plus any
// environment overrides) to path, refusing to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config: %s already exists", path)
	}
	cfg, err := Load()
	if err != nil {
		return err
	}

	return Write(path, cfg)
}
