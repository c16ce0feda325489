package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Output", cfg.Output, "portfolios.csv"},
		{"Aggregates", cfg.Aggregates, true},
		{"Strict", cfg.Strict, false},
		{"SummaryTop", cfg.SummaryTop, 10},
		{"Columns.Borough", cfg.Columns.Borough, "Borocode"},
		{"Columns.Block", cfg.Columns.Block, "Block"},
		{"Columns.Lot", cfg.Columns.Lot, "Lot"},
		{"API.BaseURL", cfg.API.BaseURL, "https://whoownswhat.justfix.org"},
		{"API.BBLPath", cfg.API.BBLPath, "$.addrs[*].bbl"},
		{"API.Timeout", cfg.API.Timeout, 30 * time.Second},
		{"API.Concurrency", cfg.API.Concurrency, 4},
		{"Cache.Dir", cfg.Cache.Dir, "cache"},
		{"Cache.RedisAddr", cfg.Cache.RedisAddr, ""},
		{"Log.Level", cfg.Log.Level, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "output",
			envKey: "PORTFOLIOS_OUTPUT",
			envVal: "/tmp/out.csv",
			field:  func(c Config) any { return c.Output },
			want:   "/tmp/out.csv",
		},
		{
			name:   "api.concurrency",
			envKey: "PORTFOLIOS_API_CONCURRENCY",
			envVal: "16",
			field:  func(c Config) any { return c.API.Concurrency },
			want:   16,
		},
		{
			name:   "api.timeout",
			envKey: "PORTFOLIOS_API_TIMEOUT",
			envVal: "2m",
			field:  func(c Config) any { return c.API.Timeout },
			want:   2 * time.Minute,
		},
		{
			name:   "cache.redis_addr",
			envKey: "PORTFOLIOS_CACHE_REDIS_ADDR",
			envVal: "127.0.0.1:6379",
			field:  func(c Config) any { return c.Cache.RedisAddr },
			want:   "127.0.0.1:6379",
		},
		{
			name:   "aggregates",
			envKey: "PORTFOLIOS_AGGREGATES",
			envVal: "false",
			field:  func(c Config) any { return c.Aggregates },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			t.Setenv(tt.envKey, tt.envVal)
			bindEnv()

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.field(cfg))
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	resetViper()
	viper.Set("api.concurrency", 0)
	_, err := Load()
	assert.ErrorIs(t, err, ErrInvalid)

	resetViper()
	viper.Set("columns.lot", "")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalid)

	resetViper()
	viper.Set("api.bbl_path", "")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalid, "empty bbl path")

	resetViper()
	viper.Set("api.bbl_path", "$.addrs[")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInvalid, "malformed bbl path")

	resetViper()
	viper.Set("api.bbl_path", "$.geosearch.bbl")
	_, err = Load()
	assert.NoError(t, err, "any well-formed path is accepted")

	resetViper()
	viper.Set("columns.lot", "")
	viper.Set("columns.bbl", "BBL")
	_, err = Load()
	assert.NoError(t, err, "a bbl column replaces the triple")
}

func TestInit_ExplicitFileMustExist(t *testing.T) {
	resetViper()
	err := Init(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	resetViper()
	path := filepath.Join(t.TempDir(), "conf", DefaultPath)
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "must not overwrite")

	resetViper()
	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)

	resetViper()
	want, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, cfg)
}

func TestInit_ReadsFile(t *testing.T) {
	resetViper()
	path := filepath.Join(t.TempDir(), "custom.toml")
	doc := "output = \"x.csv\"\n[api]\nconcurrency = 9\ntimeout = \"5s\"\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	require.NoError(t, Init(path))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "x.csv", cfg.Output)
	assert.Equal(t, 9, cfg.API.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://whoownswhat.justfix.org", cfg.API.BaseURL)
}
