package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/portfolios/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, logger.ParseLevel(in), "input %q", in)
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup("warn", "json", &buf)

	l.Info("dropped")
	l.Warn("fetch_failed", "bbl", "1050990039")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fetch_failed", rec["msg"])
	assert.Equal(t, "1050990039", rec["bbl"])
	assert.Same(t, l, logger.L())
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	l := logger.Setup("debug", "text", &buf)
	l.Debug("partition_done", "portfolios", 3)
	assert.Contains(t, buf.String(), "msg=partition_done")
	assert.Contains(t, buf.String(), "portfolios=3")
}
