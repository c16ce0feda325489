package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execRoot runs the root command with args from a clean flag and viper state.
func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// fakeWoW serves the address and aggregate endpoints and counts requests.
func fakeWoW(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/address", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		q := r.URL.Query()
		addrs := []map[string]string{}
		if q.Get("borough")+q.Get("block")+q.Get("lot") == "1000010001" {
			addrs = append(addrs,
				map[string]string{"bbl": "1000010001"},
				map[string]string{"bbl": "1000010002"},
				map[string]string{"bbl": "3000090009"},
			)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"addrs": addrs})
	})
	mux.HandleFunc("/api/address/aggregate", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		result := []map[string]any{}
		if r.URL.Query().Get("bbl") == "1000010001" {
			result = append(result, map[string]any{"bldgs": 2, "units": 10, "topowners": []string{"JANE DOE"}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, &hits
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "parcels.csv")
	data := "Borocode,Block,Lot\n1,1,1\n1,1,2\n2,5,7\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	return path
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	srv, hits := fakeWoW(t)
	in := writeInput(t, dir)
	outPath := filepath.Join(dir, "out.csv")
	args := []string{"run",
		"--input", in,
		"--output", outPath,
		"--api-url", srv.URL,
		"--cache-dir", filepath.Join(dir, "cache"),
		"--concurrency", "2",
	}

	_, err := execRoot(t, args...)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"bbl", "portfolio_id", "portfolio_size", "bldgs", "units", "top_owners"},
		{"1000010001", "0", "3", "2", "10", "JANE DOE"},
		{"1000010002", "0", "3", "", "", ""},
		{"2000050007", "1", "1", "", "", ""},
	}, recs)

	// 3 lookups + 3 aggregates; a second run is served from the cache.
	assert.EqualValues(t, 6, atomic.LoadInt32(hits))
	_, err = execRoot(t, args...)
	require.NoError(t, err)
	assert.EqualValues(t, 6, atomic.LoadInt32(hits))
}

func TestRunCommand_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execRoot(t, "run", "--input", filepath.Join(dir, "nope.csv"), "--cache-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening input")
}

func TestSummaryCommand_Raw(t *testing.T) {
	dir := t.TempDir()
	srv, _ := fakeWoW(t)
	out, err := execRoot(t, "summary", "--raw",
		"--input", writeInput(t, dir),
		"--api-url", srv.URL,
		"--cache-dir", filepath.Join(dir, "cache"),
		"--aggregates=false",
		"--top", "1",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "- portfolios: 2")
	assert.Contains(t, out, "| 0 | 3 | 1000010001, 1000010002, 3000090009 |")
	assert.NotContains(t, out, "| 1 | 1 |")
}

func TestBBLCommand(t *testing.T) {
	out, err := execRoot(t, "bbl", "1050990039", "12")
	require.ErrorIs(t, err, errBadBBL)
	assert.Contains(t, out, "1050990039\tborough=1 (Manhattan) block=5099 lot=39")
	assert.Contains(t, out, `"12"`)

	out, err = execRoot(t, "bbl", "5000010001")
	require.NoError(t, err)
	assert.Contains(t, out, "Staten Island")
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "portfolios.toml")
	out, err := execRoot(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url")

	_, err = execRoot(t, "config", "init", path)
	assert.Error(t, err, "existing file is not overwritten")
}

func TestConfigFlagLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n[api]\nconcurrency = 0\n"), 0o644))

	_, err := execRoot(t, "--config", path, "bbl", "1000010001")
	require.Error(t, err, "invalid values in the file are reported")
}
