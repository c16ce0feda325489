package httpcache

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"
)

// Transport serves GET requests from Store when possible.
type Transport struct {
	Base   http.RoundTripper // nil means http.DefaultTransport
	Store  Store
	Logger *slog.Logger // nil means slog.Default()
}

// Key returns the cache key of a request.
func Key(req *http.Request) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) log() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base().RoundTrip(req)
	}

	ctx := req.Context()
	key := Key(req)

	content, err := t.Store.Get(ctx, key)
	if err == nil {
		resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
		if err == nil {
			t.log().Debug("cache_hit", "url", req.URL.String())
			return resp, nil
		}
		t.log().Warn("cache_entry_corrupt", "url", req.URL.String(), "err", err)
	} else if !errors.Is(err, ErrCacheMiss) {
		t.log().Warn("cache_read_error", "url", req.URL.String(), "err", err)
	}

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	t.log().Info("http_get", "url", req.URL.String(), "status", resp.StatusCode)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	// DumpResponse buffers the body and leaves resp readable.
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		t.log().Warn("cache_dump_error", "url", req.URL.String(), "err", err)
		return resp, nil
	}
	if err := t.Store.Put(ctx, key, dump); err != nil {
		t.log().Warn("cache_write_error", "url", req.URL.String(), "err", err)
	}

	return resp, nil
}

// NewClient returns an http.Client caching through store.
func NewClient(store Store, timeout time.Duration, logger *slog.Logger) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: &Transport{Base: http.DefaultTransport, Store: store, Logger: logger},
	}
}
