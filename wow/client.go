package wow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/katalvlaran/portfolios/bbl"
)

// Client calls the Who Owns What API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	BBLPath string
}

// New returns a Client with DefaultBaseURL, DefaultBBLPath and
// http.DefaultClient unless overridden.
func New(opts ...Option) *Client {
	c := &Client{BaseURL: DefaultBaseURL, BBLPath: DefaultBBLPath}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTP == nil {
		c.HTTP = http.DefaultClient
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	return c
}

// AddressURL returns the address lookup URL for b.
func (c *Client) AddressURL(b bbl.BBL) string {
	s := b.String()
	q := url.Values{}
	q.Set("borough", s[0:1])
	q.Set("block", s[1:6])
	q.Set("lot", s[6:10])

	return c.BaseURL + "/api/address?" + q.Encode()
}

// AggregateURL returns the aggregate URL for b.
func (c *Client) AggregateURL(b bbl.BBL) string {
	return c.BaseURL + "/api/address/aggregate?" + url.Values{"bbl": {b.String()}}.Encode()
}

// Lookup fetches the parcels associated with b. Entries whose BBL does not
// parse are reported in Skipped rather than failing the call.
func (c *Client) Lookup(ctx context.Context, b bbl.BBL) (*Addresses, error) {
	addr := c.AddressURL(b)

	var doc any
	if err := c.getJSON(ctx, addr, &doc); err != nil {
		return nil, err
	}

	val, err := jsonpath.Get(c.BBLPath, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s on %s: %v", ErrUnexpectedShape, c.BBLPath, addr, err)
	}
	// jsonpath returns a list for wildcard paths and a bare value otherwise.
	var values []any
	switch x := val.(type) {
	case nil:
	case []any:
		values = x
	default:
		values = []any{x}
	}

	out := &Addresses{BBLs: make([]bbl.BBL, 0, len(values))}
	for _, v := range values {
		text := entryText(v)
		parsed, err := bbl.Parse(text)
		if err != nil {
			out.Skipped = append(out.Skipped, text)
			continue
		}
		out.BBLs = append(out.BBLs, parsed)
	}

	return out, nil
}

// AssociatedBBLs is Lookup without the skipped entries.
func (c *Client) AssociatedBBLs(ctx context.Context, b bbl.BBL) ([]bbl.BBL, error) {
	a, err := c.Lookup(ctx, b)
	if err != nil {
		return nil, err
	}

	return a.BBLs, nil
}

// Aggregate fetches portfolio statistics for b.
func (c *Client) Aggregate(ctx context.Context, b bbl.BBL) (*Aggregate, error) {
	var resp aggregateResponse
	if err := c.getJSON(ctx, c.AggregateURL(b), &resp); err != nil {
		return nil, err
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoAggregate, b)
	}

	return &resp.Result[0], nil
}

// entryText renders a JSON value as BBL text; numbers lose no digits.
func entryText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', 0, 64)
	case json.Number:
		return x.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// getJSON performs a GET and decodes the JSON body into data.
func (c *Client) getJSON(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("wow: GET %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: addr, Status: resp.Status, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body from %s", ErrUnexpectedShape, addr)
		}
		return fmt.Errorf("wow: decoding %s: %w", addr, err)
	}

	return nil
}
