package wow

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/katalvlaran/portfolios/bbl"
)

// DefaultBaseURL is the public Who Owns What deployment.
const DefaultBaseURL = "https://whoownswhat.justfix.org"

// DefaultBBLPath extracts entry BBLs from an address response.
const DefaultBBLPath = "$.addrs[*].bbl"

// Sentinel errors for API calls.
var (
	// ErrNoAggregate indicates the aggregate endpoint returned no result.
	ErrNoAggregate = errors.New("wow: no aggregate result")

	// ErrUnexpectedShape indicates the response JSON did not match the path.
	ErrUnexpectedShape = errors.New("wow: unexpected response shape")
)

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	URL    string
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wow: GET %s: %s", e.URL, e.Status)
}

// Addresses is the outcome of an address lookup.
type Addresses struct {
	// BBLs of the associated entries, in response order, duplicates kept.
	BBLs []bbl.BBL

	// Skipped holds raw entry values that are not valid BBLs.
	Skipped []string
}

// Aggregate is the subset of the aggregate response used in reports.
type Aggregate struct {
	Bldgs           int      `json:"bldgs"`
	Units           int      `json:"units"`
	Age             float64  `json:"age"`
	TopOwners       []string `json:"topowners"`
	TopCorp         string   `json:"topcorp"`
	TopBusinessAddr string   `json:"topbusinessaddr"`
	TotalViolations int      `json:"totalviolations"`
	Evictions       int      `json:"totalevictions"`
}

// aggregateResponse is the envelope of the aggregate endpoint.
type aggregateResponse struct {
	Result []Aggregate `json:"result"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.BaseURL = u }
}

// WithHTTPClient sets the underlying http.Client (typically a caching one).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTP = h }
}

// WithBBLPath overrides DefaultBBLPath.
func WithBBLPath(p string) Option {
	return func(c *Client) { c.BBLPath = p }
}
