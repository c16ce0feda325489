package parcels

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/portfolios/bbl"
)

// Sentinel errors for parcel ingestion.
var (
	// ErrEmptyInput indicates the CSV has no header row.
	ErrEmptyInput = errors.New("parcels: empty input")

	// ErrMissingColumn indicates a configured column is not in the header.
	ErrMissingColumn = errors.New("parcels: missing column")
)

// Parcel is one input row.
type Parcel struct {
	// Line is the 1-based line of the record in the input, header included.
	Line int

	// BBL identifies the parcel.
	BBL bbl.BBL

	// Fields holds every column of the row keyed by header name.
	Fields map[string]string
}

// RecordError describes a record whose identifier could not be decoded.
type RecordError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("parcels: line %d, column %q, value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Option configures Read.
type Option func(*Options)

// Options holds Read settings.
type Options struct {
	BoroughColumn string
	BlockColumn   string
	LotColumn     string

	// BBLColumn, if non-empty, is used instead of the three columns above.
	BBLColumn string

	// Strict aborts on the first malformed record.
	Strict bool

	// OnSkip, if non-nil, is called for each skipped record.
	OnSkip func(*RecordError)

	// Comma is the field delimiter; defaults to ','.
	Comma rune
}

// DefaultOptions returns the CONH column layout, lenient mode.
func DefaultOptions() Options {
	return Options{
		BoroughColumn: "Borocode",
		BlockColumn:   "Block",
		LotColumn:     "Lot",
		Comma:         ',',
	}
}

// WithColumns sets the borough, block and lot column names.
func WithColumns(borough, block, lot string) Option {
	return func(o *Options) {
		o.BoroughColumn, o.BlockColumn, o.LotColumn = borough, block, lot
	}
}

// WithBBLColumn reads the canonical BBL from a single column.
func WithBBLColumn(name string) Option {
	return func(o *Options) { o.BBLColumn = name }
}

// WithStrict makes Read fail on the first malformed record.
func WithStrict() Option {
	return func(o *Options) { o.Strict = true }
}

// WithOnSkip installs a hook called for every skipped record.
func WithOnSkip(fn func(*RecordError)) Option {
	return func(o *Options) { o.OnSkip = fn }
}

// WithComma sets the field delimiter.
func WithComma(r rune) Option {
	return func(o *Options) { o.Comma = r }
}
