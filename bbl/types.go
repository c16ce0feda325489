package bbl

import (
	"errors"
	"fmt"
)

// Width is the length of the canonical text form.
const Width = 10

// Field widths of the canonical text form, in order.
const (
	boroughWidth = 1
	blockWidth   = 5
	lotWidth     = 4
)

// Upper bounds (inclusive) of each field that still fits its width.
const (
	MaxBorough = 9
	MaxBlock   = 99999
	MaxLot     = 9999
)

// Sentinel errors for BBL parsing.
var (
	// ErrInvalidLength indicates the input is not exactly Width characters.
	ErrInvalidLength = errors.New("bbl: invalid length")

	// ErrInvalidInt indicates a fixed-width field is not an unsigned integer.
	ErrInvalidInt = errors.New("bbl: invalid integer")
)

// ParseError describes a failed Parse. Err is one of the sentinels above.
type ParseError struct {
	Input string // text given to Parse
	Field string // "borough", "block" or "lot"; empty for length errors
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %q has %d characters, want %d", e.Err, e.Input, len(e.Input), Width)
	}
	return fmt.Sprintf("%v: %s field of %q", e.Err, e.Field, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Borough is the one-digit borough code.
type Borough uint8

// NYC borough codes.
const (
	Manhattan    Borough = 1
	Bronx        Borough = 2
	Brooklyn     Borough = 3
	Queens       Borough = 4
	StatenIsland Borough = 5
)

var boroughNames = map[Borough]string{
	Manhattan:    "Manhattan",
	Bronx:        "Bronx",
	Brooklyn:     "Brooklyn",
	Queens:       "Queens",
	StatenIsland: "Staten Island",
}

// String returns the borough name, or "Borough(N)" for unknown codes.
func (b Borough) String() string {
	if name, ok := boroughNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Borough(%d)", uint8(b))
}
