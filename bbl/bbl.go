package bbl

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// BBL identifies one parcel. The zero value is BBL(0,0,0), "0000000000".
//
// Fields are unexported so a BBL cannot be changed once built; equality is
// structural and BBL is comparable.
type BBL struct {
	borough Borough
	block   uint32
	lot     uint16
}

// New builds a BBL from its parts. No range checks are made; see Valid.
func New(borough Borough, block uint32, lot uint16) BBL {
	return BBL{borough: borough, block: block, lot: lot}
}

// Parse decodes the canonical ten-character form.
func Parse(text string) (BBL, error) {
	if len(text) != Width {
		return BBL{}, &ParseError{Input: text, Err: ErrInvalidLength}
	}

	boro, err := parseField(text, "borough", 0, boroughWidth, 8)
	if err != nil {
		return BBL{}, err
	}
	block, err := parseField(text, "block", boroughWidth, blockWidth, 32)
	if err != nil {
		return BBL{}, err
	}
	lot, err := parseField(text, "lot", boroughWidth+blockWidth, lotWidth, 16)
	if err != nil {
		return BBL{}, err
	}

	return New(Borough(boro), uint32(block), uint16(lot)), nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) BBL {
	b, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return b
}

// parseField decodes text[off:off+width] as an unsigned decimal.
func parseField(text, field string, off, width, bits int) (uint64, error) {
	n, err := strconv.ParseUint(text[off:off+width], 10, bits)
	if err != nil {
		return 0, &ParseError{Input: text, Field: field, Err: ErrInvalidInt}
	}
	return n, nil
}

// Borough returns the borough code.
func (b BBL) Borough() Borough { return b.borough }

// Block returns the block number.
func (b BBL) Block() uint32 { return b.block }

// Lot returns the lot number.
func (b BBL) Lot() uint16 { return b.lot }

// Valid reports whether every field fits its canonical width.
func (b BBL) Valid() bool {
	return b.borough <= MaxBorough && b.block <= MaxBlock && b.lot <= MaxLot
}

// String returns the canonical form, e.g. "1050990039".
func (b BBL) String() string {
	if !b.Valid() {
		// Out-of-range values built with New keep their digits.
		return fmt.Sprintf("%d%05d%04d", b.borough, b.block, b.lot)
	}
	var buf [Width]byte
	putDigits(buf[0:boroughWidth], uint64(b.borough))
	putDigits(buf[boroughWidth:boroughWidth+blockWidth], uint64(b.block))
	putDigits(buf[boroughWidth+blockWidth:], uint64(b.lot))
	return string(buf[:])
}

// Format is an alias of String; Format(Parse(s)) == s for valid s.
func (b BBL) Format() string { return b.String() }

// putDigits writes n right-aligned and zero-padded into dst.
func putDigits(dst []byte, n uint64) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = byte('0' + n%10)
		n /= 10
	}
}

// MarshalText implements encoding.TextMarshaler.
func (b BBL) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BBL) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Compare returns -1, 0 or +1 ordering a and b by (borough, block, lot).
func Compare(a, b BBL) int {
	if c := cmp.Compare(a.borough, b.borough); c != 0 {
		return c
	}
	if c := cmp.Compare(a.block, b.block); c != 0 {
		return c
	}
	return cmp.Compare(a.lot, b.lot)
}

// Less reports whether b sorts before other.
func (b BBL) Less(other BBL) bool { return Compare(b, other) < 0 }

// Equal reports whether b and other are the same parcel.
func (b BBL) Equal(other BBL) bool { return b == other }

// Sort sorts s in place by the BBL order.
func Sort(s []BBL) { slices.SortFunc(s, Compare) }
