// Package bbl implements the borough/block/lot (BBL) parcel identifier used
// by New York City property records.
//
// What:
//
//   - BBL is a small comparable value type: usable as a map key, copied freely.
//   - Canonical text form is exactly ten digits: borough (1), block
//     zero-padded to 5, lot zero-padded to 4. BBL(1,5099,39) is "1050990039".
//   - Total order is lexicographic by (borough, block, lot).
//
// Parsing:
//
//   - Parse accepts only the canonical ten-character form.
//   - ErrInvalidLength: input is not exactly ten characters.
//   - ErrInvalidInt:    a fixed-width field is not an unsigned decimal integer.
//
// Both sentinels are returned wrapped in *ParseError, so callers match them
// with errors.Is and recover the failing field with errors.As.
//
// Complexity:
//
//   - Parse, String, Compare: O(1), no heap allocation for Compare.
package bbl
