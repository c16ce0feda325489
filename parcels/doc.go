// Package parcels reads the input parcel list, a CSV file with a header row.
//
// Parcels are identified either by three columns (default "Borocode",
// "Block", "Lot", as in the CONH pilot building list) or by a single column
// holding the canonical ten-digit BBL.
//
// Malformed records are skipped by default and reported to an OnSkip hook;
// WithStrict turns the first malformed record into an error. Either way, a
// bad record never reaches the portfolio graph.
//
// Errors:
//
//   - ErrEmptyInput:    no header row.
//   - ErrMissingColumn: a configured column is absent from the header.
//   - *RecordError:     wraps bbl.ErrInvalidInt / bbl.ErrInvalidLength for a record.
package parcels
