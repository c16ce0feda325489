package parcels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/portfolios/bbl"
)

// Read decodes every parcel of r in input order. Duplicate BBLs are kept:
// each input row yields one Parcel.
func Read(r io.Reader, opts ...Option) ([]Parcel, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	cr := csv.NewReader(r)
	cr.Comma = o.Comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("parcels: reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	decode, err := newDecoder(header, o)
	if err != nil {
		return nil, err
	}

	var out []Parcel
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parcels: %w", err)
		}
		line, _ := cr.FieldPos(0)

		b, rerr := decode(rec)
		if rerr != nil {
			rerr.Line = line
			if o.Strict {
				return nil, rerr
			}
			if o.OnSkip != nil {
				o.OnSkip(rerr)
			}
			continue
		}

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				fields[name] = rec[i]
			}
		}
		out = append(out, Parcel{Line: line, BBL: b, Fields: fields})
	}

	return out, nil
}

// decoder turns a record into a BBL.
type decoder func(rec []string) (bbl.BBL, *RecordError)

// newDecoder resolves the configured columns against header.
func newDecoder(header []string, o Options) (decoder, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		return i, nil
	}
	field := func(rec []string, i int) string {
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	if o.BBLColumn != "" {
		col, err := lookup(o.BBLColumn)
		if err != nil {
			return nil, err
		}
		return func(rec []string) (bbl.BBL, *RecordError) {
			v := field(rec, col)
			b, err := bbl.Parse(v)
			if err != nil {
				return bbl.BBL{}, &RecordError{Column: o.BBLColumn, Value: v, Err: err}
			}
			return b, nil
		}, nil
	}

	boroCol, err := lookup(o.BoroughColumn)
	if err != nil {
		return nil, err
	}
	blockCol, err := lookup(o.BlockColumn)
	if err != nil {
		return nil, err
	}
	lotCol, err := lookup(o.LotColumn)
	if err != nil {
		return nil, err
	}

	return func(rec []string) (bbl.BBL, *RecordError) {
		boro, rerr := parsePart(o.BoroughColumn, field(rec, boroCol), bbl.MaxBorough)
		if rerr != nil {
			return bbl.BBL{}, rerr
		}
		block, rerr := parsePart(o.BlockColumn, field(rec, blockCol), bbl.MaxBlock)
		if rerr != nil {
			return bbl.BBL{}, rerr
		}
		lot, rerr := parsePart(o.LotColumn, field(rec, lotCol), bbl.MaxLot)
		if rerr != nil {
			return bbl.BBL{}, rerr
		}
		return bbl.New(bbl.Borough(boro), uint32(block), uint16(lot)), nil
	}, nil
}

// parsePart decodes one unpadded field and checks it fits its width.
func parsePart(column, v string, max uint64) (uint64, *RecordError) {
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n > max {
		return 0, &RecordError{Column: column, Value: v, Err: bbl.ErrInvalidInt}
	}

	return n, nil
}
