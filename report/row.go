package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/portfolios/bbl"
	"github.com/katalvlaran/portfolios/pipeline"
	"github.com/katalvlaran/portfolios/wow"
)

// Header is the first CSV record written by WriteCSV.
var Header = []string{"bbl", "portfolio_id", "portfolio_size", "bldgs", "units", "top_owners"}

// ownerSep joins top owners inside one CSV field.
const ownerSep = "; "

// Row describes one input parcel and the portfolio holding it.
type Row struct {
	Line          int
	BBL           bbl.BBL
	PortfolioID   int
	PortfolioSize int

	// Aggregate is nil when aggregates were not fetched or the API had none.
	Aggregate *wow.Aggregate
}

// Build returns one row per parcel of res, in input order. Duplicate
// parcels produce duplicate rows.
func Build(res *pipeline.Result) []Row {
	rows := make([]Row, 0, len(res.Parcels))
	for _, p := range res.Parcels {
		id, _ := res.Map.IndexOf(p.BBL)
		rows = append(rows, Row{
			Line:          p.Line,
			BBL:           p.BBL,
			PortfolioID:   id,
			PortfolioSize: res.Map.SizeOf(p.BBL),
			Aggregate:     res.Aggregates[p.BBL],
		})
	}

	return rows
}

// Record returns r as CSV fields matching Header.
func (r Row) Record() []string {
	rec := []string{
		r.BBL.String(),
		strconv.Itoa(r.PortfolioID),
		strconv.Itoa(r.PortfolioSize),
		"", "", "",
	}
	if a := r.Aggregate; a != nil {
		rec[3] = strconv.Itoa(a.Bldgs)
		rec[4] = strconv.Itoa(a.Units)
		rec[5] = strings.Join(a.TopOwners, ownerSep)
	}

	return rec
}

// WriteCSV writes Header followed by every row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("report: header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("report: %s: %w", r.BBL, err)
		}
	}
	cw.Flush()

	return cw.Error()
}
