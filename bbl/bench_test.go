package bbl_test

import (
	"testing"

	"github.com/katalvlaran/portfolios/bbl"
)

// BenchmarkParse measures decoding of the canonical form.
func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = bbl.Parse("1050990039")
	}
}

// BenchmarkString measures encoding to the canonical form.
func BenchmarkString(b *testing.B) {
	v := bbl.New(1, 5099, 39)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = v.String()
	}
}
