// Package report turns a pipeline result into output artifacts.
//
//   - Build produces one Row per input parcel, in input order.
//   - WriteCSV writes rows with a fixed header.
//   - Summary renders the largest portfolios as Markdown; Render styles it
//     for the terminal with glamour.
package report
