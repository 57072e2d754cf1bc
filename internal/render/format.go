// Package render drives decoded parquet data into the output encoders.
//
// Render picks the decode path by output format: the native text format
// pulls rows one at a time while JSON and CSV pull arrow record batches.
// Sample draws a uniform random subset of rows and emits them in file
// order.
package render

import (
	"fmt"

	"github.com/vegasq/pqcat/internal/stream"
)

// Format is an output format of the cat and head commands.
type Format int

const (
	// FormatDefault is the native {name: value} row rendering.
	FormatDefault Format = iota
	// FormatJSON writes one JSON object per row.
	FormatJSON
	// FormatCSV writes comma-separated values preceded by a header row.
	FormatCSV
	// FormatCSVNoHeader writes comma-separated values without a header row.
	FormatCSVNoHeader
)

func (f Format) String() string {
	switch f {
	case FormatDefault:
		return "default"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	case FormatCSVNoHeader:
		return "csv-no-header"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// IsCSV reports whether f is one of the CSV formats.
func (f Format) IsCSV() bool {
	return f == FormatCSV || f == FormatCSVNoHeader
}

// Batched reports whether f is rendered from record batches rather than
// from rows.
func (f Format) Batched() bool {
	return f != FormatDefault
}

// SelectFormat maps the output flags of a command to a Format. The flags
// must already be validated: json and csv are mutually exclusive and
// noHeader is only meaningful with csv.
func SelectFormat(json, csv, noHeader bool) (Format, error) {
	switch {
	case json && csv:
		return FormatDefault, fmt.Errorf("--json and --csv cannot be used together")
	case noHeader && !csv:
		return FormatDefault, fmt.Errorf("--no-header requires --csv")
	case json:
		return FormatJSON, nil
	case csv && noHeader:
		return FormatCSVNoHeader, nil
	case csv:
		return FormatCSV, nil
	default:
		return FormatDefault, nil
	}
}

// Options controls a single Render call.
type Options struct {
	Format Format
	// Policy applies to nested columns under the CSV formats and is
	// ignored otherwise.
	Policy stream.Policy
	// MaxRows caps the number of rows written. stream.NoLimit writes all
	// of them.
	MaxRows int64
	// BatchSize is the number of rows per decoded batch. Zero selects the
	// reader default.
	BatchSize int
	// EscapeFormulas neutralises spreadsheet formulas in CSV string cells.
	EscapeFormulas bool
}
