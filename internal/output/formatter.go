// Package output provides the text encoders pqcat writes with.
//
// Rows decoded one at a time are written by a RowFormatter:
//   - TextFormatter: the native {name: value, ...} rendering
//   - JSONFormatter: one JSON object per line, fields in schema order
//
// Arrow record batches are written by a BatchEncoder:
//   - JSONLinesEncoder: one JSON object per row
//   - CSVEncoder: comma-separated values, with or without a header row
//
// Example usage:
//
//	enc := output.NewCSVEncoder(os.Stdout, output.CSVOptions{Header: true})
//	if err := enc.Encode(rec); err != nil {
//	    log.Fatal(err)
//	}
//	if err := enc.Close(); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/vegasq/pqcat/internal/reader"
)

// ErrEncode is wrapped by every error an encoder returns.
var ErrEncode = errors.New("could not encode output")

// RowFormatter defines the interface for row-at-a-time formatters.
type RowFormatter interface {
	// FormatRow writes a single row
	FormatRow(row reader.Row) error
}

// BatchEncoder defines the interface for batch-at-a-time encoders.
type BatchEncoder interface {
	// Encode writes every row of rec. It does not take ownership of rec.
	Encode(rec arrow.Record) error

	// Close flushes buffered output. The encoder cannot be used afterwards.
	Close() error
}
