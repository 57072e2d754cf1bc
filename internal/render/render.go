package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/pqcat/internal/output"
	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/stream"
)

// Render writes the rows of f to w in the format selected by opts.
//
// Any error aborts the call. Output already written to w stays there.
func Render(ctx context.Context, f *reader.File, opts Options, w io.Writer) error {
	if !opts.Format.Batched() {
		rows := f.Rows()
		defer func() { _ = rows.Close() }()
		return RenderRows(rows, output.NewTextFormatter(w), opts.MaxRows)
	}

	batches, err := f.Batches(ctx, opts.BatchSize)
	if err != nil {
		return err
	}
	defer func() { _ = batches.Close() }()

	var enc output.BatchEncoder
	if opts.Format.IsCSV() {
		enc = output.NewCSVEncoder(w, output.CSVOptions{
			Header:         opts.Format == FormatCSV,
			EscapeFormulas: opts.EscapeFormulas,
		})
	} else {
		enc = output.NewJSONLinesEncoder(w)
	}
	return RenderBatches(batches, opts, enc)
}

// RenderRows formats at most maxRows rows of src.
func RenderRows(src stream.Source[reader.Row], f output.RowFormatter, maxRows int64) error {
	rows := stream.LimitRows(src, maxRows)
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := f.FormatRow(row); err != nil {
			return err
		}
	}
}

// RenderBatches encodes at most opts.MaxRows rows of src with enc and closes
// enc. Under the CSV formats every batch passes the nested field projector
// before the row budget is applied.
func RenderBatches(src stream.BatchSource, opts Options, enc output.BatchEncoder) error {
	if opts.Format.IsCSV() {
		src = stream.ProjectBatches(src, opts.Policy, nil)
	}
	batches := stream.LimitBatches(src, opts.MaxRows)

	for {
		rec, err := batches.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = enc.Close()
			return err
		}

		err = enc.Encode(rec)
		rec.Release()
		if err != nil {
			_ = enc.Close()
			return err
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
