package reader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// BatchReader decodes a parquet file as a sequence of arrow record batches.
// Row groups are decoded only when the batches that need them are requested.
type BatchReader struct {
	pf *file.Reader
	rr pqarrow.RecordReader
}

func newBatchReader(ctx context.Context, path string, batchSize int, mem memory.Allocator) (*BatchReader, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{
		BatchSize: int64(batchSize),
		Parallel:  false,
	}, mem)
	if err != nil {
		_ = pf.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		_ = pf.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return &BatchReader{pf: pf, rr: rr}, nil
}

// Schema returns the arrow schema of the batches.
func (b *BatchReader) Schema() *arrow.Schema { return b.rr.Schema() }

// Next returns the next non-empty batch, or io.EOF after the last one. The
// caller owns the returned record and must Release it.
func (b *BatchReader) Next() (arrow.Record, error) {
	for b.rr.Next() {
		rec := b.rr.Record()
		if rec.NumRows() == 0 {
			continue
		}
		rec.Retain()
		return rec, nil
	}

	if err := b.rr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil, io.EOF
}

// Close releases the record reader and closes the file handle it owns.
func (b *BatchReader) Close() error {
	b.rr.Release()
	return b.pf.Close()
}
