package reader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqcat/internal/stream"
)

// DefaultBatchSize is the number of rows per record batch used when the
// caller does not choose one.
const DefaultBatchSize = 8192

// File is a parquet file whose footer has been parsed. Rows and metadata are
// served from the parsed footer; Batches reopens path for the arrow decoder
// and allocates its records from mem.
type File struct {
	path   string
	file   *os.File
	pqFile *parquet.File
	mem    memory.Allocator
}

// Open opens the parquet file at path and parses its footer.
//
// A missing path yields ErrPathNotFound, an unreadable one ErrOpen and a
// file whose footer cannot be parsed ErrDecode.
//
// Example:
//
//	f, err := reader.Open("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
func Open(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	if stat.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("%w %s: is a directory", ErrOpen, path)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size(),
		parquet.SkipBloomFilters(true),
		parquet.SkipPageIndex(true),
	)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	return &File{
		path:   path,
		file:   file,
		pqFile: pqFile,
		mem:    memory.DefaultAllocator,
	}, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// NumRows returns the number of rows recorded in the footer.
func (f *File) NumRows() int64 { return f.pqFile.NumRows() }

// Schema returns the parquet file schema.
func (f *File) Schema() *parquet.Schema { return f.pqFile.Schema() }

// RowGroups returns the structural metadata of every row group, in file
// order. Compressed sizes are summed from the column chunks because writers
// are not required to fill in the row-group total.
func (f *File) RowGroups() ([]stream.RowGroup, error) {
	md := f.pqFile.Metadata()
	if md == nil {
		return nil, fmt.Errorf("%w: %s: missing file metadata", ErrDecode, f.path)
	}

	groups := make([]stream.RowGroup, 0, len(md.RowGroups))
	for _, rg := range md.RowGroups {
		var compressed int64
		for _, cc := range rg.Columns {
			compressed += cc.MetaData.TotalCompressedSize
		}
		groups = append(groups, stream.RowGroup{
			NumRows:           rg.NumRows,
			UncompressedBytes: rg.TotalByteSize,
			CompressedBytes:   compressed,
		})
	}
	return groups, nil
}

// Rows returns an iterator over the decoded rows of the file.
func (f *File) Rows() *RowIterator {
	return newRowIterator(f.pqFile)
}

// Batches returns a reader of arrow record batches holding at most
// batchSize rows each. A non-positive batchSize selects DefaultBatchSize.
func (f *File) Batches(ctx context.Context, batchSize int) (*BatchReader, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return newBatchReader(ctx, f.path, batchSize, f.mem)
}

// Close closes the underlying file. It is safe to call Close multiple times.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	return err
}
