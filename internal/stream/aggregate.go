package stream

import "fmt"

// RowGroup is the structural metadata of one row group.
type RowGroup struct {
	NumRows           int64
	UncompressedBytes int64
	CompressedBytes   int64
}

// MetadataSource exposes the row groups of a file without decoding any
// column data.
type MetadataSource interface {
	RowGroups() ([]RowGroup, error)
}

// RowCount sums the row counts of every row group of src.
func RowCount(src MetadataSource) (int64, error) {
	groups, err := src.RowGroups()
	if err != nil {
		return 0, fmt.Errorf("reading row groups: %w", err)
	}

	var total int64
	for _, rg := range groups {
		total += rg.NumRows
	}
	return total, nil
}

// Size sums the uncompressed and compressed column data sizes of every row
// group of src.
//
// Footer and page index bytes are not part of any row group, so the result
// is smaller than the file on disk.
func Size(src MetadataSource) (uncompressed, compressed int64, err error) {
	groups, err := src.RowGroups()
	if err != nil {
		return 0, 0, fmt.Errorf("reading row groups: %w", err)
	}

	for _, rg := range groups {
		uncompressed += rg.UncompressedBytes
		compressed += rg.CompressedBytes
	}
	return uncompressed, compressed, nil
}
