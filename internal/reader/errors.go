package reader

import "errors"

var (
	// ErrPathNotFound is returned when a path does not exist.
	ErrPathNotFound = errors.New("path not found")
	// ErrOpen is returned when an existing path cannot be opened.
	ErrOpen = errors.New("could not open file")
	// ErrDecode is returned for malformed metadata or corrupted data pages.
	ErrDecode = errors.New("could not decode parquet data")
)
