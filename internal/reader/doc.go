// Package reader opens Apache Parquet files for pqcat.
//
// A File serves three kinds of reads, none of which loads the whole file:
//
//   - RowGroups returns the row-group metadata parsed from the footer. No
//     column data is decoded.
//   - Rows returns a RowIterator that decodes one row at a time, in file
//     order, with field order taken from the schema.
//   - Batches returns a BatchReader that decodes arrow record batches of a
//     fixed maximum size.
//
// # Basic Usage
//
//	f, err := reader.Open("data.parquet")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	rows := f.Rows()
//	for {
//	    row, err := rows.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(row)
//	}
//
// # Multi-file Operations
//
// ExpandPaths turns command-line arguments (files, directories, glob
// patterns) into a list of files, and CheckPaths verifies that every one of
// them exists before any of them is processed.
//
// # Errors
//
// Failures are reported by wrapping ErrPathNotFound, ErrOpen or ErrDecode, so
// callers can branch with errors.Is.
//
// Row decoding and metadata use github.com/parquet-go/parquet-go; batch
// decoding uses the pqarrow reader of github.com/apache/arrow-go.
package reader
