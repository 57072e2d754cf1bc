package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type flatRow struct {
	ID    int64   `parquet:"id"`
	Name  string  `parquet:"name"`
	Score float64 `parquet:"score"`
}

type nestedRow struct {
	ID   int64    `parquet:"id"`
	Tags []string `parquet:"tags,list"`
}

// writeParquetFile writes each chunk of rows as its own row group.
func writeParquetFile[T any](t *testing.T, dir, filename string, chunks ...[]T) string {
	t.Helper()
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	for _, rows := range chunks {
		if _, err := writer.Write(rows); err != nil {
			t.Fatalf("failed to write test data: %v", err)
		}
		if err := writer.Flush(); err != nil {
			t.Fatalf("failed to flush row group: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}

func flatRows(start, n int) []flatRow {
	rows := make([]flatRow, n)
	for i := range rows {
		id := int64(start + i)
		rows[i] = flatRow{ID: id, Name: "user", Score: float64(id) / 2}
	}
	return rows
}
