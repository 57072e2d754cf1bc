package render

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/pqcat/internal/reader"
)

type event struct {
	ID   int64    `parquet:"id"`
	Name string   `parquet:"name"`
	Tags []string `parquet:"tags,list"`
}

type flatEvent struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
}

func events(n int) []event {
	rows := make([]event, n)
	for i := range rows {
		rows[i] = event{ID: int64(i), Name: "ev", Tags: []string{"a", "b"}}
	}
	return rows
}

func flatEvents(n int) []flatEvent {
	rows := make([]flatEvent, n)
	for i := range rows {
		rows[i] = flatEvent{ID: int64(i), Name: "ev"}
	}
	return rows
}

// writeFile writes rows into a single row group and opens the result.
func writeFile[T any](t *testing.T, rows []T) *reader.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.parquet")

	out, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[T](out)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())

	f, err := reader.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

// jsonIDs parses JSON Lines output and returns the id of every line.
func jsonIDs(t *testing.T, out string) []int64 {
	t.Helper()
	var ids []int64
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var obj struct {
			ID int64 `json:"id"`
		}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &obj), sc.Text())
		ids = append(ids, obj.ID)
	}
	require.NoError(t, sc.Err())
	return ids
}
