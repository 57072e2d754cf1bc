package render

import (
	"io"
	"math/rand/v2"

	"github.com/vegasq/pqcat/internal/output"
	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/stream"
)

// Sample writes min(k, rows in f) distinct rows of f, chosen uniformly at
// random with rng, in the order they appear in the file. Rows are rendered
// as JSON when asJSON is set and in the native text format otherwise.
func Sample(f *reader.File, k int64, asJSON bool, rng *rand.Rand, w io.Writer) error {
	total, err := stream.RowCount(f)
	if err != nil {
		return err
	}

	var formatter output.RowFormatter = output.NewTextFormatter(w)
	if asJSON {
		formatter = output.NewJSONFormatter(w)
	}

	rows := f.Rows()
	defer func() { _ = rows.Close() }()

	positions := stream.SelectPositions(rng, total, k)
	return stream.EmitSelected(rows, positions, formatter.FormatRow)
}
