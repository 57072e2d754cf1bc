package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/vegasq/pqcat/internal/stream"
)

// CSVOptions configures a CSVEncoder.
type CSVOptions struct {
	// Header writes the column names before the first row.
	Header bool
	// EscapeFormulas prefixes string cells that a spreadsheet would treat as
	// a formula with a single quote.
	EscapeFormulas bool
}

// CSVEncoder outputs record batches as CSV. Null cells are written empty.
//
// The underlying arrow writer is bound to the schema of the first batch, so
// every later batch must share it. Batches must not carry nested columns;
// run them through stream.ProjectBatches first.
type CSVEncoder struct {
	out  io.Writer
	opts CSVOptions
	mem  memory.Allocator
	w    *csv.Writer
}

// NewCSVEncoder creates a CSV batch encoder writing to w.
func NewCSVEncoder(w io.Writer, opts CSVOptions) *CSVEncoder {
	return &CSVEncoder{out: w, opts: opts, mem: memory.DefaultAllocator}
}

// Encode writes every row of rec, preceded by the header on the first call
// when requested.
func (c *CSVEncoder) Encode(rec arrow.Record) error {
	if c.w == nil {
		w, err := c.newWriter(rec.Schema())
		if err != nil {
			return err
		}
		c.w = w
	}

	if c.opts.EscapeFormulas {
		escaped := escapeFormulas(rec, c.mem)
		defer escaped.Release()
		rec = escaped
	}

	if err := c.w.Write(rec); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func (c *CSVEncoder) newWriter(schema *arrow.Schema) (w *csv.Writer, err error) {
	if nested := stream.NestedFields(schema); len(nested) > 0 {
		return nil, fmt.Errorf("%w: csv cannot hold nested fields %s", ErrEncode, strings.Join(nested, ", "))
	}

	// csv.NewWriter panics on column types it has no text form for.
	defer func() {
		if r := recover(); r != nil {
			w, err = nil, fmt.Errorf("%w: %v", ErrEncode, r)
		}
	}()
	return csv.NewWriter(c.out, schema,
		csv.WithHeader(c.opts.Header),
		csv.WithNullWriter(""),
	), nil
}

// Close flushes buffered output.
func (c *CSVEncoder) Close() error {
	if c.w == nil {
		return nil
	}
	if err := c.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// escapeFormulas returns a copy of rec whose string columns have formula
// prefixes neutralised. The result must be released by the caller.
func escapeFormulas(rec arrow.Record, mem memory.Allocator) arrow.Record {
	cols := make([]arrow.Array, rec.NumCols())
	var built []arrow.Array
	defer func() {
		for _, arr := range built {
			arr.Release()
		}
	}()

	for i, col := range rec.Columns() {
		strs, ok := col.(*array.String)
		if !ok || !needsEscaping(strs) {
			cols[i] = col
			continue
		}

		b := array.NewStringBuilder(mem)
		b.Reserve(strs.Len())
		for j := 0; j < strs.Len(); j++ {
			if strs.IsNull(j) {
				b.AppendNull()
				continue
			}
			b.Append(escapeFormula(strs.Value(j)))
		}
		arr := b.NewArray()
		b.Release()
		built = append(built, arr)
		cols[i] = arr
	}

	return array.NewRecord(rec.Schema(), cols, rec.NumRows())
}

func needsEscaping(strs *array.String) bool {
	for j := 0; j < strs.Len(); j++ {
		if strs.IsValid(j) && isFormula(strs.Value(j)) {
			return true
		}
	}
	return false
}

func isFormula(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return true
	}
	return false
}

// escapeFormula sanitizes against CSV injection by prefixing dangerous
// characters that could trigger formula execution in spreadsheet
// applications.
func escapeFormula(s string) string {
	if !isFormula(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''")
}
