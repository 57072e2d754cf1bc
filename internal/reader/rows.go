package reader

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// Column is one named value of a decoded row.
//
// Group and map values are Row, repeated values are []any and absent
// optional values are nil.
type Column struct {
	Name  string
	Value any
}

// Row is a decoded row with its columns in schema order. Map entries keep
// the order they were written in.
type Row []Column

// rowBufferSize is the number of rows pulled from the decoder at once.
const rowBufferSize = 64

// RowIterator decodes rows one at a time. It cannot be rewound; open the
// file again to start over.
type RowIterator struct {
	r      *parquet.Reader
	fields []parquet.Field
	leaves int

	buf     []parquet.Row
	n, next int
	columns [][]parquet.Value
	pos     int64
	done    bool
}

func newRowIterator(pf *parquet.File) *RowIterator {
	fields := pf.Schema().Fields()
	var leaves int
	for _, f := range fields {
		leaves += leafCount(f)
	}
	return &RowIterator{
		r:       parquet.NewReader(pf),
		fields:  fields,
		leaves:  leaves,
		buf:     make([]parquet.Row, rowBufferSize),
		columns: make([][]parquet.Value, leaves),
	}
}

// Next decodes the next row. It returns io.EOF after the last row.
func (it *RowIterator) Next() (Row, error) {
	if it.next == it.n {
		if err := it.fill(); err != nil {
			return nil, err
		}
	}

	raw := it.buf[it.next]
	it.next++

	for i := range it.columns {
		it.columns[i] = it.columns[i][:0]
	}
	for _, v := range raw {
		c := v.Column()
		if c < 0 || c >= it.leaves {
			return nil, fmt.Errorf("%w: row %d: value for unknown column %d", ErrDecode, it.pos, c)
		}
		it.columns[c] = append(it.columns[c], v)
	}
	for c, values := range it.columns {
		if len(values) == 0 {
			return nil, fmt.Errorf("%w: row %d: no values for column %d", ErrDecode, it.pos, c)
		}
	}

	row := assembleGroup(it.fields, it.columns, 0, 0)
	it.pos++
	return row, nil
}

// fill reads the next run of rows. Values of the previous run must no
// longer be referenced since the decoder reuses their buffers.
func (it *RowIterator) fill() error {
	if it.done {
		return io.EOF
	}
	n, err := it.r.ReadRows(it.buf)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: row %d: %w", ErrDecode, it.pos, err)
		}
		it.done = true
	}
	if n == 0 {
		it.done = true
		return io.EOF
	}
	it.n, it.next = n, 0
	return nil
}

// Close releases the decoder buffers.
func (it *RowIterator) Close() error {
	return it.r.Close()
}

func leafCount(n parquet.Node) int {
	if n.Leaf() {
		return 1
	}
	var count int
	for _, f := range n.Fields() {
		count += leafCount(f)
	}
	return count
}

// assembleGroup builds one instance of a group whose children are fields.
// columns holds the values of every leaf below the group for this instance
// only; dl and rl are the definition and repetition levels reached by the
// enclosing nodes.
func assembleGroup(fields []parquet.Field, columns [][]parquet.Value, dl, rl int) Row {
	row := make(Row, 0, len(fields))
	for _, f := range fields {
		n := leafCount(f)
		row = append(row, Column{Name: f.Name(), Value: assemble(f, columns[:n], dl, rl)})
		columns = columns[n:]
	}
	return row
}

func assemble(node parquet.Node, columns [][]parquet.Value, dl, rl int) any {
	switch {
	case node.Repeated():
		return assembleRepeated(node, columns, dl, rl)
	case node.Optional():
		if columns[0][0].DefinitionLevel() <= dl {
			return nil
		}
		dl++
	}
	return assembleValue(node, columns, dl, rl)
}

// assembleRepeated splits the values of a repeated node into its elements.
// A new element starts wherever a value repeats at the node's own level.
func assembleRepeated(node parquet.Node, columns [][]parquet.Value, dl, rl int) []any {
	out := []any{}
	if columns[0][0].DefinitionLevel() <= dl {
		return out
	}
	dl++
	rl++

	columns = slices.Clone(columns)
	elem := make([][]parquet.Value, len(columns))
	for len(columns[0]) > 0 {
		for c, values := range columns {
			end := 1
			for end < len(values) && values[end].RepetitionLevel() > rl {
				end++
			}
			elem[c] = values[:end]
			columns[c] = values[end:]
		}
		out = append(out, assembleValue(node, elem, dl, rl))
	}
	return out
}

// assembleValue builds a single present value of node, ignoring its own
// repetition.
func assembleValue(node parquet.Node, columns [][]parquet.Value, dl, rl int) any {
	if node.Leaf() {
		return leafValue(node, columns[0][0])
	}

	switch {
	case isList(node):
		items, _ := assemble(node.Fields()[0], columns, dl, rl).([]any)
		if !node.Fields()[0].Leaf() {
			for i, item := range items {
				if wrapped, ok := item.(Row); ok && len(wrapped) == 1 {
					items[i] = wrapped[0].Value
				}
			}
		}
		return items
	case isMap(node):
		entries, _ := assemble(node.Fields()[0], columns, dl, rl).([]any)
		m := make(Row, 0, len(entries))
		for _, entry := range entries {
			kv, ok := entry.(Row)
			if !ok || len(kv) != 2 {
				continue
			}
			m = append(m, Column{Name: mapKey(kv[0].Value), Value: kv[1].Value})
		}
		return m
	default:
		return assembleGroup(node.Fields(), columns, dl, rl)
	}
}

// isList reports whether n is a LIST-annotated group with a single repeated
// child.
func isList(n parquet.Node) bool {
	lt := n.Type().LogicalType()
	if lt == nil || lt.List == nil {
		return false
	}
	children := n.Fields()
	return len(children) == 1 && children[0].Repeated()
}

// isMap reports whether n is a MAP-annotated group whose repeated child holds
// key and value.
func isMap(n parquet.Node) bool {
	lt := n.Type().LogicalType()
	if lt == nil || lt.Map == nil {
		return false
	}
	children := n.Fields()
	return len(children) == 1 && children[0].Repeated() && len(children[0].Fields()) == 2
}

func mapKey(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case []byte:
		return string(k)
	default:
		return fmt.Sprint(k)
	}
}

// leafValue converts a leaf value to the Go value the formatters print,
// honoring the logical type of the column.
func leafValue(node parquet.Node, v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	lt := node.Type().LogicalType()

	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		switch {
		case lt != nil && lt.Date != nil:
			return time.Unix(int64(v.Int32())*86400, 0).UTC()
		case lt != nil && lt.Integer != nil && !lt.Integer.IsSigned:
			return uint32(v.Int32())
		}
		return v.Int32()
	case parquet.Int64:
		switch {
		case lt != nil && lt.Timestamp != nil:
			return timestamp(v.Int64(), lt.Timestamp.Unit)
		case lt != nil && lt.Integer != nil && !lt.Integer.IsSigned:
			return uint64(v.Int64())
		}
		return v.Int64()
	case parquet.Int96:
		return v.Int96().Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		b := v.ByteArray()
		switch {
		case lt != nil && (lt.UTF8 != nil || lt.Enum != nil || lt.Json != nil):
			return string(b)
		case lt != nil && lt.UUID != nil:
			if id, err := uuid.FromBytes(b); err == nil {
				return id.String()
			}
		}
		return slices.Clone(b)
	default:
		return nil
	}
}

func timestamp(v int64, unit format.TimeUnit) time.Time {
	switch {
	case unit.Millis != nil:
		return time.UnixMilli(v).UTC()
	case unit.Micros != nil:
		return time.UnixMicro(v).UTC()
	default:
		return time.Unix(0, v).UTC()
	}
}
