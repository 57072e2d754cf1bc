package stream

import (
	"io"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"
)

// countingSource hands out pre-built batches and counts how often it was asked.
type countingSource struct {
	batches []arrow.Record
	pulls   int
}

func (s *countingSource) Next() (arrow.Record, error) {
	if s.pulls >= len(s.batches) {
		s.pulls++
		return nil, io.EOF
	}
	rec := s.batches[s.pulls]
	s.pulls++
	rec.Retain()
	return rec, nil
}

// idBatch builds a single int64 column "id" holding start..start+n-1.
func idBatch(t *testing.T, start, n int64) arrow.Record {
	t.Helper()
	alloc := memory.NewGoAllocator()

	b := array.NewInt64Builder(alloc)
	defer b.Release()
	for i := start; i < start+n; i++ {
		b.Append(i)
	}
	arr := b.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "id", Type: arrow.PrimitiveTypes.Int64}}, nil)
	return array.NewRecord(schema, []arrow.Array{arr}, n)
}

// tagsBatch builds {id: int64, tags: list<string>, score: float64}.
func tagsBatch(t *testing.T) arrow.Record {
	t.Helper()
	alloc := memory.NewGoAllocator()

	ids := array.NewInt64Builder(alloc)
	defer ids.Release()
	ids.AppendValues([]int64{1, 2, 3}, nil)

	tags := array.NewListBuilder(alloc, arrow.BinaryTypes.String)
	defer tags.Release()
	values := tags.ValueBuilder().(*array.StringBuilder)
	tags.Append(true)
	values.Append("a")
	values.Append("b")
	tags.Append(true)
	tags.AppendNull()

	scores := array.NewFloat64Builder(alloc)
	defer scores.Release()
	scores.AppendValues([]float64{0.5, 1.5, 2.5}, nil)

	cols := []arrow.Array{ids.NewArray(), tags.NewArray(), scores.NewArray()}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "tags", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	return array.NewRecord(schema, cols, 3)
}

// drain collects all ids emitted by src, along with the per-batch row counts.
func drain(t *testing.T, src BatchSource) (ids []int64, sizes []int64) {
	t.Helper()
	for {
		rec, err := src.Next()
		if err == io.EOF {
			return ids, sizes
		}
		require.NoError(t, err)
		sizes = append(sizes, rec.NumRows())
		col := rec.Column(0).(*array.Int64)
		for i := 0; i < col.Len(); i++ {
			ids = append(ids, col.Value(i))
		}
		rec.Release()
	}
}

// attrsBatch builds {id: int64, attrs: map<string, int32>, point: struct<x: int32, label: string>}
// with a populated row, an empty map next to a null struct, and a null map.
func attrsBatch(t *testing.T) arrow.Record {
	t.Helper()
	alloc := memory.NewGoAllocator()

	pointType := arrow.StructOf(
		arrow.Field{Name: "x", Type: arrow.PrimitiveTypes.Int32},
		arrow.Field{Name: "label", Type: arrow.BinaryTypes.String, Nullable: true},
	)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "attrs", Type: arrow.MapOf(arrow.BinaryTypes.String, arrow.PrimitiveTypes.Int32), Nullable: true},
		{Name: "point", Type: pointType, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(alloc, schema)
	defer b.Release()

	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)

	attrs := b.Field(1).(*array.MapBuilder)
	keys := attrs.KeyBuilder().(*array.StringBuilder)
	items := attrs.ItemBuilder().(*array.Int32Builder)
	attrs.Append(true)
	keys.Append("k")
	items.Append(1)
	keys.Append("j")
	items.Append(2)
	attrs.Append(true)
	attrs.AppendNull()

	point := b.Field(2).(*array.StructBuilder)
	x := point.FieldBuilder(0).(*array.Int32Builder)
	label := point.FieldBuilder(1).(*array.StringBuilder)
	point.Append(true)
	x.Append(1)
	label.Append("a")
	point.AppendNull()
	point.Append(true)
	x.Append(3)
	label.AppendNull()

	return b.NewRecord()
}
