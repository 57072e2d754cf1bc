package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/goccy/go-json"

	"github.com/vegasq/pqcat/internal/reader"
	"github.com/vegasq/pqcat/internal/stream"
)

// JSONFormatter outputs rows as JSON Lines, keeping schema field order.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines row formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// FormatRow writes row as a single JSON object followed by a newline
func (j *JSONFormatter) FormatRow(row reader.Row) error {
	buf, err := appendJSONRow(nil, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	buf = append(buf, '\n')
	if _, err := j.writer.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func appendJSONRow(buf []byte, row reader.Row) ([]byte, error) {
	buf = append(buf, '{')
	for i, col := range row {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(col.Name)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		if buf, err = appendJSONValue(buf, col.Value); err != nil {
			return nil, fmt.Errorf("field %q: %w", col.Name, err)
		}
	}
	return append(buf, '}'), nil
}

func appendJSONValue(buf []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case reader.Row:
		return appendJSONRow(buf, val)
	case []any:
		buf = append(buf, '[')
		for i, e := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendJSONValue(buf, e); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		return append(buf, raw...), nil
	}
}

// JSONLinesEncoder writes record batches as JSON Lines, one object per row
// with keys in schema order. Nested values keep their structure; maps are
// written as objects.
type JSONLinesEncoder struct {
	w *bufio.Writer
}

// NewJSONLinesEncoder creates a JSON Lines batch encoder writing to w.
func NewJSONLinesEncoder(w io.Writer) *JSONLinesEncoder {
	return &JSONLinesEncoder{w: bufio.NewWriter(w)}
}

// Encode writes every row of rec.
func (e *JSONLinesEncoder) Encode(rec arrow.Record) error {
	schema := rec.Schema()
	keys := make([][]byte, schema.NumFields())
	for i, f := range schema.Fields() {
		key, err := json.Marshal(f.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
		keys[i] = key
	}

	var line []byte
	for row := 0; row < int(rec.NumRows()); row++ {
		line = append(line[:0], '{')
		for i, col := range rec.Columns() {
			if i > 0 {
				line = append(line, ',')
			}
			line = append(line, keys[i]...)
			line = append(line, ':')
			var err error
			line, err = stream.AppendJSON(line, col, row)
			if err != nil {
				return fmt.Errorf("%w: field %q row %d: %w", ErrEncode, schema.Field(i).Name, row, err)
			}
		}
		line = append(line, '}', '\n')
		if _, err := e.w.Write(line); err != nil {
			return fmt.Errorf("%w: %w", ErrEncode, err)
		}
	}
	return nil
}

// Close flushes buffered output.
func (e *JSONLinesEncoder) Close() error {
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}
