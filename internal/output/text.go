package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/vegasq/pqcat/internal/reader"
)

// TextFormatter outputs rows in the native {name: value, ...} form, one row
// per line.
type TextFormatter struct {
	writer io.Writer
	buf    bytes.Buffer
}

// NewTextFormatter creates a new native row formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// FormatRow writes row followed by a newline
func (f *TextFormatter) FormatRow(row reader.Row) error {
	f.buf.Reset()
	writeTextRow(&f.buf, row)
	f.buf.WriteByte('\n')
	if _, err := f.writer.Write(f.buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

func writeTextRow(w *bytes.Buffer, row reader.Row) {
	w.WriteByte('{')
	for i, col := range row {
		if i > 0 {
			w.WriteString(", ")
		}
		w.WriteString(col.Name)
		w.WriteString(": ")
		writeTextValue(w, col.Value)
	}
	w.WriteByte('}')
}

func writeTextValue(w *bytes.Buffer, v any) {
	switch val := v.(type) {
	case nil:
		w.WriteString("null")
	case reader.Row:
		writeTextRow(w, val)
	case []any:
		w.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				w.WriteString(", ")
			}
			writeTextValue(w, e)
		}
		w.WriteByte(']')
	case string:
		w.WriteString(strconv.Quote(val))
	case []byte:
		if utf8.Valid(val) {
			w.WriteString(strconv.Quote(string(val)))
		} else {
			fmt.Fprintf(w, "%v", val)
		}
	case float32:
		w.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case float64:
		w.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case time.Time:
		w.WriteString(val.UTC().Format(time.RFC3339Nano))
	default:
		fmt.Fprintf(w, "%v", val)
	}
}
