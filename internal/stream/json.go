package stream

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/goccy/go-json"
)

// AppendJSON appends the JSON encoding of value i of arr to buf.
//
// Maps become objects keyed by the text form of their keys, structs become
// objects in field order and lists become arrays. Nulls are written as null.
func AppendJSON(buf []byte, arr arrow.Array, i int) ([]byte, error) {
	if arr.IsNull(i) {
		return append(buf, "null"...), nil
	}

	var err error
	switch a := arr.(type) {
	case *array.Map:
		keys, items := a.Keys(), a.Items()
		start, end := a.ValueOffsets(i)
		buf = append(buf, '{')
		for j := int(start); j < int(end); j++ {
			if j > int(start) {
				buf = append(buf, ',')
			}
			if buf, err = appendJSONKey(buf, keys.ValueStr(j)); err != nil {
				return nil, err
			}
			if buf, err = AppendJSON(buf, items, j); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil

	case *array.Struct:
		st := a.DataType().(*arrow.StructType)
		buf = append(buf, '{')
		for f := 0; f < a.NumField(); f++ {
			if f > 0 {
				buf = append(buf, ',')
			}
			if buf, err = appendJSONKey(buf, st.Field(f).Name); err != nil {
				return nil, err
			}
			if buf, err = AppendJSON(buf, a.Field(f), i); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil

	case array.ListLike:
		values := a.ListValues()
		start, end := a.ValueOffsets(i)
		buf = append(buf, '[')
		for j := int(start); j < int(end); j++ {
			if j > int(start) {
				buf = append(buf, ',')
			}
			if buf, err = AppendJSON(buf, values, j); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil

	case *array.Dictionary:
		return AppendJSON(buf, a.Dictionary(), a.GetValueIndex(i))

	default:
		raw, err := json.Marshal(arr.GetOneForMarshal(i))
		if err != nil {
			return nil, fmt.Errorf("%s value: %w", arr.DataType(), err)
		}
		return append(buf, raw...), nil
	}
}

func appendJSONKey(buf []byte, key string) ([]byte, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return nil, err
	}
	buf = append(buf, raw...)
	return append(buf, ':'), nil
}
