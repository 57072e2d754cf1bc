package reader

import (
	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/pqcat/internal/stream"
)

// ColumnInfo describes a single leaf column of a parquet file.
type ColumnInfo struct {
	Name         string
	Type         string
	PhysicalType string
	LogicalType  string
	Repetition   string
}

// Columns lists the leaf columns of the file schema.
//
// For nested types, column names use dot notation (e.g., "address.street").
func (f *File) Columns() []ColumnInfo {
	var infos []ColumnInfo
	for _, field := range f.Schema().Fields() {
		infos = appendColumnInfo(infos, field, "")
	}
	return infos
}

// FileInfo bundles what the schema command prints for a file.
type FileInfo struct {
	Path      string
	NumRows   int64
	CreatedBy string
	Columns   []ColumnInfo
	RowGroups []stream.RowGroup
}

// Describe collects the schema and row-group metadata of the file.
func (f *File) Describe() (FileInfo, error) {
	groups, err := f.RowGroups()
	if err != nil {
		return FileInfo{}, err
	}

	info := FileInfo{
		Path:      f.path,
		NumRows:   f.NumRows(),
		Columns:   f.Columns(),
		RowGroups: groups,
	}
	if md := f.pqFile.Metadata(); md != nil {
		info.CreatedBy = md.CreatedBy
	}
	return info, nil
}

// appendColumnInfo appends the leaves below field, named with dot notation.
func appendColumnInfo(infos []ColumnInfo, field parquet.Field, prefix string) []ColumnInfo {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	if children := field.Fields(); len(children) > 0 {
		for _, child := range children {
			infos = appendColumnInfo(infos, child, name)
		}
		return infos
	}

	return append(infos, ColumnInfo{
		Name:         name,
		Type:         friendlyType(field),
		PhysicalType: physicalType(field),
		LogicalType:  logicalType(field),
		Repetition:   repetition(field),
	})
}

func repetition(field parquet.Field) string {
	switch {
	case field.Repeated():
		return "REPEATED"
	case field.Optional():
		return "OPTIONAL"
	default:
		return "REQUIRED"
	}
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

// friendlyType prefers the logical type name and falls back to the
// physical one, with floats spelled by width.
func friendlyType(field parquet.Field) string {
	switch lt := logicalType(field); lt {
	case "STRING", "UTF8":
		return "STRING"
	case "ENUM", "UUID", "DATE", "JSON", "BSON":
		return lt
	}

	if t := field.Type(); t != nil && t.LogicalType() != nil {
		switch lt := t.LogicalType(); {
		case lt.Time != nil:
			return "TIME"
		case lt.Timestamp != nil:
			return "TIMESTAMP"
		case lt.Decimal != nil:
			return "DECIMAL"
		}
	}

	switch pt := physicalType(field); pt {
	case "FLOAT":
		return "FLOAT32"
	case "DOUBLE":
		return "FLOAT64"
	default:
		return pt
	}
}
