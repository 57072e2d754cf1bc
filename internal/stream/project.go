package stream

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Policy decides what happens to nested columns on their way to an encoder
// that can only write flat values.
type Policy int

const (
	// PolicyError rejects any batch that carries a nested column.
	PolicyError Policy = iota
	// PolicyOmit drops nested columns.
	PolicyOmit
	// PolicyJSON replaces each nested column with a string column holding the
	// JSON encoding of every value.
	PolicyJSON
)

var policyNames = map[Policy]string{
	PolicyError: "error",
	PolicyOmit:  "omit",
	PolicyJSON:  "json",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy converts a flag value such as "omit" into a Policy.
func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return PolicyError, fmt.Errorf("unknown nested field policy %q (want error, omit or json)", s)
}

// PolicyNames lists the accepted flag values in declaration order.
func PolicyNames() []string {
	return []string{PolicyError.String(), PolicyOmit.String(), PolicyJSON.String()}
}

// NestedFieldsError is returned under PolicyError. Fields lists every nested
// field of the schema in schema order.
type NestedFieldsError struct {
	Fields []string
}

func (e *NestedFieldsError) Error() string {
	return fmt.Sprintf("unsupported nested fields: %s", strings.Join(e.Fields, ", "))
}

// IsNested reports whether values of dt are containers (list, map, struct,
// union) rather than scalars. Dictionaries are judged by their value type.
func IsNested(dt arrow.DataType) bool {
	switch t := dt.(type) {
	case *arrow.DictionaryType:
		return IsNested(t.ValueType)
	case arrow.NestedType:
		return true
	default:
		return false
	}
}

// NestedFields returns the names of the nested fields of schema.
func NestedFields(schema *arrow.Schema) []string {
	var names []string
	for _, f := range schema.Fields() {
		if IsNested(f.Type) {
			names = append(names, f.Name)
		}
	}
	return names
}

// Project adapts rec for a flat encoder according to policy.
//
// The returned record is a new reference owned by the caller; rec is left
// untouched and still has to be released by whoever owns it.
func Project(rec arrow.Record, policy Policy, mem memory.Allocator) (arrow.Record, error) {
	schema := rec.Schema()

	switch policy {
	case PolicyError:
		if nested := NestedFields(schema); len(nested) > 0 {
			return nil, &NestedFieldsError{Fields: nested}
		}
		rec.Retain()
		return rec, nil
	case PolicyOmit, PolicyJSON:
	default:
		return nil, fmt.Errorf("unknown nested field policy %v", policy)
	}

	fields := make([]arrow.Field, 0, schema.NumFields())
	columns := make([]arrow.Array, 0, schema.NumFields())

	var encoded []arrow.Array
	defer func() {
		for _, arr := range encoded {
			arr.Release()
		}
	}()

	for i, f := range schema.Fields() {
		col := rec.Column(i)
		if !IsNested(f.Type) {
			fields = append(fields, f)
			columns = append(columns, col)
			continue
		}
		if policy == PolicyOmit {
			continue
		}

		arr, err := columnToJSON(col, mem)
		if err != nil {
			return nil, fmt.Errorf("encoding field %q as JSON: %w", f.Name, err)
		}
		encoded = append(encoded, arr)
		fields = append(fields, arrow.Field{
			Name:     f.Name,
			Type:     arrow.BinaryTypes.String,
			Nullable: f.Nullable,
			Metadata: f.Metadata,
		})
		columns = append(columns, arr)
	}

	md := schema.Metadata()
	return array.NewRecord(arrow.NewSchema(fields, &md), columns, rec.NumRows()), nil
}

// columnToJSON renders every value of col as standalone JSON text. Nulls stay
// null rather than becoming the string "null".
func columnToJSON(col arrow.Array, mem memory.Allocator) (arrow.Array, error) {
	b := array.NewStringBuilder(mem)
	defer b.Release()

	b.Reserve(col.Len())
	for i := 0; i < col.Len(); i++ {
		if col.IsNull(i) {
			b.AppendNull()
			continue
		}
		raw, err := AppendJSON(nil, col, i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		b.Append(string(raw))
	}
	return b.NewArray(), nil
}

// Projector applies Project to every batch of a source.
type Projector struct {
	src    BatchSource
	policy Policy
	mem    memory.Allocator
}

// ProjectBatches wraps src with a Projector. A nil mem selects
// memory.DefaultAllocator.
func ProjectBatches(src BatchSource, policy Policy, mem memory.Allocator) *Projector {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	return &Projector{src: src, policy: policy, mem: mem}
}

// Next pulls one batch from the source and projects it.
func (p *Projector) Next() (arrow.Record, error) {
	rec, err := p.src.Next()
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	return Project(rec, p.policy, p.mem)
}
