package stream

import "github.com/apache/arrow-go/v18/arrow"

// Source is a lazy, finite sequence. Next returns io.EOF once it is exhausted.
type Source[T any] interface {
	Next() (T, error)
}

// BatchSource yields record batches. The caller owns every returned record
// and must Release it.
type BatchSource = Source[arrow.Record]

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc[T any] func() (T, error)

// Next calls f.
func (f SourceFunc[T]) Next() (T, error) { return f() }
