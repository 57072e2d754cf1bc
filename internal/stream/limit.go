package stream

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
)

// NoLimit disables the row budget of a limiter.
const NoLimit int64 = -1

// BatchLimiter truncates a batch sequence to a fixed number of rows.
//
// Batches are forwarded whole while they fit in the remaining budget. The
// batch that crosses the budget is sliced to its first rows and everything
// after it is never requested from the underlying source.
type BatchLimiter struct {
	src       BatchSource
	remaining int64
	bounded   bool
}

// LimitBatches wraps src so that at most maxRows rows are emitted. A negative
// maxRows (NoLimit) passes every batch through unchanged.
func LimitBatches(src BatchSource, maxRows int64) *BatchLimiter {
	return &BatchLimiter{
		src:       src,
		remaining: maxRows,
		bounded:   maxRows >= 0,
	}
}

// Next returns the next batch, or io.EOF once the source is exhausted or the
// budget is spent.
func (l *BatchLimiter) Next() (arrow.Record, error) {
	if !l.bounded {
		return l.src.Next()
	}
	if l.remaining <= 0 {
		return nil, io.EOF
	}

	rec, err := l.src.Next()
	if err != nil {
		return nil, err
	}

	n := rec.NumRows()
	if n <= l.remaining {
		l.remaining -= n
		return rec, nil
	}

	sliced := rec.NewSlice(0, l.remaining)
	rec.Release()
	l.remaining = 0
	return sliced, nil
}

// RowLimiter is the row-at-a-time counterpart of BatchLimiter.
type RowLimiter[T any] struct {
	src       Source[T]
	remaining int64
	bounded   bool
}

// LimitRows wraps src so that at most maxRows rows are emitted. A negative
// maxRows (NoLimit) never terminates early.
func LimitRows[T any](src Source[T], maxRows int64) *RowLimiter[T] {
	return &RowLimiter[T]{
		src:       src,
		remaining: maxRows,
		bounded:   maxRows >= 0,
	}
}

// Next returns the next row or io.EOF.
func (l *RowLimiter[T]) Next() (T, error) {
	if l.bounded {
		if l.remaining <= 0 {
			var zero T
			return zero, io.EOF
		}
	}

	row, err := l.src.Next()
	if err != nil {
		return row, err
	}
	if l.bounded {
		l.remaining--
	}
	return row, nil
}
