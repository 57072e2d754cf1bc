package stream

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
)

// SelectPositions draws min(k, total) distinct row positions uniformly at
// random from [0, total) and returns them in ascending order.
//
// Selection uses Floyd's algorithm, so memory grows with k and not with the
// number of rows in the file.
func SelectPositions(rng *rand.Rand, total, k int64) []int64 {
	k = min(k, total)
	if k <= 0 {
		return nil
	}

	chosen := make(map[int64]struct{}, k)
	positions := make([]int64, 0, k)
	for j := total - k; j < total; j++ {
		t := rng.Int64N(j + 1)
		if _, taken := chosen[t]; taken {
			t = j
		}
		chosen[t] = struct{}{}
		positions = append(positions, t)
	}

	slices.Sort(positions)
	return positions
}

// EmitSelected reads rows from src in order and calls emit for the rows whose
// 0-based position appears in positions, which must be sorted ascending.
// Reading stops right after the last selected row.
func EmitSelected[T any](src Source[T], positions []int64, emit func(T) error) error {
	var pos int64
	for _, want := range positions {
		for {
			row, err := src.Next()
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("sampled row %d is past the end of the data (%d rows decoded)", want, pos)
			}
			if err != nil {
				return fmt.Errorf("reading row %d: %w", pos, err)
			}

			current := pos
			pos++
			if current == want {
				if err := emit(row); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}
