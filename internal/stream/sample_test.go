package stream

import (
	"errors"
	"io"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func countingRows(total int64, pulls *int64) Source[int64] {
	return SourceFunc[int64](func() (int64, error) {
		if *pulls >= total {
			return 0, io.EOF
		}
		row := *pulls
		*pulls++
		return row, nil
	})
}

func TestSelectPositions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		name  string
		total int64
		k     int64
		want  int
	}{
		{name: "k smaller than total", total: 1000, k: 10, want: 10},
		{name: "k equals total", total: 7, k: 7, want: 7},
		{name: "k larger than total", total: 5, k: 10, want: 5},
		{name: "empty file", total: 0, k: 3, want: 0},
		{name: "zero k", total: 10, k: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectPositions(rng, tt.total, tt.k)
			require.Len(t, got, tt.want)
			require.True(t, slices.IsSorted(got))
			for i, p := range got {
				require.GreaterOrEqual(t, p, int64(0))
				require.Less(t, p, tt.total)
				if i > 0 {
					require.NotEqual(t, got[i-1], p, "positions must be distinct")
				}
			}
		})
	}
}

func TestSelectPositions_VariesBetweenRuns(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	first := SelectPositions(rng, 10000, 20)
	differs := false
	for i := 0; i < 5 && !differs; i++ {
		next := SelectPositions(rng, 10000, 20)
		require.Len(t, next, len(first))
		differs = !slices.Equal(first, next)
	}
	require.True(t, differs)
}

func TestSelectPositions_Uniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	const (
		total  = 10
		k      = 3
		trials = 20000
	)

	var hits [total]int
	for i := 0; i < trials; i++ {
		for _, p := range SelectPositions(rng, total, k) {
			hits[p]++
		}
	}

	// Each position is expected trials*k/total = 6000 times.
	for pos, n := range hits {
		require.InDelta(t, 6000, n, 400, "position %d", pos)
	}
}

func TestEmitSelected(t *testing.T) {
	var pulls int64
	var got []int64

	err := EmitSelected(countingRows(100, &pulls), []int64{3, 10, 42}, func(row int64) error {
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int64{3, 10, 42}, got)
	require.Equal(t, int64(43), pulls, "decoding stops after the last selected row")
}

func TestEmitSelected_WholeFile(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	var pulls int64
	var got []int64

	positions := SelectPositions(rng, 5, 10)
	err := EmitSelected(countingRows(5, &pulls), positions, func(row int64) error {
		got = append(got, row)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int64{0, 1, 2, 3, 4}, got)
}

func TestEmitSelected_Errors(t *testing.T) {
	t.Run("short data", func(t *testing.T) {
		var pulls int64
		err := EmitSelected(countingRows(3, &pulls), []int64{1, 5}, func(int64) error { return nil })
		require.Error(t, err)
		require.Contains(t, err.Error(), "past the end")
	})

	t.Run("decode failure", func(t *testing.T) {
		boom := errors.New("corrupt page")
		src := SourceFunc[int64](func() (int64, error) { return 0, boom })
		err := EmitSelected(src, []int64{0}, func(int64) error { return nil })
		require.ErrorIs(t, err, boom)
	})

	t.Run("emit failure", func(t *testing.T) {
		var pulls int64
		boom := errors.New("broken pipe")
		err := EmitSelected(countingRows(3, &pulls), []int64{0, 1}, func(int64) error { return boom })
		require.ErrorIs(t, err, boom)
		require.Equal(t, int64(1), pulls)
	})
}
