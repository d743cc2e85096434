package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexWrapping(t *testing.T) {
	index3, index4 := NewIndex(3), NewIndex(4)
	require.Equal(t, 0, index3.Current())
	require.Equal(t, 0, index4.Current())

	index3.Advance()
	index4.Advance()
	index3.Advance()
	index4.Advance()
	require.Equal(t, 2, index3.Current())
	require.Equal(t, 2, index4.Current())

	index3.Advance()
	index4.Advance()
	require.Equal(t, 0, index3.Current())
	require.Equal(t, 3, index4.Current())

	index3.Advance()
	index4.Advance()
	require.Equal(t, 1, index3.Current())
	require.Equal(t, 0, index4.Current())
}

func TestIndexFullCycle(t *testing.T) {
	for _, limit := range []int{1, 2, 7, 65} {
		index := NewIndex(limit)
		for n := 0; n < limit; n++ {
			require.Less(t, index.Current(), limit)
			index.Advance()
		}
		require.Equal(t, 0, index.Current(), "limit %d", limit)
	}
}

func TestIndexPeekNext(t *testing.T) {
	index3 := NewIndex(3)

	require.Equal(t, 0, index3.Current())
	require.Equal(t, 1, index3.PeekNext())
	// PeekNext doesn't modify the value.
	require.Equal(t, 0, index3.Current())

	index3.Advance()
	index3.Advance()
	require.Equal(t, 2, index3.Current())
	require.Equal(t, 0, index3.PeekNext())
	require.Equal(t, 2, index3.Current())
}

func TestIndexInvalidLimit(t *testing.T) {
	require.Panics(t, func() { NewIndex(0) })
	require.Panics(t, func() { NewIndex(-1) })
}
