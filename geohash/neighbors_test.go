package geohash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborsShape(t *testing.T) {
	for _, code := range []string{"x", "xn", "xn7", "xn76fgre", "u4pruydqqvj", "0", "zzzzzzzzzzzz"} {
		ns, err := Neighbors(code)
		require.NoError(t, err)
		require.Len(t, ns, 9)
		assert.Equal(t, code, ns[0])
		for _, n := range ns {
			assert.Len(t, n, len(code))
		}
	}
}

func TestNeighborsDirections(t *testing.T) {
	ns, err := Neighbors("xn76fgre")
	require.NoError(t, err)

	self, err := Decode(ns[0])
	require.NoError(t, err)
	h := self.LatMax - self.LatMin
	w := self.LonMax - self.LonMin

	// dx, dy in cells for N, NW, W, SW, S, SE, E, NE.
	want := [][2]float64{{0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}}
	for i, d := range want {
		b, err := Decode(ns[i+1])
		require.NoError(t, err)
		assert.InDelta(t, self.LonMin+d[0]*w, b.LonMin, 1e-9, "neighbor %d", i)
		assert.InDelta(t, self.LatMin+d[1]*h, b.LatMin, 1e-9, "neighbor %d", i)
	}
}

func TestNeighborsWrapAntimeridian(t *testing.T) {
	code, err := Encode(0.5, 179.99, 5)
	require.NoError(t, err)
	ns, err := Neighbors(code)
	require.NoError(t, err)

	east, err := Decode(ns[7])
	require.NoError(t, err)
	assert.Equal(t, -180.0, east.LonMin)
}

func TestManyNeighbors(t *testing.T) {
	a, err := Neighbors("xn76fgre")
	require.NoError(t, err)
	b, err := Neighbors(a[7])
	require.NoError(t, err)

	// Adjacent cells share six neighbours; both groups are kept whole.
	got, err := ManyNeighbors([]string{a[0], a[7]})
	require.NoError(t, err)
	require.Len(t, got, 18)
	assert.Equal(t, a, got[:9])
	assert.Equal(t, b, got[9:])

	got, err = ManyNeighbors([]string{"xn76fgre", "xn76fgre"})
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, a...), a...), got)

	got, err = ManyNeighbors(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ManyNeighbors([]string{"xn76", "xna"})
	require.ErrorIs(t, err, ErrInvalidSymbol)
}
