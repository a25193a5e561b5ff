package geohash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitJoinIdentity(t *testing.T) {
	codes := []string{"0", "z", "s", "xn", "xn7", "xn76", "xn76f", "xn76fg", "xn76fgr", "xn76fgre",
		"u4pruydqq", "9q8yyk8ytp", "dr5regw3ppy", "zzzzzzzzzzzz", "000000000001"}
	for _, code := range codes {
		g, err := Split(code)
		require.NoError(t, err)
		got, err := Join(g, uint(len(code)))
		require.NoError(t, err)
		assert.Equal(t, code, got)
	}
}

func TestAxisBits(t *testing.T) {
	for p := uint(1); p <= MaxPrecision; p++ {
		latBits, lonBits := axisBits(p)
		assert.Equal(t, p*5, latBits+lonBits)
		if p%2 == 1 {
			assert.Equal(t, latBits+1, lonBits, "odd precision %d gives the extra bit to longitude", p)
		} else {
			assert.Equal(t, latBits, lonBits)
		}
	}
}

func TestGridIndexAdd(t *testing.T) {
	g := GridIndex{Lat: 10, Lon: 20}
	assert.Equal(t, GridIndex{Lat: 11, Lon: 19}, g.Add(-1, 1))
	assert.Equal(t, GridIndex{Lat: 10, Lon: 20}, g.Add(0, 0))

	zero := GridIndex{}
	assert.Equal(t, GridIndex{Lat: 0, Lon: ^uint64(0)}, zero.Add(-1, 0))
}

func TestJoinWrapsOutOfRangeIndex(t *testing.T) {
	// One step west of the first column is the last column.
	west, err := Join(GridIndex{}.Add(-1, 0), 1)
	require.NoError(t, err)
	last, err := Join(GridIndex{Lon: 7}, 1)
	require.NoError(t, err)
	assert.Equal(t, last, west)
}
