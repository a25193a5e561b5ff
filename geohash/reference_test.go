package geohash_test

import (
	"testing"

	ref "github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-engine/geohash"
)

// Away from cell edges and the grid border this package must agree with an
// independent geohash implementation.
var referencePoints = []geohash.Point{
	{Lat: 35.65803, Lon: 139.701636},
	{Lat: 51.50733, Lon: -0.12765},
	{Lat: -33.86785, Lon: 151.20732},
	{Lat: 40.71277, Lon: -74.00597},
	{Lat: -22.90685, Lon: -43.17289},
	{Lat: 64.14661, Lon: -21.94262},
	{Lat: 1.35208, Lon: 103.81984},
}

func TestMatchesReferenceEncoding(t *testing.T) {
	for _, p := range referencePoints {
		for precision := uint(1); precision <= geohash.MaxPrecision; precision++ {
			code, err := geohash.Encode(p.Lat, p.Lon, precision)
			require.NoError(t, err)
			require.Equal(t, ref.EncodeWithPrecision(p.Lat, p.Lon, precision), code)

			b, err := geohash.Decode(code)
			require.NoError(t, err)
			box := ref.BoundingBox(code)
			assert.InDelta(t, box.MinLat, b.LatMin, 1e-12)
			assert.InDelta(t, box.MaxLat, b.LatMax, 1e-12)
			assert.InDelta(t, box.MinLng, b.LonMin, 1e-12)
			assert.InDelta(t, box.MaxLng, b.LonMax, 1e-12)
		}
	}
}

func TestMatchesReferenceNeighbors(t *testing.T) {
	for _, p := range referencePoints {
		for _, precision := range []uint{3, 5, 8, 11} {
			code, err := geohash.Encode(p.Lat, p.Lon, precision)
			require.NoError(t, err)
			ns, err := geohash.Neighbors(code)
			require.NoError(t, err)
			assert.ElementsMatch(t, ref.Neighbors(code), ns[1:], code)
		}
	}
}
