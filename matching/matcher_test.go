package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-engine/index"
	"geohash-engine/matching"
	"geohash-engine/models"
)

func newIndex(t *testing.T, points ...models.Point) *index.Index {
	t.Helper()
	idx, err := index.New(index.GeohashingTechnique, 7)
	require.NoError(t, err)
	for _, p := range points {
		_, err := idx.Put(p)
		require.NoError(t, err)
	}
	return idx
}

func TestFindNearest(t *testing.T) {
	idx := newIndex(t,
		models.Point{ID: "near", Latitude: 35.6581, Longitude: 139.7017},
		models.Point{ID: "nearer", Latitude: 35.65804, Longitude: 139.70164},
		models.Point{ID: "osaka", Latitude: 34.6937, Longitude: 135.5023},
	)

	m, err := matching.FindNearest(idx, 35.65803, 139.701636, 0)
	require.NoError(t, err)
	assert.Equal(t, "nearer", m.Point.ID)
	assert.Less(t, m.Distance, 5.0)
}

func TestFindNearestCoarsens(t *testing.T) {
	// About 5 km away: outside the precision 7 ring, inside the precision 5 ring.
	idx := newIndex(t, models.Point{ID: "far", Latitude: 35.6762, Longitude: 139.6503})

	_, err := matching.FindNearest(idx, 35.65803, 139.701636, 0)
	require.ErrorIs(t, err, matching.ErrNoneNearby)

	m, err := matching.FindNearest(idx, 35.65803, 139.701636, 3)
	require.NoError(t, err)
	assert.Equal(t, "far", m.Point.ID)
	assert.InDelta(t, 5000, m.Distance, 1000)
}

func TestFindNearestEmpty(t *testing.T) {
	_, err := matching.FindNearest(newIndex(t), 0, 0, 10)
	require.ErrorIs(t, err, matching.ErrNoneNearby)
}

func TestHaversine(t *testing.T) {
	assert.Zero(t, matching.Haversine(10, 10, 10, 10))
	// One degree of latitude.
	assert.InDelta(t, 111195, matching.Haversine(0, 0, 1, 0), 1)
	// Tokyo to Osaka.
	assert.InDelta(t, 393000, matching.Haversine(35.6762, 139.6503, 34.6937, 135.5023), 5000)
}
