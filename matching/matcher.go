package matching

import (
	"errors"
	"fmt"
	"math"

	"geohash-engine/geohash"
	"geohash-engine/models"
)

var ErrNoneNearby = errors.New("no points nearby")

const meanEarthRadius = 6371008.8 // metres

// Searcher is the part of the point index the matcher needs.
type Searcher interface {
	Within(codes []string) ([]models.Point, error)
	Precision() uint
}

// Match is a point and its great-circle distance from the query.
type Match struct {
	Point    models.Point `json:"point"`
	Distance float64      `json:"distance_m"`
}

// FindNearest returns the closest point in the ring of nine cells around
// (lat, lon). When the ring is empty the search is repeated one precision
// coarser, up to maxRetries times.
//
// Only the ring is searched, so a nearer point just outside it can be
// missed in favour of one in a ring corner.
func FindNearest(idx Searcher, lat, lon float64, maxRetries int) (Match, error) {
	precision := idx.Precision()
	for attempt := 0; attempt <= maxRetries && precision > 0; attempt++ {
		code, err := geohash.Encode(lat, lon, precision)
		if err != nil {
			return Match{}, err
		}
		ring, err := geohash.Neighbors(code)
		if err != nil {
			return Match{}, err
		}
		points, err := idx.Within(ring)
		if err != nil {
			return Match{}, err
		}
		if len(points) > 0 {
			return nearest(points, lat, lon), nil
		}
		precision--
	}
	return Match{}, fmt.Errorf("%w: (%v, %v)", ErrNoneNearby, lat, lon)
}

func nearest(points []models.Point, lat, lon float64) Match {
	best := Match{Distance: math.Inf(1)}
	for _, p := range points {
		if d := Haversine(lat, lon, p.Latitude, p.Longitude); d < best.Distance {
			best = Match{Point: p, Distance: d}
		}
	}
	return best
}

// Haversine returns the great-circle distance in metres between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * meanEarthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
