package index

import (
	"github.com/dhconnelly/rtreego"

	"geohash-engine/geohash"
	"geohash-engine/models"
)

// pointTolerance gives stored points a non-degenerate box so that points on
// a cell edge intersect the cell.
const pointTolerance = 1e-9

// spatialPoint wraps a point to satisfy the rtreego.Spatial interface.
// Coordinates are (longitude, latitude).
type spatialPoint struct {
	models.Point
}

func (p spatialPoint) Bounds() rtreego.Rect {
	return rtreego.Point{p.Longitude, p.Latitude}.ToRect(pointTolerance)
}

type rtree struct {
	precision uint
	tree      *rtreego.Rtree
}

func newRTree(precision uint) *rtree {
	return &rtree{precision: precision, tree: rtreego.NewTree(2, 25, 50)}
}

func (t *rtree) insert(p models.Point) {
	t.tree.Insert(spatialPoint{p})
}

func (t *rtree) remove(p models.Point) {
	t.tree.Delete(spatialPoint{p})
}

func (t *rtree) candidates(code string) ([]models.Point, error) {
	b, err := decodePrefix(code, t.precision)
	if err != nil {
		return nil, err
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{b.LonMin, b.LatMin},
		[]float64{b.LonMax - b.LonMin, b.LatMax - b.LatMin},
	)
	if err != nil {
		return nil, err
	}
	hits := t.tree.SearchIntersect(rect)
	out := make([]models.Point, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(spatialPoint).Point)
	}
	return out, nil
}

// decodePrefix returns the cell of code truncated to the index precision.
// A stored point matches a longer query code through its own, larger cell.
func decodePrefix(code string, precision uint) (geohash.Bounds, error) {
	if uint(len(code)) > precision {
		code = code[:precision]
	}
	return geohash.Decode(code)
}
