package index

import (
	"geohash-engine/geohash"
	"geohash-engine/models"
)

const (
	nodeCapacity = 4
	// maxDepth stops subdivision when more than nodeCapacity points share a
	// location.
	maxDepth = 32
)

// quadtreeNode represents a node in the quadtree. Bounds use the same
// closed rectangle convention as geohash cells.
type quadtreeNode struct {
	bounds   geohash.Bounds
	depth    int
	points   []models.Point
	children [4]*quadtreeNode
}

type quadtree struct {
	precision uint
	root      *quadtreeNode
}

func newQuadtree(precision uint) *quadtree {
	return &quadtree{
		precision: precision,
		root:      &quadtreeNode{bounds: geohash.Bounds{LatMin: -90, LonMin: -180, LatMax: 90, LonMax: 180}},
	}
}

func (qt *quadtree) insert(p models.Point) {
	qt.root.insert(p)
}

func (qt *quadtree) remove(p models.Point) {
	qt.root.remove(p)
}

func (qt *quadtree) candidates(code string) ([]models.Point, error) {
	b, err := decodePrefix(code, qt.precision)
	if err != nil {
		return nil, err
	}
	return qt.root.search(b, nil), nil
}

// insert adds a point to the first child holding it, splitting full leaves.
func (node *quadtreeNode) insert(p models.Point) bool {
	if !node.bounds.Contains(p.Latitude, p.Longitude) {
		return false
	}
	if node.children[0] == nil {
		if len(node.points) < nodeCapacity || node.depth >= maxDepth {
			node.points = append(node.points, p)
			return true
		}
		node.subdivide()
	}
	for _, child := range node.children {
		if child.insert(p) {
			return true
		}
	}
	return false
}

// subdivide splits the node into four children and pushes its points down.
func (node *quadtreeNode) subdivide() {
	b := node.bounds
	midLat := (b.LatMin + b.LatMax) / 2
	midLon := (b.LonMin + b.LonMax) / 2
	d := node.depth + 1
	node.children[0] = &quadtreeNode{depth: d, bounds: geohash.Bounds{LatMin: b.LatMin, LonMin: b.LonMin, LatMax: midLat, LonMax: midLon}}
	node.children[1] = &quadtreeNode{depth: d, bounds: geohash.Bounds{LatMin: b.LatMin, LonMin: midLon, LatMax: midLat, LonMax: b.LonMax}}
	node.children[2] = &quadtreeNode{depth: d, bounds: geohash.Bounds{LatMin: midLat, LonMin: b.LonMin, LatMax: b.LatMax, LonMax: midLon}}
	node.children[3] = &quadtreeNode{depth: d, bounds: geohash.Bounds{LatMin: midLat, LonMin: midLon, LatMax: b.LatMax, LonMax: b.LonMax}}

	points := node.points
	node.points = nil
	for _, p := range points {
		for _, child := range node.children {
			if child.insert(p) {
				break
			}
		}
	}
}

func (node *quadtreeNode) remove(p models.Point) bool {
	if !node.bounds.Contains(p.Latitude, p.Longitude) {
		return false
	}
	for i, q := range node.points {
		if q.ID == p.ID {
			node.points = append(node.points[:i], node.points[i+1:]...)
			return true
		}
	}
	if node.children[0] == nil {
		return false
	}
	for _, child := range node.children {
		if child.remove(p) {
			return true
		}
	}
	return false
}

// search appends the points of every node whose bounds touch b.
func (node *quadtreeNode) search(b geohash.Bounds, out []models.Point) []models.Point {
	if !node.intersects(b) {
		return out
	}
	out = append(out, node.points...)
	if node.children[0] != nil {
		for _, child := range node.children {
			out = child.search(b, out)
		}
	}
	return out
}

func (node *quadtreeNode) intersects(b geohash.Bounds) bool {
	nb := node.bounds
	return nb.LatMin <= b.LatMax && b.LatMin <= nb.LatMax &&
		nb.LonMin <= b.LonMax && b.LonMin <= nb.LonMax
}
