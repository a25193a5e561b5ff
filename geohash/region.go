package geohash

import (
	"fmt"
	"math"
)

const (
	// earthRadius is the WGS84 equatorial radius in metres.
	earthRadius = 6378137.0

	maxPrealloc = 1 << 16
)

// codeSet collects codes once each, keeping first-seen order.
type codeSet struct {
	seen map[string]struct{}
	list []string
}

func newCodeSet(capacity int) *codeSet {
	return &codeSet{
		seen: make(map[string]struct{}, capacity),
		list: make([]string, 0, capacity),
	}
}

func (s *codeSet) add(code string) {
	if _, ok := s.seen[code]; ok {
		return
	}
	s.seen[code] = struct{}{}
	s.list = append(s.list, code)
}

// rectCorners returns the grid indices of the cells holding the lower-left
// and upper-right corners of b.
func rectCorners(b Bounds, precision uint) (lo, hi GridIndex, err error) {
	if err = b.Validate(); err != nil {
		return lo, hi, err
	}
	sw, err := Encode(b.LatMin, b.LonMin, precision)
	if err != nil {
		return lo, hi, err
	}
	ne, err := Encode(b.LatMax, b.LonMax, precision)
	if err != nil {
		return lo, hi, err
	}
	if lo, err = Split(sw); err != nil {
		return lo, hi, err
	}
	hi, err = Split(ne)
	return lo, hi, err
}

// RectCount returns how many codes Rect would produce without building them.
func RectCount(b Bounds, precision uint) (uint64, error) {
	lo, hi, err := rectCorners(b, precision)
	if err != nil {
		return 0, err
	}
	return (hi.Lat - lo.Lat + 1) * (hi.Lon - lo.Lon + 1), nil
}

// Rect returns every cell of the given precision whose grid index lies
// between the cells of b's corners, rows (latitude) outermost.
//
// The result grows with the area of b over the cell area; use RectCount to
// bound it first.
func Rect(b Bounds, precision uint) ([]string, error) {
	lo, hi, err := rectCorners(b, precision)
	if err != nil {
		return nil, err
	}
	n := (hi.Lat - lo.Lat + 1) * (hi.Lon - lo.Lon + 1)
	codes := make([]string, 0, min(n, maxPrealloc))
	for lat := lo.Lat; lat <= hi.Lat; lat++ {
		for lon := lo.Lon; lon <= hi.Lon; lon++ {
			code, err := Join(GridIndex{Lat: lat, Lon: lon}, precision)
			if err != nil {
				return nil, err
			}
			codes = append(codes, code)
		}
	}
	return codes, nil
}

// CellSize returns the width and height in metres of a cell with bounds b,
// measured at latitude lat.
func CellSize(b Bounds, lat float64) (width, height float64) {
	width = (b.LonMax - b.LonMin) * math.Pi / 180 * earthRadius * math.Cos(lat*math.Pi/180)
	height = (b.LatMax - b.LatMin) * math.Pi / 180 * earthRadius
	return width, height
}

// offset is a cell position relative to the cell holding a circle's centre.
type offset struct {
	x, y int64
}

// gridOffsets rasterises a circle of the given radius over a grid of
// width x height cells. cx and cy place the centre inside cell (0, 0) in
// [0, 1) cell units. Each column takes the rows reached by the circle at
// whichever of its two edges reaches further, plus one cell of padding on
// each side. A column the circle reaches at neither edge takes rows -1
// and 0.
func gridOffsets(cx, cy, radius, width, height float64) []offset {
	// Conversions round each product so the result does not depend on
	// FMA fusion.
	r2 := float64(radius * radius)
	reach := func(edge float64) float64 {
		d := (cx - edge) * width
		return r2 - float64(d*d)
	}

	var out []offset
	x0 := int64(math.Ceil(cx-radius/width)) - 1
	xLast := int64(math.Floor(cx + radius/width))
	for x := x0; x <= xLast; x++ {
		y0, yLast := int64(-1), int64(0)
		if d := math.Max(reach(float64(x)), reach(float64(x+1))); d >= 0 {
			p := math.Sqrt(d) / height
			y0 = int64(math.Ceil(cy-p)) - 1
			yLast = int64(math.Floor(cy + p))
		}
		for y := y0; y <= yLast; y++ {
			out = append(out, offset{x, y})
		}
	}
	return out
}

// Circle returns the cells of the given precision covering a circle of
// radius metres around (lat, lon). The cover is a raster over the geohash
// grid and may include cells just outside the circle.
//
// Columns and rows wrap like Neighbors near the poles and antimeridian.
func Circle(lat, lon, radius float64, precision uint) ([]string, error) {
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	code, err := Encode(lat, lon, precision)
	if err != nil {
		return nil, err
	}
	b, err := Decode(code)
	if err != nil {
		return nil, err
	}
	g, err := Split(code)
	if err != nil {
		return nil, err
	}
	width, height := CellSize(b, lat)
	cx := (lon - b.LonMin) / (b.LonMax - b.LonMin)
	cy := (lat - b.LatMin) / (b.LatMax - b.LatMin)

	offsets := gridOffsets(cx, cy, radius, width, height)
	s := newCodeSet(len(offsets))
	for _, o := range offsets {
		c, err := Join(g.Add(o.x, o.y), precision)
		if err != nil {
			return nil, err
		}
		s.add(c)
	}
	return s.list, nil
}
