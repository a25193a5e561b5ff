package geohash

import "strings"

// IsIn reports, for each point code, whether it shares a cell with any region
// code: one of the two is a prefix of the other.
func IsIn(points, region []string) []bool {
	out := make([]bool, len(points))
	for i, p := range points {
		for _, r := range region {
			if strings.HasPrefix(p, r) || strings.HasPrefix(r, p) {
				out[i] = true
				break
			}
		}
	}
	return out
}

// IsInCircle is IsIn against the Circle cover of (lat, lon, radius).
func IsInCircle(points []string, lat, lon, radius float64, precision uint) ([]bool, error) {
	cover, err := Circle(lat, lon, radius, precision)
	if err != nil {
		return nil, err
	}
	return IsIn(points, cover), nil
}

// EncodeAll encodes every point at the same precision.
func EncodeAll(points []Point, precision uint) ([]string, error) {
	if err := validPrecision(precision); err != nil {
		return nil, err
	}
	codes := make([]string, len(points))
	for i, p := range points {
		c, err := Encode(p.Lat, p.Lon, precision)
		if err != nil {
			return nil, err
		}
		codes[i] = c
	}
	return codes, nil
}
