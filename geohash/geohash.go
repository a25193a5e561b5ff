// Package geohash encodes coordinates as base-32 geohash codes and answers
// grid queries over them: neighbors, rectangle and circle covers, cover
// compaction and prefix membership.
//
// Every function is pure and safe for concurrent use.
package geohash

import (
	"fmt"
	"math"
)

// Bounds is the rectangle a code denotes, in degrees.
type Bounds struct {
	LatMin float64 `json:"lat_min"`
	LonMin float64 `json:"lon_min"`
	LatMax float64 `json:"lat_max"`
	LonMax float64 `json:"lon_max"`
}

// Point is a (latitude, longitude) pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Contains reports whether (lat, lon) lies inside b, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// Center returns the midpoint of b.
func (b Bounds) Center() (lat, lon float64) {
	return (b.LatMin + b.LatMax) / 2, (b.LonMin + b.LonMax) / 2
}

// Validate checks that all bounds are finite and ordered.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.LatMin, b.LonMin, b.LatMax, b.LonMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value in %+v", ErrInvalidBounds, b)
		}
	}
	if b.LatMin > b.LatMax || b.LonMin > b.LonMax {
		return fmt.Errorf("%w: min exceeds max in %+v", ErrInvalidBounds, b)
	}
	return nil
}

// world is the domain every code subdivides.
var world = Bounds{LatMin: -90, LonMin: -180, LatMax: 90, LonMax: 180}

// narrow halves the live interval of one axis, keeping the upper half when
// upper is set. Longitude is narrowed on even bit positions, latitude on odd.
func (b *Bounds) narrow(lonAxis, upper bool) {
	if lonAxis {
		mid := (b.LonMax + b.LonMin) / 2
		if upper {
			b.LonMin = mid
		} else {
			b.LonMax = mid
		}
		return
	}
	mid := (b.LatMax + b.LatMin) / 2
	if upper {
		b.LatMin = mid
	} else {
		b.LatMax = mid
	}
}

// Encode returns the geohash of (lat, lon) with the given number of symbols.
//
// Coordinates are not range checked: values outside [-90,90]x[-180,180]
// keep bisecting toward the nearest edge and land in an edge cell.
func Encode(lat, lon float64, precision uint) (string, error) {
	if err := validPrecision(precision); err != nil {
		return "", err
	}
	b := world
	var v uint64
	nbits := precision * bitsPerSymbol
	for i := uint(0); i < nbits; i++ {
		lonAxis := i%2 == 0
		var upper bool
		if lonAxis {
			upper = (b.LonMax+b.LonMin)/2 <= lon
		} else {
			upper = (b.LatMax+b.LatMin)/2 <= lat
		}
		v <<= 1
		if upper {
			v |= 1
		}
		b.narrow(lonAxis, upper)
	}
	return valueCode(v, precision), nil
}

// Decode returns the bounds of the cell denoted by code.
func Decode(code string) (Bounds, error) {
	v, err := codeValue(code)
	if err != nil {
		return Bounds{}, err
	}
	b := world
	nbits := uint(len(code)) * bitsPerSymbol
	for i := uint(0); i < nbits; i++ {
		b.narrow(i%2 == 0, (v>>(nbits-1-i))&1 == 1)
	}
	return b, nil
}

// DecodeCenter returns the midpoint of the cell denoted by code.
func DecodeCenter(code string) (lat, lon float64, err error) {
	b, err := Decode(code)
	if err != nil {
		return 0, 0, err
	}
	lat, lon = b.Center()
	return lat, lon, nil
}
