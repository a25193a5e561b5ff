package index

import (
	"sort"
	"strings"

	"geohash-engine/models"
)

// prefixIndex keeps points sorted by code so that every point inside a cell
// is one contiguous run.
type prefixIndex struct {
	precision uint
	entries   []models.Point
}

func newPrefixIndex(precision uint) *prefixIndex {
	return &prefixIndex{precision: precision}
}

func less(a, b models.Point) bool {
	if a.Geohash != b.Geohash {
		return a.Geohash < b.Geohash
	}
	return a.ID < b.ID
}

func (x *prefixIndex) search(p models.Point) int {
	return sort.Search(len(x.entries), func(i int) bool { return !less(x.entries[i], p) })
}

func (x *prefixIndex) insert(p models.Point) {
	i := x.search(p)
	x.entries = append(x.entries, models.Point{})
	copy(x.entries[i+1:], x.entries[i:])
	x.entries[i] = p
}

func (x *prefixIndex) remove(p models.Point) {
	i := x.search(p)
	if i < len(x.entries) && x.entries[i].ID == p.ID {
		x.entries = append(x.entries[:i], x.entries[i+1:]...)
	}
}

func (x *prefixIndex) candidates(code string) ([]models.Point, error) {
	if uint(len(code)) > x.precision {
		code = code[:x.precision]
	}
	i := sort.Search(len(x.entries), func(i int) bool { return x.entries[i].Geohash >= code })
	var out []models.Point
	for ; i < len(x.entries) && strings.HasPrefix(x.entries[i].Geohash, code); i++ {
		out = append(out, x.entries[i])
	}
	return out, nil
}
