package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"geohash-engine/geohash"
	"geohash-engine/metrics"
	"geohash-engine/models"
)

type GeoIndexingTechnique string

const (
	GeohashingTechnique GeoIndexingTechnique = "geohashing"
	RTreeTechnique      GeoIndexingTechnique = "rtree"
	QuadtreeTechnique   GeoIndexingTechnique = "quadtree"
)

var (
	ErrNotFound             = errors.New("point not found")
	ErrInvalidPoint         = errors.New("invalid point")
	ErrUnsupportedTechnique = errors.New("unsupported geo-indexing technique")
)

// spatial finds the stored points that may lie in the cell of a code.
// Candidates are filtered by the caller.
type spatial interface {
	insert(p models.Point)
	remove(p models.Point)
	candidates(code string) ([]models.Point, error)
}

// Index holds points keyed by ID and answers which of them fall in a set of
// geohash cells. It is safe for concurrent use.
type Index struct {
	mu        sync.RWMutex
	technique GeoIndexingTechnique
	precision uint
	points    map[string]models.Point
	spatial   spatial
}

// New creates an empty index storing point codes at the given precision.
func New(technique GeoIndexingTechnique, precision uint) (*Index, error) {
	if precision == 0 || precision > geohash.MaxPrecision {
		return nil, fmt.Errorf("index precision %d: %w", precision, geohash.ErrInvalidPrecision)
	}
	idx := &Index{
		technique: technique,
		precision: precision,
		points:    make(map[string]models.Point),
	}
	switch technique {
	case GeohashingTechnique:
		idx.spatial = newPrefixIndex(precision)
	case RTreeTechnique:
		idx.spatial = newRTree(precision)
	case QuadtreeTechnique:
		idx.spatial = newQuadtree(precision)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTechnique, technique)
	}
	return idx, nil
}

func (idx *Index) Technique() GeoIndexingTechnique { return idx.technique }
func (idx *Index) Precision() uint                 { return idx.precision }

// Put stores p, replacing any point with the same ID, and returns it with
// its geohash filled in.
func (idx *Index) Put(p models.Point) (models.Point, error) {
	if p.ID == "" {
		return models.Point{}, fmt.Errorf("%w: empty id", ErrInvalidPoint)
	}
	if !validCoordinate(p.Latitude, 90) || !validCoordinate(p.Longitude, 180) {
		return models.Point{}, fmt.Errorf("%w: (%v, %v) out of range", ErrInvalidPoint, p.Latitude, p.Longitude)
	}
	code, err := geohash.Encode(p.Latitude, p.Longitude, idx.precision)
	if err != nil {
		return models.Point{}, err
	}
	p.Geohash = code

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if old, ok := idx.points[p.ID]; ok {
		idx.spatial.remove(old)
	}
	idx.points[p.ID] = p
	idx.spatial.insert(p)
	metrics.IndexedPoints.Set(float64(len(idx.points)))
	return p, nil
}

func validCoordinate(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

func (idx *Index) Get(id string) (models.Point, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	p, ok := idx.points[id]
	if !ok {
		return models.Point{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return p, nil
}

func (idx *Index) Delete(id string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	p, ok := idx.points[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(idx.points, id)
	idx.spatial.remove(p)
	metrics.IndexedPoints.Set(float64(len(idx.points)))
	return nil
}

func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.points)
}

// Within returns the points whose code shares a cell with any of codes (one
// is a prefix of the other), sorted by ID.
func (idx *Index) Within(codes []string) ([]models.Point, error) {
	for _, c := range codes {
		if err := validQueryCode(c); err != nil {
			return nil, err
		}
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	found := make(map[string]models.Point)
	for _, c := range codes {
		cands, err := idx.spatial.candidates(c)
		if err != nil {
			return nil, err
		}
		for _, p := range cands {
			if geohash.IsIn([]string{p.Geohash}, []string{c})[0] {
				found[p.ID] = p
			}
		}
	}

	out := make([]models.Point, 0, len(found))
	for _, p := range found {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// validQueryCode accepts codes longer than MaxPrecision: they only need to
// share a prefix with a stored code.
func validQueryCode(code string) error {
	if len(code) <= geohash.MaxPrecision {
		return geohash.ValidateCode(code)
	}
	return geohash.ValidateCode(code[:geohash.MaxPrecision])
}
