package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"geohash-engine/cache"
	"geohash-engine/geohash"
	"geohash-engine/index"
	"geohash-engine/matching"
	"geohash-engine/metrics"
	"geohash-engine/models"
)

// Handler carries the dependencies of the cover and point endpoints.
// The codec endpoints are plain functions.
type Handler struct {
	Index      *index.Index
	Covers     *cache.CoverCache // nil computes every cover
	MaxCells   uint64
	MaxRetries int
}

type codesResponse struct {
	Codes []string `json:"codes"`
}

type matchesResponse struct {
	Matches []bool `json:"matches"`
}

type circleRequest struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Radius    float64 `json:"radius"`
	Precision uint    `json:"precision"`
	Accuracy  float64 `json:"accuracy,omitempty"` // 0 leaves the cover uncompressed
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		badRequest(w, "Invalid request payload")
		return false
	}
	return true
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Encode handles single coordinate encoding
func Encode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Lat       float64 `json:"lat"`
		Lon       float64 `json:"lon"`
		Precision uint    `json:"precision"`
	}
	if !decode(w, r, &req) {
		return
	}
	code, err := geohash.Encode(req.Lat, req.Lon, req.Precision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": code})
}

// EncodeBatch encodes many coordinates at one precision
func EncodeBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points    []geohash.Point `json:"points"`
		Precision uint            `json:"precision"`
	}
	if !decode(w, r, &req) {
		return
	}
	codes, err := geohash.EncodeAll(req.Points, req.Precision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

// Bounds returns the rectangle and centre of a code
func Bounds(w http.ResponseWriter, r *http.Request) {
	b, err := geohash.Decode(mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	lat, lon := b.Center()
	writeJSON(w, http.StatusOK, struct {
		geohash.Bounds
		Center geohash.Point `json:"center"`
	}{b, geohash.Point{Lat: lat, Lon: lon}})
}

// Neighbors returns a code and its eight surrounding cells
func Neighbors(w http.ResponseWriter, r *http.Request) {
	codes, err := geohash.Neighbors(mux.Vars(r)["code"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

func NeighborsBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Codes []string `json:"codes"`
	}
	if !decode(w, r, &req) {
		return
	}
	codes, err := geohash.ManyNeighbors(req.Codes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

func Compress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Codes    []string `json:"codes"`
		Accuracy float64  `json:"accuracy"`
	}
	if !decode(w, r, &req) {
		return
	}
	codes, err := geohash.Compress(req.Codes, req.Accuracy)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.CellsEmitted.WithLabelValues("compress").Add(float64(len(codes)))
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

func IsIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Points []string `json:"points"`
		Codes  []string `json:"codes"`
	}
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{Matches: geohash.IsIn(req.Points, req.Codes)})
}

// Rect enumerates the cells of a rectangle, compressed when accuracy is set
func (h *Handler) Rect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bounds    geohash.Bounds `json:"bounds"`
		Precision uint           `json:"precision"`
		Accuracy  float64        `json:"accuracy,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	n, err := geohash.RectCount(req.Bounds, req.Precision)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if n > h.MaxCells {
		writeError(w, r, tooManyCells(n, h.MaxCells))
		return
	}
	codes, err := geohash.Rect(req.Bounds, req.Precision)
	if err == nil && req.Accuracy != 0 {
		codes, err = geohash.Compress(codes, req.Accuracy)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	metrics.CellsEmitted.WithLabelValues("rect").Add(float64(len(codes)))
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

// circleCells estimates the size of a circle cover from the centre cell,
// including the padding column and row on each side.
func circleCells(req circleRequest) (uint64, error) {
	code, err := geohash.Encode(req.Lat, req.Lon, req.Precision)
	if err != nil {
		return 0, err
	}
	b, err := geohash.Decode(code)
	if err != nil {
		return 0, err
	}
	width, height := geohash.CellSize(b, req.Lat)
	n := (2*req.Radius/width + 3) * (2*req.Radius/height + 3)
	if math.IsNaN(n) || n > math.MaxUint64/2 {
		return math.MaxUint64, nil
	}
	return uint64(n), nil
}

func (h *Handler) circleCover(w http.ResponseWriter, r *http.Request, req circleRequest) ([]string, bool) {
	if math.IsNaN(req.Radius) || math.IsInf(req.Radius, 0) || req.Radius < 0 {
		writeError(w, r, geohash.ErrInvalidRadius)
		return nil, false
	}
	n, err := circleCells(req)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if n > h.MaxCells {
		writeError(w, r, tooManyCells(n, h.MaxCells))
		return nil, false
	}
	codes, err := h.Covers.Circle(r.Context(), req.Lat, req.Lon, req.Radius, req.Precision, req.Accuracy)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	metrics.CellsEmitted.WithLabelValues("circle").Add(float64(len(codes)))
	return codes, true
}

// Circle returns the cells covering a circle, compressed when accuracy is set
func (h *Handler) Circle(w http.ResponseWriter, r *http.Request) {
	var req circleRequest
	if !decode(w, r, &req) {
		return
	}
	codes, ok := h.circleCover(w, r, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, codesResponse{Codes: codes})
}

func (h *Handler) IsInCircle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		circleRequest
		Points []string `json:"points"`
	}
	if !decode(w, r, &req) {
		return
	}
	codes, ok := h.circleCover(w, r, req.circleRequest)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, matchesResponse{Matches: geohash.IsIn(req.Points, codes)})
}

// InvalidateCovers drops every cached circle cover
func (h *Handler) InvalidateCovers(w http.ResponseWriter, r *http.Request) {
	n, err := h.Covers.Invalidate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// PutPoint stores or moves a point in the index
func (h *Handler) PutPoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Index.Put(models.Point{
		ID:        mux.Vars(r)["id"],
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) GetPoint(w http.ResponseWriter, r *http.Request) {
	p, err := h.Index.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePoint(w http.ResponseWriter, r *http.Request) {
	if err := h.Index.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchPoints returns the stored points inside a circle cover
func (h *Handler) SearchPoints(w http.ResponseWriter, r *http.Request) {
	var req circleRequest
	if !decode(w, r, &req) {
		return
	}
	codes, ok := h.circleCover(w, r, req)
	if !ok {
		return
	}
	points, err := h.Index.Within(codes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.Point{"points": points})
}

// NearestPoint handles ?lat=&lon= lookups of the closest stored point
func (h *Handler) NearestPoint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if err := errors.Join(errLat, errLon); err != nil {
		badRequest(w, "lat and lon query parameters are required")
		return
	}
	m, err := matching.FindNearest(h.Index, lat, lon, h.MaxRetries)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
