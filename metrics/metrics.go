package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geohash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geohash",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	// CellsEmitted counts codes produced by cover operations.
	CellsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geohash",
		Subsystem: "cover",
		Name:      "cells_emitted_total",
		Help:      "Total cells returned by rect, circle and compress",
	}, []string{"op"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geohash",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cover cache hits",
	}, []string{"kind"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geohash",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cover cache misses",
	}, []string{"kind"})

	IndexedPoints = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "geohash",
		Subsystem: "index",
		Name:      "points",
		Help:      "Points currently held by the point index",
	})
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency per route template, so
// /codes/{code}/bounds is one series regardless of the code requested.
// It must be installed with (*mux.Router).Use, which runs it for matched
// routes only.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route, _ := mux.CurrentRoute(r).GetPathTemplate()
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
