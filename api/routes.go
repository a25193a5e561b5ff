package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"geohash-engine/metrics"
)

func RegisterRoutes(h *Handler) http.Handler {
	router := mux.NewRouter()
	router.Use(metrics.Middleware)

	router.HandleFunc("/health", Health).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Codec endpoints
	router.HandleFunc("/encode", Encode).Methods("POST")
	router.HandleFunc("/encode/batch", EncodeBatch).Methods("POST")
	router.HandleFunc("/codes/{code}/bounds", Bounds).Methods("GET")
	router.HandleFunc("/codes/{code}/neighbors", Neighbors).Methods("GET")
	router.HandleFunc("/neighbors/batch", NeighborsBatch).Methods("POST")

	// Cover endpoints
	router.HandleFunc("/rect", h.Rect).Methods("POST")
	router.HandleFunc("/circle", h.Circle).Methods("POST")
	router.HandleFunc("/compress", Compress).Methods("POST")
	router.HandleFunc("/isin", IsIn).Methods("POST")
	router.HandleFunc("/isin/circle", h.IsInCircle).Methods("POST")
	router.HandleFunc("/cache/covers", h.InvalidateCovers).Methods("DELETE")

	// Point index endpoints
	router.HandleFunc("/points/search", h.SearchPoints).Methods("POST")
	router.HandleFunc("/points/nearest", h.NearestPoint).Methods("GET")
	router.HandleFunc("/points/{id}", h.PutPoint).Methods("PUT")
	router.HandleFunc("/points/{id}", h.GetPoint).Methods("GET")
	router.HandleFunc("/points/{id}", h.DeletePoint).Methods("DELETE")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return loggingMiddleware(cors(router))
}
