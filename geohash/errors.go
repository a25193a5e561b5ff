package geohash

import "errors"

var (
	// ErrInvalidSymbol is returned when a code contains a byte outside the base-32 alphabet.
	ErrInvalidSymbol = errors.New("invalid geohash symbol")
	// ErrInvalidPrecision is returned for a precision (or code length) outside [1, MaxPrecision].
	ErrInvalidPrecision = errors.New("invalid geohash precision")
	ErrInvalidBounds    = errors.New("invalid bounds")
	ErrInvalidRadius    = errors.New("invalid radius")
	ErrInvalidAccuracy  = errors.New("invalid accuracy")
)
