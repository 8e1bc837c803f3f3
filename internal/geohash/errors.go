package geohash

import "errors"

var (
	// ErrInvalidGeohash indicates an empty string, an over-long string, or
	// a byte outside the base32 geohash alphabet.
	ErrInvalidGeohash = errors.New("geohash: invalid geohash")

	// ErrInvalidPrecision indicates a precision outside [1, MaxPrecision].
	ErrInvalidPrecision = errors.New("geohash: invalid precision")

	// ErrInvalidCoordinate indicates a latitude outside [-90, 90] or a
	// longitude outside [-180, 180].
	ErrInvalidCoordinate = errors.New("geohash: invalid coordinate")
)
