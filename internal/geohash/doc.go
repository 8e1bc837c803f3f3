// Package geohash encodes latitude/longitude pairs into base32 geohash
// strings and derives the cells around them.
//
// A geohash of precision p carries 5p bits, longitude and latitude
// interleaved starting with longitude. The package exposes:
//
//   - [Encode]: coordinate to hash at a given precision
//   - [DecodeBoundingBox]: hash to the rectangle it denotes
//   - [Neighbors]: the 8 cells around a hash at the same precision
//   - [Offset]: walk an arbitrary number of rows and columns
//
// # Boundaries
//
// Longitude wraps at the antimeridian. Latitude clamps at the poles, so
// the north neighbour of a cell in the top row is the cell itself.
package geohash
