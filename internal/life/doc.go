// Package life advances a sparse set of live geohash cells by one
// generation of Conway's Game of Life (B3/S23).
//
// Adjacency comes from [geohash.Neighbors]: the grid is whatever tiling the
// geohash cells form at the precision of the input, so cells are not square.
// A cell always has 8 neighbour slots. In the polar rows some slots repeat
// a cell or hold the cell itself, and each slot is counted.
//
// [Step] is pure: it never mutates its input and keeps no state between
// calls, so it is safe to call from any goroutine.
package life
