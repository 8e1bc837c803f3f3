package geohash

import (
	"math"

	gh "github.com/TomiHiltunen/geohash-golang"
	"github.com/pkg/errors"
)

const (
	// MaxPrecision is the longest hash the codec accepts. 60 interleaved
	// bits fit a uint64 and are already finer than float64 resolves.
	MaxPrecision = 12

	MinLat = -90.0
	MaxLat = 90.0
	MinLng = -180.0
	MaxLng = 180.0

	alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"
)

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

// BoundingBox is the rectangle a geohash denotes.
type BoundingBox struct {
	MinLat, MinLng float64
	MaxLat, MaxLng float64
}

// Contains reports whether the point lies in the box, edges included.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

func (b BoundingBox) Center() (lat, lng float64) {
	return (b.MinLat + b.MaxLat) / 2, (b.MinLng + b.MaxLng) / 2
}

// Direction names one of the 8 cells around a geohash.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists every direction in NeighborSet order.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var (
	directionNames = [8]string{"n", "ne", "e", "se", "s", "sw", "w", "nw"}
	// row and column deltas; rows grow northwards, columns eastwards
	directionDeltas = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
)

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "unknown"
	}
	return directionNames[d]
}

// NeighborSet holds the 8 adjacent hashes indexed by Direction.
type NeighborSet [8]string

func (n NeighborSet) Get(d Direction) string { return n[d] }

// cell is a geohash split into its latitude row and longitude column.
// Neighbors and Offset move on it so rows can clamp at the poles; the
// base32 adjacency tables of the classic algorithm carry a top-row move
// into the parent hash instead.
type cell struct {
	lat, lng         uint64
	latBits, lngBits uint
	precision        int
}

func parse(hash string) (cell, error) {
	if hash == "" {
		return cell{}, errors.Wrap(ErrInvalidGeohash, "empty string")
	}
	if len(hash) > MaxPrecision {
		return cell{}, errors.Wrapf(ErrInvalidGeohash, "%q is longer than %d characters", hash, MaxPrecision)
	}

	c := cell{precision: len(hash)}
	even := true
	for i := 0; i < len(hash); i++ {
		v := decodeTable[hash[i]]
		if v < 0 {
			return cell{}, errors.Wrapf(ErrInvalidGeohash, "%q: character %q at offset %d", hash, hash[i], i)
		}
		for b := 4; b >= 0; b-- {
			bit := uint64(v>>uint(b)) & 1
			if even {
				c.lng = c.lng<<1 | bit
				c.lngBits++
			} else {
				c.lat = c.lat<<1 | bit
				c.latBits++
			}
			even = !even
		}
	}
	return c, nil
}

func (c cell) String() string {
	buf := make([]byte, c.precision)
	latPos, lngPos := c.latBits, c.lngBits
	even := true
	for i := range buf {
		var v byte
		for b := 0; b < 5; b++ {
			var bit uint64
			if even {
				lngPos--
				bit = (c.lng >> lngPos) & 1
			} else {
				latPos--
				bit = (c.lat >> latPos) & 1
			}
			v = v<<1 | byte(bit)
			even = !even
		}
		buf[i] = alphabet[v]
	}
	return string(buf)
}

// move shifts the cell by whole rows and columns, clamping rows at the
// poles and wrapping columns at the antimeridian.
func (c cell) move(dLat, dLng int) cell {
	rows := int64(1) << c.latBits
	cols := int64(1) << c.lngBits

	lat := int64(c.lat) + int64(dLat)
	lat = max(0, min(rows-1, lat))

	lng := (int64(c.lng) + int64(dLng)) % cols
	if lng < 0 {
		lng += cols
	}

	c.lat, c.lng = uint64(lat), uint64(lng)
	return c
}

func checkPrecision(precision int) error {
	if precision <= 0 || precision > MaxPrecision {
		return errors.Wrapf(ErrInvalidPrecision, "precision %d not in [1, %d]", precision, MaxPrecision)
	}
	return nil
}

func checkCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || lat < MinLat || lat > MaxLat {
		return errors.Wrapf(ErrInvalidCoordinate, "latitude %v", lat)
	}
	if math.IsNaN(lng) || lng < MinLng || lng > MaxLng {
		return errors.Wrapf(ErrInvalidCoordinate, "longitude %v", lng)
	}
	return nil
}

// Encode returns the geohash of the given precision containing (lat, lng).
// A coordinate on a bisection midpoint falls into the southern or western
// half, as in the classic geohash.js encoder.
func Encode(lat, lng float64, precision int) (string, error) {
	if err := checkPrecision(precision); err != nil {
		return "", err
	}
	if err := checkCoordinate(lat, lng); err != nil {
		return "", err
	}
	return gh.EncodeWithPrecision(lat, lng, precision), nil
}

// DecodeBoundingBox returns the rectangle denoted by hash.
func DecodeBoundingBox(hash string) (BoundingBox, error) {
	if _, err := parse(hash); err != nil {
		return BoundingBox{}, err
	}
	b := gh.Decode(hash)
	sw, ne := b.SouthWest(), b.NorthEast()
	return BoundingBox{
		MinLat: sw.Lat(),
		MinLng: sw.Lng(),
		MaxLat: ne.Lat(),
		MaxLng: ne.Lng(),
	}, nil
}

// Neighbors returns the 8 cells adjacent to hash at the same precision.
// At the poles the northern (or southern) entries repeat the row of hash
// itself, so N is hash and NE/NW equal E/W.
func Neighbors(hash string) (NeighborSet, error) {
	var ns NeighborSet
	c, err := parse(hash)
	if err != nil {
		return ns, err
	}
	for _, d := range Directions {
		delta := directionDeltas[d]
		ns[d] = c.move(delta[0], delta[1]).String()
	}
	return ns, nil
}

// Adjacent returns the single neighbour of hash in direction d.
func Adjacent(hash string, d Direction) (string, error) {
	if d < North || d > NorthWest {
		return "", errors.Errorf("geohash: unknown direction %d", int(d))
	}
	delta := directionDeltas[d]
	return Offset(hash, delta[0], delta[1])
}

// Offset moves dLat rows north (negative: south) and dLng columns east
// (negative: west) of hash. Rows stop at the poles, columns wrap.
func Offset(hash string, dLat, dLng int) (string, error) {
	c, err := parse(hash)
	if err != nil {
		return "", err
	}
	return c.move(dLat, dLng).String(), nil
}

// Valid reports whether hash decodes.
func Valid(hash string) bool {
	_, err := parse(hash)
	return err == nil
}

// Precision returns the precision of a valid hash.
func Precision(hash string) (int, error) {
	if _, err := parse(hash); err != nil {
		return 0, err
	}
	return len(hash), nil
}

// CellSize returns the height and width in degrees of a cell at precision.
func CellSize(precision int) (latDeg, lngDeg float64, err error) {
	if err := checkPrecision(precision); err != nil {
		return 0, 0, err
	}
	bits := uint(precision * 5)
	latBits, lngBits := bits/2, bits-bits/2
	return (MaxLat - MinLat) / float64(uint64(1)<<latBits), (MaxLng - MinLng) / float64(uint64(1)<<lngBits), nil
}
