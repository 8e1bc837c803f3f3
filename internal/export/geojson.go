package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/life"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   Geometry          `json:"geometry"`
	Properties map[string]string `json:"properties"`
}

type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// Cells builds one polygon per live cell, ordered by geohash. Rings are
// counter clockwise and closed, positions are [lng, lat].
func Cells(live life.LiveSet) (*FeatureCollection, error) {
	fc := &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, live.Len())}
	for _, h := range live.Sorted() {
		b, err := geohash.DecodeBoundingBox(h)
		if err != nil {
			return nil, err
		}
		ring := [][2]float64{
			{b.MinLng, b.MinLat},
			{b.MaxLng, b.MinLat},
			{b.MaxLng, b.MaxLat},
			{b.MinLng, b.MaxLat},
			{b.MinLng, b.MinLat},
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Polygon", Coordinates: [][][2]float64{ring}},
			Properties: map[string]string{"geohash": h},
		})
	}
	return fc, nil
}

// GeoJSON writes the live set as an indented FeatureCollection.
func GeoJSON(w io.Writer, live life.LiveSet) error {
	fc, err := Cells(live)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
