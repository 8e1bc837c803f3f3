package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/life"
)

// LiveSetToSVG draws every live cell as a rectangle in a plain
// equirectangular frame fitted around the cells.
func LiveSetToSVG(live life.LiveSet, width int, fillColor string) (string, error) {
	if live.Len() == 0 {
		return "", nil
	}

	hashes := live.Sorted()
	boxes := make([]geohash.BoundingBox, 0, len(hashes))
	for _, h := range hashes {
		box, err := geohash.DecodeBoundingBox(h)
		if err != nil {
			return "", err
		}
		boxes = append(boxes, box)
	}

	// Find bounds
	minLng, maxLng := boxes[0].MinLng, boxes[0].MaxLng
	minLat, maxLat := boxes[0].MinLat, boxes[0].MaxLat
	for _, b := range boxes {
		minLng = min(minLng, b.MinLng)
		maxLng = max(maxLng, b.MaxLng)
		minLat = min(minLat, b.MinLat)
		maxLat = max(maxLat, b.MaxLat)
	}

	// one cell of padding on every side
	padLng := boxes[0].MaxLng - boxes[0].MinLng
	padLat := boxes[0].MaxLat - boxes[0].MinLat
	minLng -= padLng
	maxLng += padLng
	minLat -= padLat
	maxLat += padLat

	scale := float64(width) / (maxLng - minLng)
	height := int((maxLat - minLat) * scale)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s" stroke="#444466" stroke-width="0.5">
`, width, height, width, height, fillColor))

	for i, b := range boxes {
		x := (b.MinLng - minLng) * scale
		y := (maxLat - b.MaxLat) * scale
		w := (b.MaxLng - b.MinLng) * scale
		h := (b.MaxLat - b.MinLat) * scale
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%s</title></rect>
`, x, y, w, h, hashes[i]))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String(), nil
}
