// Package tiles retrieves slippy-map tiles from a remote tile server with
// pooling, retries and caching.
package tiles

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/Divyaprada-G/cropmap/internal/geo"
)

// Coordinate identifies a single slippy-map tile.
type Coordinate struct {
	Zoom, X, Y int
}

// Coverage enumerates all tiles intersecting the bounding box at the given
// zoom. When the count exceeds cap the list is truncated to the cap tiles
// nearest the box center, so degraded coverage stays centered on the region
// instead of biasing toward one corner. Truncation is deterministic.
func Coverage(b geo.BoundingBox, zoom, cap int) []Coordinate {
	minX, minY := geo.LatLonToTile(b.MaxLat, b.MinLon, zoom)
	maxX, maxY := geo.LatLonToTile(b.MinLat, b.MaxLon, zoom)

	coords := make([]Coordinate, 0, (maxX-minX+1)*(maxY-minY+1))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			coords = append(coords, Coordinate{Zoom: zoom, X: x, Y: y})
		}
	}

	if cap <= 0 || len(coords) <= cap {
		return coords
	}

	centerLat := (b.MinLat + b.MaxLat) / 2
	centerLon := (b.MinLon + b.MaxLon) / 2
	cx, cy := geo.LatLonToTile(centerLat, centerLon, zoom)

	sort.Slice(coords, func(i, j int) bool {
		di := tileDistSq(coords[i], cx, cy)
		dj := tileDistSq(coords[j], cx, cy)
		if di != dj {
			return di < dj
		}
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	log.Warn().
		Int("zoom", zoom).
		Int("covering", len(coords)).
		Int("cap", cap).
		Msg("Tile coverage exceeds cap, truncating to tiles nearest box center")

	return coords[:cap]
}

func tileDistSq(c Coordinate, cx, cy int) int {
	dx := c.X - cx
	dy := c.Y - cy
	return dx*dx + dy*dy
}
