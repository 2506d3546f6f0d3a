// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	"fmt"
	"math"
)

// ErrInvalidBounds is returned when a bounding box cannot be used for
// projection math. It is the only caller-fatal condition in the engine.
var ErrInvalidBounds = fmt.Errorf("invalid bounding box")

// BoundingBox is a geographic rectangle in WGS84 degrees.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// NewBoundingBox builds a box from the [minLat, minLon, maxLat, maxLon]
// ordering used by render requests.
func NewBoundingBox(bounds [4]float64) BoundingBox {
	return BoundingBox{
		MinLat: bounds[0],
		MinLon: bounds[1],
		MaxLat: bounds[2],
		MaxLon: bounds[3],
	}
}

// Validate checks that the box is usable for projection: all values finite,
// minimums strictly below maximums.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.MinLat, b.MinLon, b.MaxLat, b.MaxLon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate %v", ErrInvalidBounds, v)
		}
	}
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("%w: min_lat %v >= max_lat %v", ErrInvalidBounds, b.MinLat, b.MaxLat)
	}
	if b.MinLon >= b.MaxLon {
		return fmt.Errorf("%w: min_lon %v >= max_lon %v", ErrInvalidBounds, b.MinLon, b.MaxLon)
	}
	return nil
}

// LatSpan returns the latitude extent in degrees.
func (b BoundingBox) LatSpan() float64 { return b.MaxLat - b.MinLat }

// LonSpan returns the longitude extent in degrees.
func (b BoundingBox) LonSpan() float64 { return b.MaxLon - b.MinLon }

// AreaHectares estimates the covered area using the flat-earth approximation
// of 111 km per degree on both axes.
func (b BoundingBox) AreaHectares() float64 {
	return b.LatSpan() * b.LonSpan() * 111 * 111 * 100
}

// String renders the box in request ordering. The exact format matters: it
// seeds the deterministic overlay simulation.
func (b BoundingBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
}

// OutlineFeature returns the box as a closed GeoJSON polygon feature.
func (b BoundingBox) OutlineFeature() Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type: "Polygon",
			Coordinates: [][][2]float64{{
				{b.MinLon, b.MinLat},
				{b.MaxLon, b.MinLat},
				{b.MaxLon, b.MaxLat},
				{b.MinLon, b.MaxLat},
				{b.MinLon, b.MinLat},
			}},
		},
		Properties: map[string]interface{}{},
	}
}
