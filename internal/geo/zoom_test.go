package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectZoomFits(t *testing.T) {
	b := NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	zoom := SelectZoom(b, 2048, 1536, 256, 18)

	assert.GreaterOrEqual(t, zoom, 1)
	assert.LessOrEqual(t, zoom, 18)

	// The selected zoom fits the target dimensions and the next one up does
	// not (otherwise it would have been selected).
	assert.True(t, footprintFits(b, zoom, 2048, 1536, 256))
	if zoom < 18 {
		assert.False(t, footprintFits(b, zoom+1, 2048, 1536, 256))
	}
}

func TestSelectZoomSmallTarget(t *testing.T) {
	b := NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	small := SelectZoom(b, 256, 256, 256, 18)
	large := SelectZoom(b, 4096, 4096, 256, 18)
	assert.Less(t, small, large)
}

func TestSelectZoomFallback(t *testing.T) {
	// A near-global box cannot fit a 1x1 pixel target at any zoom.
	b := NewBoundingBox([4]float64{-80, -179, 80, 179})
	assert.Equal(t, FallbackZoom, SelectZoom(b, 1, 1, 256, 18))
}

func footprintFits(b BoundingBox, zoom, w, h, tileSize int) bool {
	n := float64(int64(1) << uint(zoom))
	tilesX := b.LonSpan() / (360 / n)
	tilesY := b.LatSpan() / (180 / n)
	return tilesX*float64(tileSize) <= float64(w) && tilesY*float64(tileSize) <= float64(h)
}
