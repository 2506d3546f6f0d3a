package geo

// FallbackZoom is used when no zoom level down to 1 fits the target raster.
const FallbackZoom = 10

// SelectZoom picks the highest zoom level, scanning down from maxZoom, whose
// tile-grid footprint over the box still fits within the target pixel size.
// The per-zoom spans are the simple power-of-two fractions of the world, the
// same heuristic the tile cap budget is tuned against.
func SelectZoom(b BoundingBox, targetWidth, targetHeight, tileSize, maxZoom int) int {
	latDiff := b.LatSpan()
	lonDiff := b.LonSpan()

	for zoom := maxZoom; zoom >= 1; zoom-- {
		n := float64(int64(1) << uint(zoom))
		latSpan := 180 / n
		lonSpan := 360 / n

		tilesX := lonDiff / lonSpan
		tilesY := latDiff / latSpan

		if tilesX*float64(tileSize) <= float64(targetWidth) && tilesY*float64(tileSize) <= float64(targetHeight) {
			return zoom
		}
	}
	return FallbackZoom
}
