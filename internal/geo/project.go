package geo

import "math"

// MaxLat is the Mercator latitude clamp used by slippy-map tiling.
const MaxLat = 85.05112878

// ToPixel linearly maps a geographic coordinate into the pixel space of an
// image covering the bounding box. The stretch is equirectangular, not
// Mercator corrected; at the zoom levels this engine renders the error is
// negligible, but it grows over large latitude spans. Known limitation.
func ToPixel(lat, lon float64, b BoundingBox, width, height int) (int, int) {
	x := (lon - b.MinLon) / b.LonSpan() * float64(width)
	y := (b.MaxLat - lat) / b.LatSpan() * float64(height)
	return int(x), int(y)
}

// LatLonToTile converts a coordinate to slippy-map tile indices at the given
// zoom level.
// http://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
func LatLonToTile(lat, lon float64, zoom int) (int, int) {
	if lat > MaxLat {
		lat = MaxLat
	} else if lat < -MaxLat {
		lat = -MaxLat
	}

	latRad := lat * math.Pi / 180
	n := float64(int64(1) << uint(zoom))

	x := int(math.Floor((lon + 180) / 360 * n))
	y := int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	max := int(n) - 1
	if x < 0 {
		x = 0
	} else if x > max {
		x = max
	}
	if y < 0 {
		y = 0
	} else if y > max {
		y = max
	}
	return x, y
}

// TileToLatLon returns the north-west corner of a tile. The south-east corner
// of tile (x, y) is the north-west corner of tile (x+1, y+1).
func TileToLatLon(x, y, zoom int) (float64, float64) {
	n := float64(int64(1) << uint(zoom))
	lon := float64(x)/n*360 - 180
	latRad := math.Atan(math.Sinh(math.Pi * (1 - 2*float64(y)/n)))
	lat := latRad * 180 / math.Pi
	return lat, lon
}
