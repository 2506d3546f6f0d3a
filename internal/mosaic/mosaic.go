// Package mosaic stitches fetched map tiles into one georeferenced raster
// and crops it to an exact viewport.
package mosaic

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/Divyaprada-G/cropmap/internal/geo"
	"github.com/Divyaprada-G/cropmap/internal/tiles"
)

var neutralGray = color.RGBA{200, 200, 200, 255}

// Mosaic is a rectangular grid of adjacent tiles stitched into one raster.
// MinX and MinY are the grid origin in tile units at Zoom.
type Mosaic struct {
	Image    *image.RGBA
	Zoom     int
	MinX     int
	MinY     int
	TileSize int
}

// Assemble lays out fetched tiles by their offset from the minimum tile
// coordinate present. Cells without real pixels stay neutral gray. Returns
// nil when no tiles were given.
func Assemble(fetched map[tiles.Coordinate]tiles.Tile, zoom, tileSize int) *Mosaic {
	if len(fetched) == 0 {
		return nil
	}

	first := true
	var minX, maxX, minY, maxY int
	for c := range fetched {
		if first {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			first = false
			continue
		}
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	gridW := (maxX - minX + 1) * tileSize
	gridH := (maxY - minY + 1) * tileSize
	raster := Placeholder(gridW, gridH)

	for c, tile := range fetched {
		if tile.Placeholder || tile.Image == nil {
			continue
		}
		xOffset := (c.X - minX) * tileSize
		yOffset := (c.Y - minY) * tileSize
		rect := image.Rect(xOffset, yOffset, xOffset+tileSize, yOffset+tileSize)
		draw.Draw(raster, rect, tile.Image, tile.Image.Bounds().Min, draw.Src)
	}

	return &Mosaic{
		Image:    raster,
		Zoom:     zoom,
		MinX:     minX,
		MinY:     minY,
		TileSize: tileSize,
	}
}

// CropAndResize maps the bounding box into mosaic pixel space using the
// grid's geographic corners, crops to it and resizes bilinearly to exactly
// width x height. A degenerate crop after clamping falls back to the full
// mosaic.
func (m *Mosaic) CropAndResize(b geo.BoundingBox, width, height int) *image.RGBA {
	bounds := m.Image.Bounds()
	gridW := bounds.Dx()
	gridH := bounds.Dy()

	cols := gridW / m.TileSize
	rows := gridH / m.TileSize

	nwLat, nwLon := geo.TileToLatLon(m.MinX, m.MinY, m.Zoom)
	seLat, seLon := geo.TileToLatLon(m.MinX+cols, m.MinY+rows, m.Zoom)

	lonRange := seLon - nwLon
	latRange := nwLat - seLat

	x1 := clamp(int((b.MinLon-nwLon)/lonRange*float64(gridW)), 0, gridW)
	y1 := clamp(int((nwLat-b.MaxLat)/latRange*float64(gridH)), 0, gridH)
	x2 := clamp(int((b.MaxLon-nwLon)/lonRange*float64(gridW)), 0, gridW)
	y2 := clamp(int((nwLat-b.MinLat)/latRange*float64(gridH)), 0, gridH)

	src := image.Image(m.Image)
	if x2 > x1 && y2 > y1 {
		src = m.Image.SubImage(image.Rect(x1, y1, x2, y2))
	}

	if sb := src.Bounds(); sb.Dx() == width && sb.Dy() == height {
		out := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(out, out.Bounds(), src, sb.Min, draw.Src)
		return out
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
	return out
}

// Placeholder returns a flat neutral-gray raster. It is the base image when
// no tiles could be obtained at all.
func Placeholder(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: neutralGray}, image.Point{}, draw.Src)
	return img
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
