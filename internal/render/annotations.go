package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Divyaprada-G/cropmap/internal/geo"
)

const (
	defaultPolygonColor = "#00FF00"
	polygonFillAlpha    = 100
	polygonStrokeAlpha  = 180
	polygonStrokeWidth  = 2
	boundaryStrokeWidth = 4
	labelFontSize       = 24
	markerRadius        = 8
	labelPadding        = 4
)

var (
	boundaryColor   = color.NRGBA{255, 0, 0, 255}
	markerFill      = color.NRGBA{255, 0, 0, 255}
	markerRing      = color.NRGBA{255, 255, 255, 255}
	labelPlateColor = color.NRGBA{255, 255, 255, 220}
	labelTextColor  = color.NRGBA{0, 0, 0, 255}
)

// drawPolygons fills and strokes each classification polygon on the overlay.
// Features that are not polygons, or that project to fewer than three
// points, are skipped.
func drawPolygons(dst *image.RGBA, fc geo.FeatureCollection, b geo.BoundingBox, width, height int) {
	for _, feature := range fc.Features {
		if feature.Geometry.Type != "Polygon" || len(feature.Geometry.Coordinates) == 0 {
			continue
		}

		ring := feature.Geometry.Coordinates[0]
		pts := make([]image.Point, 0, len(ring))
		for _, lonLat := range ring {
			x, y := geo.ToPixel(lonLat[1], lonLat[0], b, width, height)
			pts = append(pts, image.Pt(x, y))
		}
		if len(pts) < 3 {
			continue
		}

		rgb, err := parseHexColor(feature.ColorHex(defaultPolygonColor))
		if err != nil {
			log.Debug().Err(err).Msg("Polygon color unparseable, using default")
			rgb, _ = parseHexColor(defaultPolygonColor)
		}

		fillPolygon(dst, pts, withAlpha(rgb, polygonFillAlpha))
		strokePolygon(dst, pts, polygonStrokeWidth, withAlpha(rgb, polygonStrokeAlpha))
	}
}

// drawBoundary strokes the analyzed region's bounding box as a closed
// high-contrast outline.
func drawBoundary(dst *image.RGBA, b geo.BoundingBox, width, height int) {
	corners := [][2]float64{
		{b.MinLon, b.MaxLat},
		{b.MaxLon, b.MaxLat},
		{b.MaxLon, b.MinLat},
		{b.MinLon, b.MinLat},
	}

	pts := make([]image.Point, 0, len(corners))
	for _, c := range corners {
		x, y := geo.ToPixel(c[1], c[0], b, width, height)
		pts = append(pts, image.Pt(x, y))
	}
	strokePolygon(dst, pts, boundaryStrokeWidth, boundaryColor)
}

// drawLabels places a marker disc and a plated text label for each named
// location. Items missing either coordinate are skipped.
func drawLabels(dst *image.RGBA, labels []PointLabel, b geo.BoundingBox, width, height int, fonts *Fonts) {
	face := fonts.Face(labelFontSize, true)

	for _, l := range labels {
		if l.Lat == nil || l.Lng == nil {
			log.Debug().Str("name", l.Name).Msg("Location label missing coordinates, skipping")
			continue
		}

		x, y := geo.ToPixel(*l.Lat, *l.Lng, b, width, height)

		fillDisc(dst, x, y, markerRadius+2, markerRing)
		fillDisc(dst, x, y, markerRadius, markerFill)

		if l.Name == "" {
			continue
		}

		textWidth := font.MeasureString(face, l.Name).Ceil()
		metrics := face.Metrics()
		textHeight := (metrics.Ascent + metrics.Descent).Ceil()

		labelX := x + markerRadius + 4
		labelY := y - textHeight/2

		plate := image.Rect(
			labelX-labelPadding, labelY-labelPadding,
			labelX+textWidth+labelPadding, labelY+textHeight+labelPadding,
		)
		fillRect(dst, plate, labelPlateColor)
		strokeRect(dst, plate, labelTextColor, 1)

		drawText(dst, l.Name, labelX, labelY+metrics.Ascent.Ceil(), labelTextColor, face)
	}
}

// fillPolygon rasterizes a filled polygon with antialiased coverage.
func fillPolygon(dst *image.RGBA, pts []image.Point, c color.NRGBA) {
	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over

	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(dst, bounds, image.NewUniform(c), image.Point{})
}

// strokePolygon draws the closed outline of a polygon edge by edge.
func strokePolygon(dst *image.RGBA, pts []image.Point, width float64, c color.NRGBA) {
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		strokeLine(dst, pts[i], next, width, c)
	}
}

// strokeLine rasterizes one thick line segment as a quad.
func strokeLine(dst *image.RGBA, p1, p2 image.Point, width float64, c color.NRGBA) {
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}

	// Unit normal scaled to half the stroke width.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over

	r.MoveTo(float32(float64(p1.X)+nx), float32(float64(p1.Y)+ny))
	r.LineTo(float32(float64(p2.X)+nx), float32(float64(p2.Y)+ny))
	r.LineTo(float32(float64(p2.X)-nx), float32(float64(p2.Y)-ny))
	r.LineTo(float32(float64(p1.X)-nx), float32(float64(p1.Y)-ny))
	r.ClosePath()
	r.Draw(dst, bounds, image.NewUniform(c), image.Point{})
}

func fillDisc(dst *image.RGBA, cx, cy, radius int, c color.NRGBA) {
	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over

	// Circle from four cubic arcs.
	const k = 0.5523 // kappa for cubic circle approximation
	fr := float32(radius)
	fx := float32(cx)
	fy := float32(cy)
	kr := fr * k

	r.MoveTo(fx+fr, fy)
	r.CubeTo(fx+fr, fy+kr, fx+kr, fy+fr, fx, fy+fr)
	r.CubeTo(fx-kr, fy+fr, fx-fr, fy+kr, fx-fr, fy)
	r.CubeTo(fx-fr, fy-kr, fx-kr, fy-fr, fx, fy-fr)
	r.CubeTo(fx+kr, fy-fr, fx+fr, fy-kr, fx+fr, fy)
	r.ClosePath()
	r.Draw(dst, bounds, image.NewUniform(c), image.Point{})
}

func fillRect(dst draw.Image, rect image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, rect, &image.Uniform{C: c}, image.Point{}, draw.Over)
}

func strokeRect(dst draw.Image, rect image.Rectangle, c color.NRGBA, width int) {
	if width <= 0 {
		width = 1
	}
	for i := 0; i < width; i++ {
		top := image.Rect(rect.Min.X+i, rect.Min.Y+i, rect.Max.X-i, rect.Min.Y+i+1)
		bottom := image.Rect(rect.Min.X+i, rect.Max.Y-i-1, rect.Max.X-i, rect.Max.Y-i)
		left := image.Rect(rect.Min.X+i, rect.Min.Y+i, rect.Min.X+i+1, rect.Max.Y-i)
		right := image.Rect(rect.Max.X-i-1, rect.Min.Y+i, rect.Max.X-i, rect.Max.Y-i)
		for _, side := range []image.Rectangle{top, bottom, left, right} {
			draw.Draw(dst, side, &image.Uniform{C: c}, image.Point{}, draw.Over)
		}
	}
}

func drawText(dst draw.Image, text string, x, y int, c color.NRGBA, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
