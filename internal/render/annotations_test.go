package render

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divyaprada-G/cropmap/internal/geo"
)

func overlayFor(t *testing.T, features ...geo.Feature) *image.RGBA {
	t.Helper()
	b := geo.NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	overlay := image.NewRGBA(image.Rect(0, 0, 400, 300))
	drawPolygons(overlay, geo.FeatureCollection{Type: "FeatureCollection", Features: features}, b, 400, 300)
	return overlay
}

func polygonFeature(color string, ring ...[2]float64) geo.Feature {
	return geo.Feature{
		Type: "Feature",
		Geometry: geo.Geometry{
			Type:        "Polygon",
			Coordinates: [][][2]float64{ring},
		},
		Properties: map[string]interface{}{"color": color},
	}
}

func countOpaque(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			n++
		}
	}
	return n
}

func TestDrawPolygonsFillsTriangle(t *testing.T) {
	overlay := overlayFor(t, polygonFeature("#2ECC71",
		[2]float64{77.02, 12.92}, [2]float64{77.08, 12.92}, [2]float64{77.05, 12.98}))

	assert.Greater(t, countOpaque(overlay), 100, "a >=3 point polygon must produce a visible fill")
}

func TestDrawPolygonsSkipsDegenerate(t *testing.T) {
	// Two points are never rendered.
	overlay := overlayFor(t, polygonFeature("#2ECC71",
		[2]float64{77.02, 12.92}, [2]float64{77.08, 12.98}))
	assert.Zero(t, countOpaque(overlay))

	// Non-polygon geometries are ignored too.
	overlay = overlayFor(t, geo.Feature{
		Type:     "Feature",
		Geometry: geo.Geometry{Type: "Point"},
	})
	assert.Zero(t, countOpaque(overlay))
}

func TestDrawPolygonsBadColorFallsBack(t *testing.T) {
	overlay := overlayFor(t, polygonFeature("not-a-color",
		[2]float64{77.02, 12.92}, [2]float64{77.08, 12.92}, [2]float64{77.05, 12.98}))
	assert.Greater(t, countOpaque(overlay), 100)
}

func TestDrawBoundaryFramesViewport(t *testing.T) {
	b := geo.NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	overlay := image.NewRGBA(image.Rect(0, 0, 400, 300))
	drawBoundary(overlay, b, 400, 300)

	// The top edge carries the stroke, the center does not.
	_, _, _, a := overlay.At(200, 1).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = overlay.At(200, 150).RGBA()
	assert.Zero(t, a)
}

func TestDrawLabelsSkipsMissingCoordinates(t *testing.T) {
	b := geo.NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	fonts := NewFonts("", "")

	lat := 12.95
	overlay := image.NewRGBA(image.Rect(0, 0, 400, 300))
	drawLabels(overlay, []PointLabel{{Lat: &lat, Name: "nowhere"}}, b, 400, 300, fonts)
	assert.Zero(t, countOpaque(overlay))

	lng := 77.05
	drawLabels(overlay, []PointLabel{{Lat: &lat, Lng: &lng, Name: "somewhere"}}, b, 400, 300, fonts)
	require.NotZero(t, countOpaque(overlay))

	// Marker disc center is the projected point.
	r, g, _, _ := overlay.At(200, 150).RGBA()
	assert.EqualValues(t, 255, r>>8)
	assert.EqualValues(t, 0, g>>8)
}

func TestFontsFallback(t *testing.T) {
	// A missing preferred font file must not break face resolution.
	fonts := NewFonts("/nonexistent/font.ttf", "/nonexistent/bold.ttf")
	face := fonts.Face(24, true)
	require.NotNil(t, face)

	// Faces are cached per size/weight.
	assert.Equal(t, face, fonts.Face(24, true))
}

func TestDrawLegendRows(t *testing.T) {
	fonts := NewFonts("", "")
	img := image.NewRGBA(image.Rect(0, 0, 1024, 768+LegendHeight))

	stats := []AreaStat{
		{CropName: "Rice", Color: "#2ECC71", Percentage: 40, AreaHectares: 500},
		{CropName: "Wheat", Color: "#F1C40F", Percentage: 60, AreaHectares: 700},
	}
	drawLegend(img, stats, 768, fonts)

	// Rows are ordered by area descending, so Wheat's swatch comes first.
	r, g, b, _ := img.At(30, 768+20+35+10).RGBA()
	assert.EqualValues(t, 0xF1, r>>8)
	assert.EqualValues(t, 0xC4, g>>8)
	assert.EqualValues(t, 0x0F, b>>8)

	// Second column holds Rice.
	itemWidth := (1024 - 40) / 3
	r, g, b, _ = img.At(20+itemWidth+10, 768+20+35+10).RGBA()
	assert.EqualValues(t, 0x2E, r>>8)
	assert.EqualValues(t, 0xCC, g>>8)
	assert.EqualValues(t, 0x71, b>>8)
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "1234", trimFloat(1234))
	assert.Equal(t, "100", trimFloat(100.0))
	assert.Equal(t, "12.3", trimFloat(12.3))
}
