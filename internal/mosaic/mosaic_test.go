package mosaic

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Divyaprada-G/cropmap/internal/geo"
	"github.com/Divyaprada-G/cropmap/internal/tiles"
)

func solidTile(size int, c color.RGBA) tiles.Tile {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return tiles.Tile{Image: img}
}

func TestAssembleGridDimensions(t *testing.T) {
	green := color.RGBA{0, 180, 0, 255}
	fetched := map[tiles.Coordinate]tiles.Tile{
		{Zoom: 13, X: 10, Y: 20}: solidTile(256, green),
		{Zoom: 13, X: 11, Y: 20}: solidTile(256, green),
		{Zoom: 13, X: 10, Y: 21}: solidTile(256, green),
		{Zoom: 13, X: 11, Y: 21}: solidTile(256, green),
	}

	m := Assemble(fetched, 13, 256)
	require.NotNil(t, m)
	assert.Equal(t, 512, m.Image.Bounds().Dx())
	assert.Equal(t, 512, m.Image.Bounds().Dy())
	assert.Equal(t, 10, m.MinX)
	assert.Equal(t, 20, m.MinY)

	// Second tile column starts at pixel 256.
	r, g, _, _ := m.Image.At(300, 10).RGBA()
	assert.EqualValues(t, 0, r>>8)
	assert.EqualValues(t, 180, g>>8)
}

func TestAssemblePlaceholderCellsStayGray(t *testing.T) {
	fetched := map[tiles.Coordinate]tiles.Tile{
		{Zoom: 13, X: 0, Y: 0}: solidTile(256, color.RGBA{0, 0, 255, 255}),
		{Zoom: 13, X: 1, Y: 0}: {Placeholder: true},
	}

	m := Assemble(fetched, 13, 256)
	require.NotNil(t, m)

	r, g, b, _ := m.Image.At(400, 100).RGBA()
	assert.EqualValues(t, 200, r>>8)
	assert.EqualValues(t, 200, g>>8)
	assert.EqualValues(t, 200, b>>8)
}

func TestAssembleEmpty(t *testing.T) {
	assert.Nil(t, Assemble(nil, 13, 256))
}

func TestCropAndResizeExactSize(t *testing.T) {
	fetched := make(map[tiles.Coordinate]tiles.Tile)
	b := geo.NewBoundingBox([4]float64{12.9, 77.0, 13.0, 77.1})
	for _, c := range tiles.Coverage(b, 13, 50) {
		fetched[c] = solidTile(256, color.RGBA{90, 90, 90, 255})
	}

	m := Assemble(fetched, 13, 256)
	require.NotNil(t, m)

	out := m.CropAndResize(b, 1024, 768)
	assert.Equal(t, 1024, out.Bounds().Dx())
	assert.Equal(t, 768, out.Bounds().Dy())
}

func TestCropAndResizeDegenerateFallsBack(t *testing.T) {
	fetched := map[tiles.Coordinate]tiles.Tile{
		{Zoom: 13, X: 5851, Y: 3328}: solidTile(256, color.RGBA{50, 50, 50, 255}),
	}
	m := Assemble(fetched, 13, 256)
	require.NotNil(t, m)

	// A box entirely outside the mosaic clamps to a zero-area crop; the
	// full mosaic is used instead and the output still has the target size.
	outside := geo.NewBoundingBox([4]float64{-10.0, -30.0, -9.9, -29.9})
	out := m.CropAndResize(outside, 640, 480)
	assert.Equal(t, 640, out.Bounds().Dx())
	assert.Equal(t, 480, out.Bounds().Dy())
}

func TestPlaceholderSizeAndColor(t *testing.T) {
	img := Placeholder(320, 200)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
	r, _, _, a := img.At(160, 100).RGBA()
	assert.EqualValues(t, 200, r>>8)
	assert.EqualValues(t, 255, a>>8)
}
