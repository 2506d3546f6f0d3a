package render

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strconv"
)

const (
	// LegendHeight is the fixed height of the statistics panel appended
	// below the map.
	LegendHeight = 200

	legendMargin     = 20
	legendTitleSize  = 20
	legendFontSize   = 16
	legendColumns    = 3
	legendRowPitch   = 40
	legendSwatchW    = 30
	legendSwatchH    = 20
	legendTitleText  = "Crop Distribution Legend"
	legendTitlePitch = 35
)

// drawLegend paints the statistics panel onto the final image starting at
// yOffset. Entries are laid out in a fixed-column grid ordered by area
// descending.
func drawLegend(dst *image.RGBA, stats []AreaStat, yOffset int, fonts *Fonts) {
	titleFace := fonts.Face(legendTitleSize, true)
	rowFace := fonts.Face(legendFontSize, false)

	ordered := make([]AreaStat, len(stats))
	copy(ordered, stats)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].AreaHectares > ordered[j].AreaHectares
	})

	x0 := legendMargin
	y := yOffset + legendMargin

	drawText(dst, legendTitleText, x0, y+titleFace.Metrics().Ascent.Ceil(), labelTextColor, titleFace)
	y += legendTitlePitch

	itemWidth := (dst.Bounds().Dx() - 2*legendMargin) / legendColumns

	for idx, stat := range ordered {
		row := idx / legendColumns
		col := idx % legendColumns

		x := x0 + col*itemWidth
		rowY := y + row*legendRowPitch

		swatchColor := color.NRGBA{0, 0, 0, 255}
		if rgb, err := parseHexColor(stat.Color); err == nil {
			swatchColor = withAlpha(rgb, 255)
		}

		swatch := image.Rect(x, rowY, x+legendSwatchW, rowY+legendSwatchH)
		fillRect(dst, swatch, swatchColor)
		strokeRect(dst, swatch, labelTextColor, 1)

		text := fmt.Sprintf("%s: %s%% (%s ha)",
			stat.CropName,
			trimFloat(stat.Percentage),
			trimFloat(stat.AreaHectares))
		drawText(dst, text, x+legendSwatchW+10, rowY+2+rowFace.Metrics().Ascent.Ceil(), labelTextColor, rowFace)
	}
}

// trimFloat formats a number without a trailing ".0" so whole values read
// like the integers callers supplied.
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
