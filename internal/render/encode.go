package render

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/chai2010/webp"
)

// Encode writes the rendered image in the requested format. Both formats are
// lossless; PNG is the default delivery format.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "", "png":
		return png.Encode(w, img)
	case "webp":
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
