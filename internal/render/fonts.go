package render

import (
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts resolves text faces for labels and the legend. Resolution order:
// configured TTF files, then the embedded Go fonts, then the bitmap
// basicfont. A font problem never fails a render.
type Fonts struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewFonts loads the preferred font files when given, otherwise the embedded
// Go fonts.
func NewFonts(regularPath, boldPath string) *Fonts {
	f := &Fonts{faces: make(map[faceKey]font.Face)}
	f.regular = loadFont(regularPath, goregular.TTF)
	f.bold = loadFont(boldPath, gobold.TTF)
	return f
}

func loadFont(path string, embedded []byte) *opentype.Font {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if parsed, err := opentype.Parse(data); err == nil {
				return parsed
			}
			log.Warn().Str("path", path).Msg("Font file unparseable, using embedded font")
		} else {
			log.Warn().Str("path", path).Err(err).Msg("Font file unavailable, using embedded font")
		}
	}

	parsed, err := opentype.Parse(embedded)
	if err != nil {
		// Embedded fonts should always parse; basicfont remains as the
		// last fallback in Face.
		log.Warn().Err(err).Msg("Embedded font unparseable, falling back to bitmap font")
		return nil
	}
	return parsed
}

// Face returns a cached face at the given size, falling back to the bitmap
// basicfont when no scalable font is available.
func (f *Fonts) Face(size float64, bold bool) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if face, ok := f.faces[key]; ok {
		return face
	}

	src := f.regular
	if bold && f.bold != nil {
		src = f.bold
	}
	if src == nil {
		return basicfont.Face7x13
	}

	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	f.faces[key] = face
	return face
}
