// Package typeset measures and paints multi-line text blocks using the
// bundled Go fonts.
package typeset

import (
	"image"
	"image/draw"
	"log"
	"strings"
	"sync"

	"pixel-blur/pkg/colorutil"
	"pixel-blur/pkg/geometry"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LineHeightFactor converts a font size into the vertical advance between
// lines of a text block.
const LineHeightFactor = 1.2

// DefaultFont is used when a text overlay names no font.
const DefaultFont = "Go Regular"

// Sources maps font display names to their embedded TTF data.
var Sources = map[string][]byte{
	"Go Regular": goregular.TTF,
	"Go Bold":    gobold.TTF,
	"Go Italic":  goitalic.TTF,
	"Go Mono":    gomono.TTF,
}

// FontNames returns the bundled font names in a stable order.
func FontNames() []string {
	return []string{"Go Regular", "Go Bold", "Go Italic", "Go Mono"}
}

type faceKey struct {
	name string
	size float64
}

var (
	mu    sync.Mutex
	fonts = map[string]*opentype.Font{}
	faces = map[faceKey]font.Face{}
)

// Face returns a cached face for the named font at the given size. Unknown
// names fall back to the default font; a parse failure falls back to the
// fixed 7x13 face so text always renders.
func Face(name string, size float64) font.Face {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := Sources[name]; !ok {
		name = DefaultFont
	}
	key := faceKey{name: name, size: size}
	if f, ok := faces[key]; ok {
		return f
	}

	parsed, ok := fonts[name]
	if !ok {
		var err error
		parsed, err = opentype.Parse(Sources[name])
		if err != nil {
			log.Printf("typeset: parse %s: %v", name, err)
			faces[key] = basicfont.Face7x13
			return basicfont.Face7x13
		}
		fonts[name] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("typeset: face %s@%g: %v", name, size, err)
		faces[key] = basicfont.Face7x13
		return basicfont.Face7x13
	}
	faces[key] = face
	return face
}

// Measure returns the size of the block that Draw would paint: the widest
// line by advance width, and line count times the line height.
func Measure(text, fontName string, size float64) geometry.Size {
	lines := strings.Split(text, "\n")
	d := &font.Drawer{Face: Face(fontName, size)}

	var maxW fixed.Int26_6
	for _, line := range lines {
		if w := d.MeasureString(line); w > maxW {
			maxW = w
		}
	}
	return geometry.Size{
		Width:  float64(maxW) / 64,
		Height: float64(len(lines)) * size * LineHeightFactor,
	}
}

// Draw paints a multi-line text block top-aligned at pos. Each line sits at
// pos.Y + i*size*1.2; the hex color is parsed leniently (invalid -> white).
func Draw(dst draw.Image, text string, pos geometry.Point2D, hexColor string, size float64, fontName string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	face := Face(fontName, size)
	src := image.NewUniform(colorutil.ParseHex(hexColor))
	ascent := float64(face.Metrics().Ascent) / 64
	lineH := size * LineHeightFactor

	for i, line := range strings.Split(text, "\n") {
		d := &font.Drawer{
			Dst:  dst,
			Src:  src,
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(pos.X * 64),
				Y: fixed.Int26_6((pos.Y + float64(i)*lineH + ascent) * 64),
			},
		}
		d.DrawString(line)
	}
}
