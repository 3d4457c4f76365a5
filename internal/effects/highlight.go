package effects

import (
	"image"
	"image/color"
	"math"

	"pixel-blur/pkg/geometry"

	"gonum.org/v1/gonum/floats"
)

const highlightSteps = 64

// highlightLUT holds the radial falloff of the glass highlight, sampled at
// evenly spaced normalized distances.
var highlightLUT = buildHighlightLUT()

func buildHighlightLUT() [highlightSteps]float64 {
	dist := make([]float64, highlightSteps)
	floats.Span(dist, 0, 1)

	var lut [highlightSteps]float64
	for i, d := range dist {
		f := 1 - d
		lut[i] = f * f
	}
	return lut
}

// Highlight composites a soft radial white sheen over the lens rectangle,
// biased toward the upper-left the way light catches a magnifier glass.
// mask restricts the effect to the lens clip shape (nil means unmasked).
func Highlight(dst *image.RGBA, r geometry.Rect, mask *image.Alpha) {
	const maxAlpha = 70.0

	cx := r.X + r.Width*0.38
	cy := r.Y + r.Height*0.32
	radius := math.Max(r.Width, r.Height) * 0.6
	if radius <= 0 {
		return
	}

	x0 := int(r.X)
	y0 := int(r.Y)
	x1 := int(r.X + r.Width)
	y1 := int(r.Y + r.Height)
	b := dst.Bounds()

	for y := y0; y < y1; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x < x1; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			if mask != nil && mask.AlphaAt(x, y).A == 0 {
				continue
			}
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / radius
			if d >= 1 {
				continue
			}
			idx := int(d * float64(highlightSteps-1))
			a := highlightLUT[idx] * maxAlpha
			blendWhite(dst, x, y, a/255)
		}
	}
}

func blendWhite(dst *image.RGBA, x, y int, alpha float64) {
	c := dst.RGBAAt(x, y)
	inv := 1 - alpha
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(255*alpha + float64(c.R)*inv),
		G: uint8(255*alpha + float64(c.G)*inv),
		B: uint8(255*alpha + float64(c.B)*inv),
		A: c.A,
	})
}
