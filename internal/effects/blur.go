// Package effects implements the pixel-level lens operations: Gaussian
// blur, magnification redraw, and the magnifier glass highlight.
package effects

import (
	"image"
	"log"

	"pixel-blur/pkg/geometry"

	"gocv.io/x/gocv"
)

// Blur strength bounds from the configuration surface.
const (
	MinBlur = 2
	MaxBlur = 30
)

// Blur returns a Gaussian-blurred copy of img. Strength is clamped to
// [MinBlur, MaxBlur] and mapped to the filter sigma; the kernel size is
// derived from sigma by OpenCV. On a conversion failure the input is
// returned unchanged, keeping the interactive path a silent no-op.
func Blur(img *image.RGBA, strength float64) *image.RGBA {
	strength = geometry.Clamp(strength, MinBlur, MaxBlur)

	src, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		log.Printf("effects: blur conversion: %v", err)
		return img
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	sigma := strength / 2
	gocv.GaussianBlur(src, &dst, image.Pt(0, 0), sigma, sigma, gocv.BorderDefault)

	out, err := dst.ToImage()
	if err != nil {
		log.Printf("effects: blur readback: %v", err)
		return img
	}
	if rgba, ok := out.(*image.RGBA); ok {
		rgba.Rect = rgba.Rect.Add(img.Rect.Min)
		return rgba
	}

	res := image.NewRGBA(img.Rect)
	b := out.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			res.Set(img.Rect.Min.X+x, img.Rect.Min.Y+y, out.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return res
}
