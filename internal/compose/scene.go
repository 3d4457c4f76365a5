// Package compose deterministically paints the full annotation scene onto a
// raster surface: background/image, stickers, text, magnify connectors, lens
// content, and the live drag preview, in that fixed order.
package compose

import (
	"image"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"
)

// Background selects what fills the canvas behind (or instead of) the image.
type Background string

const (
	BackgroundImage Background = "image"
	BackgroundBlack Background = "black"
	BackgroundWhite Background = "white"
)

// Scene is the complete input of one render pass. Render is a pure function
// of this value; identical scenes produce identical surfaces.
type Scene struct {
	Image  image.Image // nil when no image is loaded
	Width  int
	Height int

	Lenses   []overlay.Lens
	Stickers []overlay.Sticker
	Texts    []overlay.Text
	Preview  *overlay.Preview

	Background  Background
	Placeholder string // centered label drawn when no image is loaded
}

// Fit returns the fit-to-canvas transform for the scene's image, or a
// zero-value transform when no image is loaded.
func (s Scene) Fit() geometry.FitTransform {
	if s.Image == nil {
		return geometry.FitTransform{Scale: 1}
	}
	b := s.Image.Bounds()
	return geometry.NewFitTransform(
		float64(s.Width), float64(s.Height),
		float64(b.Dx()), float64(b.Dy()),
	)
}
