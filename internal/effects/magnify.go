package effects

import (
	"image"

	"pixel-blur/pkg/geometry"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Magnification bounds from the configuration surface.
const (
	MinMagnification = 1
	MaxMagnification = 4
)

// MagnifyTransform builds the affine that redraws the natural-size base
// image so the recorded source pixel lands on the lens's visual center at
// factor times the display scale. Factor is clamped to [1, 4].
func MagnifyTransform(sourceImagePt, lensCenter geometry.Point2D, fitScale, factor float64) geometry.AffineTransform {
	k := geometry.Clamp(factor, MinMagnification, MaxMagnification) * fitScale
	return geometry.Translation(lensCenter.X, lensCenter.Y).
		Compose(geometry.Scaling(k, k)).
		Compose(geometry.Translation(-sourceImagePt.X, -sourceImagePt.Y))
}

// DrawTransformed paints src into dst through the affine m, restricted by
// mask (nil means unmasked). Coordinates are destination-space.
func DrawTransformed(dst *image.RGBA, src image.Image, m geometry.AffineTransform, mask image.Image) {
	opts := &xdraw.Options{}
	if mask != nil {
		opts.DstMask = mask
	}
	aff := f64.Aff3{m.A, m.B, m.TX, m.C, m.D, m.TY}
	xdraw.ApproxBiLinear.Transform(dst, aff, src, src.Bounds(), xdraw.Over, opts)
}

// DrawScaled paints src scaled to fill the destination rectangle, restricted
// by mask (nil means unmasked). Aspect distortion is allowed here; aspect
// preservation is enforced at creation and resize time, not at paint time.
func DrawScaled(dst *image.RGBA, dstRect image.Rectangle, src image.Image, mask image.Image) {
	opts := &xdraw.Options{}
	if mask != nil {
		opts.DstMask = mask
	}
	xdraw.ApproxBiLinear.Scale(dst, dstRect, src, src.Bounds(), xdraw.Over, opts)
}
