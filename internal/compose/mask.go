package compose

import (
	"image"
	"image/color"
	"math"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"
)

// roundedRadius returns the corner radius used for rounded clip shapes.
func roundedRadius(r geometry.Rect) float64 {
	rad := math.Min(r.Width, r.Height) / 8
	return geometry.Clamp(rad, 4, 24)
}

// shapeMask builds the alpha clip for a lens, sticker, or preview region.
// The mask's bounds coincide with the (integer) region rectangle so it can
// be used directly as a destination mask.
func shapeMask(r geometry.Rect, shape overlay.Shape) *image.Alpha {
	bounds := rectToImage(r)
	mask := image.NewAlpha(bounds)

	switch shape {
	case overlay.ShapeCircle:
		rx := r.Width / 2
		ry := r.Height / 2
		c := r.Center()
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				dx := (float64(x) + 0.5 - c.X) / rx
				dy := (float64(y) + 0.5 - c.Y) / ry
				if dx*dx+dy*dy <= 1 {
					mask.SetAlpha(x, y, color.Alpha{A: 255})
				}
			}
		}
	default:
		rad := roundedRadius(r)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if roundedContains(r, rad, float64(x)+0.5, float64(y)+0.5) {
					mask.SetAlpha(x, y, color.Alpha{A: 255})
				}
			}
		}
	}
	return mask
}

func roundedContains(r geometry.Rect, rad, px, py float64) bool {
	if px < r.X || px > r.X+r.Width || py < r.Y || py > r.Y+r.Height {
		return false
	}
	// Distance check applies only inside the corner boxes.
	var cx, cy float64
	switch {
	case px < r.X+rad && py < r.Y+rad:
		cx, cy = r.X+rad, r.Y+rad
	case px > r.X+r.Width-rad && py < r.Y+rad:
		cx, cy = r.X+r.Width-rad, r.Y+rad
	case px < r.X+rad && py > r.Y+r.Height-rad:
		cx, cy = r.X+rad, r.Y+r.Height-rad
	case px > r.X+r.Width-rad && py > r.Y+r.Height-rad:
		cx, cy = r.X+r.Width-rad, r.Y+r.Height-rad
	default:
		return true
	}
	dx := px - cx
	dy := py - cy
	return dx*dx+dy*dy <= rad*rad
}

func rectToImage(r geometry.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	)
}
