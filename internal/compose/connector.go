package compose

import (
	"image"
	"image/color"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"
)

var (
	connectorFill = color.RGBA{R: 70, G: 70, B: 70, A: 110}
	connectorDot  = color.RGBA{R: 40, G: 40, B: 40, A: 220}
)

const (
	connectorNarrowHalf = 3.0 // half-width at the source point
	connectorDotRadius  = 4.5
)

// drawConnector paints the tapered quadrilateral linking a magnify lens's
// source point to its display rectangle, plus the marker dot at the source.
// The quad is narrow at the source and widens toward the lens, oriented
// perpendicular to the source-to-target vector.
func drawConnector(dst *image.RGBA, lens overlay.Lens, source geometry.Point2D) {
	target := lens.Rect.Center()
	dir := target.Sub(source)
	length := dir.Norm()
	if length > 1 {
		unit := dir.Scale(1 / length)
		perp := unit.Perpendicular()

		wideHalf := min(lens.Rect.Width, lens.Rect.Height) * 0.35
		quad := []geometry.Point2D{
			source.Add(perp.Scale(-connectorNarrowHalf)),
			source.Add(perp.Scale(connectorNarrowHalf)),
			target.Add(perp.Scale(wideHalf)),
			target.Add(perp.Scale(-wideHalf)),
		}
		fillPolygon(dst, quad, connectorFill)
	}

	fillCircle(dst, source, connectorDotRadius, connectorDot)
}
