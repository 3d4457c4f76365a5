package geometry

// FitTransform maps between canvas coordinates and source-image pixel
// coordinates for an image drawn scaled and centered inside a canvas.
type FitTransform struct {
	Scale      float64 // Uniform fit scale (may exceed 1)
	DrawWidth  float64 // Image width on the canvas after scaling
	DrawHeight float64 // Image height on the canvas after scaling
	OffsetX    float64 // Left centering offset on the canvas
	OffsetY    float64 // Top centering offset on the canvas
	ImageW     float64 // Natural image width in pixels
	ImageH     float64 // Natural image height in pixels
}

// NewFitTransform computes the uniform fit of an image with the given natural
// size into a canvas of the given size, centered on both axes.
func NewFitTransform(canvasW, canvasH, imageW, imageH float64) FitTransform {
	if imageW <= 0 || imageH <= 0 {
		return FitTransform{Scale: 1}
	}
	scale := canvasW / imageW
	if s := canvasH / imageH; s < scale {
		scale = s
	}
	dw := imageW * scale
	dh := imageH * scale
	return FitTransform{
		Scale:      scale,
		DrawWidth:  dw,
		DrawHeight: dh,
		OffsetX:    (canvasW - dw) / 2,
		OffsetY:    (canvasH - dh) / 2,
		ImageW:     imageW,
		ImageH:     imageH,
	}
}

// CanvasToImage converts a canvas-space point to source-image pixel
// coordinates, clamped to the image bounds.
func (f FitTransform) CanvasToImage(p Point2D) Point2D {
	if f.Scale == 0 {
		return Point2D{}
	}
	return Point2D{
		X: Clamp((p.X-f.OffsetX)/f.Scale, 0, f.ImageW),
		Y: Clamp((p.Y-f.OffsetY)/f.Scale, 0, f.ImageH),
	}
}

// ImageToCanvas converts a source-image pixel point to canvas coordinates.
func (f FitTransform) ImageToCanvas(p Point2D) Point2D {
	return Point2D{
		X: p.X*f.Scale + f.OffsetX,
		Y: p.Y*f.Scale + f.OffsetY,
	}
}
