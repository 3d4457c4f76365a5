package compose

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"pixel-blur/internal/effects"
	"pixel-blur/internal/overlay"
	"pixel-blur/internal/typeset"
	"pixel-blur/pkg/geometry"
)

var previewFill = color.RGBA{R: 80, G: 170, B: 255, A: 50}
var previewOutline = color.RGBA{R: 80, G: 170, B: 255, A: 230}

// Render paints the scene onto a fresh raster surface. Layering is fixed:
// background/image, stickers, text, magnify connectors, lens content,
// preview. The function has no state of its own and is idempotent.
func Render(scene Scene) *image.RGBA {
	w, h := scene.Width, scene.Height
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(out, backgroundColor(scene.Background))
	fit := scene.Fit()

	if scene.Image != nil {
		dstRect := image.Rect(
			int(fit.OffsetX), int(fit.OffsetY),
			int(fit.OffsetX+fit.DrawWidth), int(fit.OffsetY+fit.DrawHeight),
		)
		effects.DrawScaled(out, dstRect, scene.Image, nil)
	} else if scene.Placeholder != "" {
		drawPlaceholder(out, scene.Placeholder)
	}

	// Base snapshot for blur lenses: the scene as it looks before any
	// overlay is painted.
	var base *image.RGBA
	for _, l := range scene.Lenses {
		if l.Mode == overlay.LensBlur {
			base = cloneRGBA(out)
			break
		}
	}

	if scene.Image != nil {
		for _, st := range scene.Stickers {
			drawSticker(out, st)
		}
	}

	for _, t := range scene.Texts {
		typeset.Draw(out, t.Text, t.Pos, t.Color, t.Size, t.Font)
	}

	// Connector graphics are painted for every magnify lens before any lens
	// content so lenses always sit on top of their own connectors.
	for _, l := range scene.Lenses {
		if l.Mode == overlay.LensMagnify {
			drawConnector(out, l, sourceCanvasPoint(l, fit, scene.Image != nil))
		}
	}

	for _, l := range scene.Lenses {
		drawLensContent(out, base, scene, fit, l)
	}

	if scene.Preview != nil {
		drawPreview(out, *scene.Preview)
	}

	return out
}

func backgroundColor(bg Background) color.RGBA {
	switch bg {
	case BackgroundWhite:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	default:
		// The "image" choice shows black behind the letterboxed image.
		return color.RGBA{A: 255}
	}
}

// sourceCanvasPoint resolves a magnify lens's sample point in canvas space.
// The image-space coordinates are authoritative when an image is present so
// the sample stays correct across canvas size changes.
func sourceCanvasPoint(l overlay.Lens, fit geometry.FitTransform, hasImage bool) geometry.Point2D {
	if hasImage {
		return fit.ImageToCanvas(l.SourceImage)
	}
	return l.Source
}

func drawSticker(dst *image.RGBA, st overlay.Sticker) {
	if st.Image == nil {
		return
	}
	mask := shapeMask(st.Rect, st.Shape)
	effects.DrawScaled(dst, rectToImage(st.Rect), st.Image, mask)
}

func drawLensContent(out, base *image.RGBA, scene Scene, fit geometry.FitTransform, l overlay.Lens) {
	mask := shapeMask(l.Rect, l.Shape)
	rect := rectToImage(l.Rect)

	switch l.Mode {
	case overlay.LensBlur:
		if base == nil {
			return
		}
		// Blur a padded region of the pre-overlay base so edge pixels have
		// real neighbors, then paste the lens window through the clip mask.
		pad := int(math.Ceil(l.Blur)) + 2
		region := rect.Inset(-pad).Intersect(base.Bounds())
		if region.Empty() {
			return
		}
		tmp := image.NewRGBA(region)
		draw.Draw(tmp, region, base, region.Min, draw.Src)
		blurred := effects.Blur(tmp, l.Blur)
		draw.DrawMask(out, rect, blurred, rect.Min, mask, rect.Min, draw.Over)

	case overlay.LensMagnify:
		if scene.Image == nil {
			return
		}
		m := effects.MagnifyTransform(l.SourceImage, l.Rect.Center(), fit.Scale, l.Magnification)
		sub := out.SubImage(rect.Intersect(out.Bounds())).(*image.RGBA)
		effects.DrawTransformed(sub, scene.Image, m, mask)
		effects.Highlight(out, l.Rect, mask)
	}
}

func drawPreview(dst *image.RGBA, p overlay.Preview) {
	mask := shapeMask(p.Rect, p.Shape)
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A > 0 {
				blendPixel(dst, x, y, previewFill)
			}
		}
	}
	dashedRectOutline(dst, image.Rect(b.Min.X, b.Min.Y, b.Max.X-1, b.Max.Y-1), previewOutline)
}

func drawPlaceholder(dst *image.RGBA, label string) {
	const size = 28.0
	sz := typeset.Measure(label, typeset.DefaultFont, size)
	b := dst.Bounds()
	pos := geometry.Point2D{
		X: (float64(b.Dx()) - sz.Width) / 2,
		Y: (float64(b.Dy()) - sz.Height) / 2,
	}
	typeset.Draw(dst, label, pos, "#9a9a9a", size, typeset.DefaultFont)
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
