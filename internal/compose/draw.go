package compose

import (
	"image"
	"image/color"
	"sort"

	"pixel-blur/pkg/geometry"
)

// blendPixel composites col over dst at (x, y) using col's alpha as
// coverage. Out-of-bounds writes are ignored.
func blendPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	b := dst.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	if col.A == 255 {
		dst.SetRGBA(x, y, col)
		return
	}
	a := float64(col.A) / 255
	inv := 1 - a
	c := dst.RGBAAt(x, y)
	dst.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*a + float64(c.R)*inv),
		G: uint8(float64(col.G)*a + float64(c.G)*inv),
		B: uint8(float64(col.B)*a + float64(c.B)*inv),
		A: 255,
	})
}

// fillPolygon paints a filled polygon with a scanline sweep.
func fillPolygon(dst *image.RGBA, pts []geometry.Point2D, col color.RGBA) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	n := len(pts)
	for y := int(minY); y <= int(maxY); y++ {
		fy := float64(y) + 0.5
		var xs []float64
		for i := 0; i < n; i++ {
			p1 := pts[i]
			p2 := pts[(i+1)%n]
			if (p1.Y <= fy && p2.Y > fy) || (p2.Y <= fy && p1.Y > fy) {
				t := (fy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(xs[i]); x <= int(xs[i+1]); x++ {
				blendPixel(dst, x, y, col)
			}
		}
	}
}

// fillCircle paints a filled circle centered at c.
func fillCircle(dst *image.RGBA, c geometry.Point2D, radius float64, col color.RGBA) {
	if radius <= 0 {
		return
	}
	r2 := radius * radius
	for y := int(c.Y - radius); y <= int(c.Y+radius); y++ {
		for x := int(c.X - radius); x <= int(c.X+radius); x++ {
			dx := float64(x) + 0.5 - c.X
			dy := float64(y) + 0.5 - c.Y
			if dx*dx+dy*dy <= r2 {
				blendPixel(dst, x, y, col)
			}
		}
	}
}

// dashedRectOutline draws a dashed rectangle border, alternating pixels on
// and off along each edge.
func dashedRectOutline(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	on := func(x, y int) bool { return (x+y)%8 < 5 }

	for x := r.Min.X; x <= r.Max.X; x++ {
		if on(x, r.Min.Y) {
			blendPixel(dst, x, r.Min.Y, col)
		}
		if on(x, r.Max.Y) {
			blendPixel(dst, x, r.Max.Y, col)
		}
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		if on(r.Min.X, y) {
			blendPixel(dst, r.Min.X, y, col)
		}
		if on(r.Max.X, y) {
			blendPixel(dst, r.Max.X, y, col)
		}
	}
}

// fillRect floods a rectangle with a solid color.
func fillRect(dst *image.RGBA, col color.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, col)
		}
	}
}
