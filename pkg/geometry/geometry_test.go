package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFitTransform(t *testing.T) {
	cases := []struct {
		name                  string
		canvasW, canvasH      float64
		imageW, imageH        float64
		scale                 float64
		offsetX, offsetY      float64
		drawWidth, drawHeight float64
	}{
		{"wide canvas", 900, 600, 800, 600, 1.0, 50, 0, 800, 600},
		{"tall canvas", 800, 900, 800, 600, 1.0, 0, 150, 800, 600},
		{"downscale", 400, 300, 800, 600, 0.5, 0, 0, 400, 300},
		{"upscale allowed", 1600, 1200, 800, 600, 2.0, 0, 0, 1600, 1200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFitTransform(tc.canvasW, tc.canvasH, tc.imageW, tc.imageH)
			assert.InDelta(t, tc.scale, f.Scale, 1e-9)
			assert.InDelta(t, tc.offsetX, f.OffsetX, 1e-9)
			assert.InDelta(t, tc.offsetY, f.OffsetY, 1e-9)
			assert.InDelta(t, tc.drawWidth, f.DrawWidth, 1e-9)
			assert.InDelta(t, tc.drawHeight, f.DrawHeight, 1e-9)
		})
	}
}

func TestFitTransformRoundTrip(t *testing.T) {
	f := NewFitTransform(900, 600, 800, 600)
	p := Point2D{X: 123, Y: 456}
	back := f.CanvasToImage(f.ImageToCanvas(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestCanvasToImageClamps(t *testing.T) {
	f := NewFitTransform(900, 600, 800, 600)
	p := f.CanvasToImage(Point2D{X: -500, Y: 5000})
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 600.0, p.Y)
}

func TestEllipseContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 100, Height: 50}
	cases := []struct {
		name string
		p    Point2D
		want bool
	}{
		{"center", Point2D{60, 35}, true},
		{"left vertex", Point2D{10, 35}, true},
		{"top vertex", Point2D{60, 10}, true},
		{"corner inside rect outside ellipse", Point2D{12, 12}, false},
		{"outside rect", Point2D{200, 200}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EllipseContains(r, tc.p))
		})
	}
}

func TestClampRect(t *testing.T) {
	cases := []struct {
		name string
		in   Rect
		want Rect
	}{
		{"inside", Rect{10, 10, 50, 50}, Rect{10, 10, 50, 50}},
		{"off left top", Rect{-5, -8, 50, 50}, Rect{0, 0, 50, 50}},
		{"off right bottom", Rect{380, 280, 50, 50}, Rect{350, 250, 50, 50}},
		{"oversized", Rect{0, 0, 900, 900}, Rect{0, 0, 400, 300}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampRect(tc.in, 400, 300))
		})
	}
}

func TestAffineComposeInverse(t *testing.T) {
	m := Translation(60, 35).Compose(Scaling(2, 2)).Compose(Translation(-100, -200))
	p := m.Apply(Point2D{X: 100, Y: 200})
	assert.InDelta(t, 60.0, p.X, 1e-9)
	assert.InDelta(t, 35.0, p.Y, 1e-9)

	inv, ok := m.Inverse()
	assert.True(t, ok)
	q := inv.Apply(p)
	assert.InDelta(t, 100.0, q.X, 1e-9)
	assert.InDelta(t, 200.0, q.Y, 1e-9)
}

func TestPerpendicular(t *testing.T) {
	v := Point2D{X: 3, Y: 4}
	n := v.Perpendicular()
	assert.Equal(t, Point2D{X: -4, Y: 3}, n)
	assert.InDelta(t, 0.0, v.X*n.X+v.Y*n.Y, 1e-12)
}
