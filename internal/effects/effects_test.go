package effects

import (
	"image"
	"image/color"
	"testing"

	"pixel-blur/pkg/geometry"

	"github.com/stretchr/testify/assert"
)

func TestMagnifyTransformMapsSourceToCenter(t *testing.T) {
	src := geometry.Point2D{X: 100, Y: 200}
	center := geometry.Point2D{X: 60, Y: 35}

	m := MagnifyTransform(src, center, 1.0, 2.0)
	got := m.Apply(src)
	assert.InDelta(t, center.X, got.X, 1e-9)
	assert.InDelta(t, center.Y, got.Y, 1e-9)

	// A point one pixel right of the source lands 2px right of center.
	got = m.Apply(geometry.Point2D{X: 101, Y: 200})
	assert.InDelta(t, center.X+2, got.X, 1e-9)
}

func TestMagnifyTransformClampsFactor(t *testing.T) {
	src := geometry.Point2D{X: 10, Y: 10}
	center := geometry.Point2D{X: 0, Y: 0}

	over := MagnifyTransform(src, center, 1.0, 99)
	four := MagnifyTransform(src, center, 1.0, 4)
	assert.Equal(t, four, over)

	under := MagnifyTransform(src, center, 1.0, 0.1)
	one := MagnifyTransform(src, center, 1.0, 1)
	assert.Equal(t, one, under)
}

func TestMagnifyTransformRespectsFitScale(t *testing.T) {
	m := MagnifyTransform(geometry.Point2D{}, geometry.Point2D{}, 0.5, 2)
	got := m.Apply(geometry.Point2D{X: 10, Y: 0})
	assert.InDelta(t, 10.0, got.X, 1e-9) // 0.5 fit * 2x = 1:1 on canvas
}

func TestDrawScaledFillsRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	DrawScaled(dst, image.Rect(10, 10, 30, 30), src, nil)

	assert.NotZero(t, dst.RGBAAt(20, 20).R)
	assert.Zero(t, dst.RGBAAt(5, 5).R)
	assert.Zero(t, dst.RGBAAt(35, 35).R)
}

func TestDrawScaledHonorsMask(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
		}
	}

	mask := image.NewAlpha(image.Rect(10, 10, 30, 30))
	mask.SetAlpha(20, 20, color.Alpha{A: 255})

	DrawScaled(dst, image.Rect(10, 10, 30, 30), src, mask)

	assert.NotZero(t, dst.RGBAAt(20, 20).G)
	assert.Zero(t, dst.RGBAAt(15, 15).G)
}

func TestHighlightBrightensInsideOnly(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			dst.SetRGBA(x, y, color.RGBA{R: 10, G: 10, B: 10, A: 255})
		}
	}

	Highlight(dst, geometry.NewRect(20, 20, 40, 40), nil)

	center := dst.RGBAAt(35, 33)
	assert.Greater(t, center.R, uint8(10))
	outside := dst.RGBAAt(80, 80)
	assert.Equal(t, uint8(10), outside.R)
}
