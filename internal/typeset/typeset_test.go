package typeset

import (
	"image"
	"image/color"
	"testing"

	"pixel-blur/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestMeasureLineHeight(t *testing.T) {
	one := Measure("hello", DefaultFont, 20)
	three := Measure("a\nbb\nccc", DefaultFont, 20)

	assert.InDelta(t, 20*1.2, one.Height, 1e-9)
	assert.InDelta(t, 3*20*1.2, three.Height, 1e-9)
	assert.Greater(t, one.Width, 0.0)
}

func TestMeasureWidestLineWins(t *testing.T) {
	narrow := Measure("iii", DefaultFont, 24)
	block := Measure("iii\nwwwwwwww\ni", DefaultFont, 24)
	assert.Greater(t, block.Width, narrow.Width)
}

func TestMeasureScalesWithSize(t *testing.T) {
	small := Measure("sample", DefaultFont, 12)
	large := Measure("sample", DefaultFont, 48)
	assert.Greater(t, large.Width, small.Width)
	assert.InDelta(t, 4.0, large.Height/small.Height, 1e-9)
}

func TestFaceUnknownNameFallsBack(t *testing.T) {
	f := Face("No Such Font", 16)
	require.NotNil(t, f)
	got := Measure("x", "No Such Font", 16)
	want := Measure("x", DefaultFont, 16)
	assert.Equal(t, want, got)
}

func TestDrawPaintsPixels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 200, 80))
	Draw(dst, "Hi", pt(10, 10), "#ff0000", 32, DefaultFont)

	painted := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 200; x++ {
			r, _, _, a := dst.At(x, y).RGBA()
			if a > 0 && r > 0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 10)
}

func TestDrawEmptyTextNoOp(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Draw(dst, "   ", pt(0, 0), "#ffffff", 16, DefaultFont)
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(5, 5))
}
