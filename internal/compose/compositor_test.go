package compose

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBaseImage returns an 80x60 image whose left half is red and right half
// is green, so sampling positions are distinguishable.
func testBaseImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			if x < 40 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{G: 255, A: 255})
			}
		}
	}
	return img
}

func TestRenderBackgrounds(t *testing.T) {
	white := Render(Scene{Width: 40, Height: 30, Background: BackgroundWhite})
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, white.RGBAAt(20, 15))

	black := Render(Scene{Width: 40, Height: 30, Background: BackgroundBlack})
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, black.RGBAAt(20, 15))
}

func TestRenderDrawsImageCentered(t *testing.T) {
	// 80x60 image in a 160x60 canvas: fit scale 1, centered horizontally.
	out := Render(Scene{Image: testBaseImage(), Width: 160, Height: 60})

	assert.Equal(t, uint8(0), out.RGBAAt(10, 30).R, "letterbox stays background")
	assert.Equal(t, uint8(255), out.RGBAAt(50, 30).R, "left half of image is red")
	assert.Equal(t, uint8(255), out.RGBAAt(110, 30).G, "right half of image is green")
}

func TestRenderPlaceholder(t *testing.T) {
	out := Render(Scene{Width: 300, Height: 120, Background: BackgroundBlack, Placeholder: "Load an image"})

	painted := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 300; x++ {
			if out.RGBAAt(x, y).R > 0 {
				painted++
			}
		}
	}
	assert.Greater(t, painted, 20, "placeholder label should paint pixels")
}

func TestRenderDeterministic(t *testing.T) {
	scene := Scene{
		Image:  testBaseImage(),
		Width:  160,
		Height: 60,
		Lenses: []overlay.Lens{{
			Rect:          geometry.NewRect(100, 10, 40, 40),
			Shape:         overlay.ShapeCircle,
			Mode:          overlay.LensMagnify,
			SourceImage:   geometry.Point2D{X: 20, Y: 30},
			Magnification: 2,
		}},
		Stickers: []overlay.Sticker{{
			Rect:  geometry.NewRect(5, 5, 20, 10),
			Shape: overlay.ShapeRounded,
			Image: testBaseImage(),
		}},
		Texts:   []overlay.Text{{Pos: geometry.Point2D{X: 50, Y: 5}, Text: "x", Color: "#ffffff", Size: 14, Font: "Go Regular"}},
		Preview: &overlay.Preview{Rect: geometry.NewRect(60, 20, 30, 20), Shape: overlay.ShapeRounded},
	}

	a := Render(scene)
	b := Render(scene)
	require.True(t, bytes.Equal(a.Pix, b.Pix), "identical scenes must produce identical surfaces")
}

func TestStickersRequireImage(t *testing.T) {
	st := overlay.Sticker{
		Rect:  geometry.NewRect(10, 10, 20, 20),
		Shape: overlay.ShapeRounded,
		Image: testBaseImage(),
	}

	without := Render(Scene{Width: 60, Height: 60, Stickers: []overlay.Sticker{st}})
	assert.Equal(t, uint8(0), without.RGBAAt(20, 20).R, "stickers are not painted without a base image")

	with := Render(Scene{Image: testBaseImage(), Width: 60, Height: 60, Stickers: []overlay.Sticker{st}})
	assert.NotEqual(t, uint8(0), with.RGBAAt(15, 20).R)
}

func TestMagnifyLensSamplesSourcePoint(t *testing.T) {
	// Lens sits over the green half but samples the red half.
	lens := overlay.Lens{
		Rect:          geometry.NewRect(45, 15, 30, 30),
		Shape:         overlay.ShapeRounded,
		Mode:          overlay.LensMagnify,
		SourceImage:   geometry.Point2D{X: 10, Y: 30},
		Magnification: 2,
	}
	out := Render(Scene{Image: testBaseImage(), Width: 80, Height: 60, Lenses: []overlay.Lens{lens}})

	center := out.RGBAAt(60, 30)
	assert.Greater(t, center.R, uint8(128), "lens center shows the magnified red source")
}

func TestConnectorPaintedForMagnify(t *testing.T) {
	lens := overlay.Lens{
		Rect:          geometry.NewRect(50, 20, 20, 20),
		Shape:         overlay.ShapeCircle,
		Mode:          overlay.LensMagnify,
		SourceImage:   geometry.Point2D{X: 10, Y: 10},
		Magnification: 2,
	}
	withLens := Render(Scene{Image: testBaseImage(), Width: 80, Height: 60, Lenses: []overlay.Lens{lens}})
	withoutLens := Render(Scene{Image: testBaseImage(), Width: 80, Height: 60})

	// The source marker dot darkens pixels at the source point.
	src := withLens.RGBAAt(10, 10)
	plain := withoutLens.RGBAAt(10, 10)
	assert.Less(t, src.R, plain.R, "marker dot should darken the source point")
}

func TestPreviewDrawnOnTop(t *testing.T) {
	scene := Scene{
		Width:      100,
		Height:     100,
		Background: BackgroundBlack,
		Preview:    &overlay.Preview{Rect: geometry.NewRect(20, 20, 40, 30), Shape: overlay.ShapeRounded},
	}
	out := Render(scene)

	inside := out.RGBAAt(40, 35)
	assert.Greater(t, inside.B, uint8(0), "translucent preview fill tints the interior")
	outside := out.RGBAAt(80, 80)
	assert.Equal(t, uint8(0), outside.B)
}

func TestShapeMaskCircle(t *testing.T) {
	mask := shapeMask(geometry.NewRect(0, 0, 40, 40), overlay.ShapeCircle)
	assert.Equal(t, uint8(255), mask.AlphaAt(20, 20).A)
	assert.Equal(t, uint8(0), mask.AlphaAt(1, 1).A)
}

func TestShapeMaskRounded(t *testing.T) {
	mask := shapeMask(geometry.NewRect(0, 0, 60, 40), overlay.ShapeRounded)
	assert.Equal(t, uint8(255), mask.AlphaAt(30, 20).A)
	assert.Equal(t, uint8(255), mask.AlphaAt(30, 1).A, "edge midpoints are inside")
	assert.Equal(t, uint8(0), mask.AlphaAt(0, 0).A, "corners are clipped")
}
