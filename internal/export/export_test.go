package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePNGRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	img.Set(3, 4, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, EncodePNG(img, &buf))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20, decoded.Bounds().Dx())
	assert.Equal(t, 10, decoded.Bounds().Dy())
	r, _, _, a := decoded.At(3, 4).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), a)
}

func TestEncodePNGNilImage(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, EncodePNG(nil, &buf))
	assert.Zero(t, buf.Len())
}
