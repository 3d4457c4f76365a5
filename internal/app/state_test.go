package app

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func waitEvent(t *testing.T, ch <-chan interface{}) interface{} {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestLoadImageInstallsAndClearsOverlays(t *testing.T) {
	s := NewState()
	s.Store.AddLens(overlay.Lens{Rect: geometry.Rect{Width: 100, Height: 100}})

	loaded := make(chan interface{}, 1)
	s.On(EventImageLoaded, func(data interface{}) { loaded <- data })

	s.LoadImage("photo.png", bytes.NewReader(pngBytes(t, 8, 6, color.White)))

	name := waitEvent(t, loaded)
	assert.Equal(t, "photo.png", name)
	assert.True(t, s.HasImage())
	assert.Equal(t, "photo.png", s.ImageName())
	assert.Equal(t, 8, s.Image().Bounds().Dx())
	assert.Empty(t, s.Store.Lenses())
	assert.Equal(t, 0, s.Store.HistoryLen())
}

func TestLoadImageBadDataKeepsPreviousImage(t *testing.T) {
	s := NewState()
	loaded := make(chan interface{}, 1)
	s.On(EventImageLoaded, func(data interface{}) { loaded <- data })

	s.LoadImage("first.png", bytes.NewReader(pngBytes(t, 4, 4, color.Black)))
	waitEvent(t, loaded)

	s.LoadImage("broken.png", bytes.NewReader([]byte("not an image")))

	// The failed decode must not fire the event or drop the image.
	select {
	case <-loaded:
		t.Fatal("unexpected event for failed decode")
	case <-time.After(200 * time.Millisecond):
	}
	assert.True(t, s.HasImage())
	assert.Equal(t, "first.png", s.ImageName())
}

// gatedReader blocks the decode until released, simulating a slow source.
type gatedReader struct {
	gate <-chan struct{}
	r    io.Reader
	once bool
}

func (g *gatedReader) Read(p []byte) (int, error) {
	if !g.once {
		<-g.gate
		g.once = true
	}
	return g.r.Read(p)
}

func TestSlowDecodeCannotOverwriteNewerImage(t *testing.T) {
	s := NewState()
	loaded := make(chan interface{}, 2)
	s.On(EventImageLoaded, func(data interface{}) { loaded <- data })

	gate := make(chan struct{})
	slow := &gatedReader{gate: gate, r: bytes.NewReader(pngBytes(t, 2, 2, color.Black))}

	s.LoadImage("slow.png", slow)
	s.LoadImage("fast.png", bytes.NewReader(pngBytes(t, 16, 16, color.White)))
	waitEvent(t, loaded)

	// Let the stale decode finish; its result must be discarded.
	close(gate)
	select {
	case <-loaded:
		t.Fatal("stale decode fired the loaded event")
	case <-time.After(300 * time.Millisecond):
	}
	assert.Equal(t, "fast.png", s.ImageName())
	assert.Equal(t, 16, s.Image().Bounds().Dx())
}

func TestLoadStickerClearsPlacedStickers(t *testing.T) {
	s := NewState()
	s.Store.AddSticker(overlay.Sticker{
		Rect:  geometry.Rect{Width: 50, Height: 50},
		Image: image.NewRGBA(image.Rect(0, 0, 4, 4)),
	})

	loaded := make(chan interface{}, 1)
	s.On(EventStickerLoaded, func(data interface{}) { loaded <- data })

	s.LoadSticker("badge.png", bytes.NewReader(pngBytes(t, 10, 5, color.White)))
	waitEvent(t, loaded)

	assert.NotNil(t, s.Sticker())
	assert.Empty(t, s.Store.Stickers())
}

func TestResetDropsOverlaysAndHistory(t *testing.T) {
	s := NewState()
	s.Store.AddLens(overlay.Lens{Rect: geometry.Rect{Width: 100, Height: 100}})
	s.Store.AddText(overlay.Text{Text: "hi", Size: 24})

	changed := make(chan interface{}, 1)
	s.On(EventOverlaysChanged, func(data interface{}) { changed <- data })

	s.Reset()
	waitEvent(t, changed)

	assert.Empty(t, s.Store.Lenses())
	assert.Empty(t, s.Store.Texts())
	assert.Equal(t, 0, s.Store.HistoryLen())
	assert.False(t, s.Store.Undo())
}

func TestSettingsClamping(t *testing.T) {
	st := NewSettings()

	st.SetLensSize(9999)
	assert.Equal(t, 420.0, st.LensSize())
	st.SetLensSize(1)
	assert.Equal(t, 80.0, st.LensSize())

	st.SetBlur(100)
	assert.Equal(t, 30.0, st.Blur())
	st.SetBlur(0)
	assert.Equal(t, 2.0, st.Blur())

	st.SetMagnification(10)
	assert.Equal(t, 4.0, st.Magnification())

	st.SetTextSize(5)
	assert.Equal(t, 12.0, st.TextSize())
	st.SetTextSize(500)
	assert.Equal(t, 72.0, st.TextSize())

	st.SetBackground("plaid")
	assert.Equal(t, BackgroundImage, st.Background())
	st.SetBackground(BackgroundBlack)
	assert.Equal(t, BackgroundBlack, st.Background())
}
