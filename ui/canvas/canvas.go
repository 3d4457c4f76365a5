// Package canvas hosts the annotation surface: a raster widget that renders
// the composited scene and feeds pointer events to the interaction machine.
package canvas

import (
	"image"

	"pixel-blur/internal/app"
	"pixel-blur/internal/compose"
	"pixel-blur/internal/interact"
	"pixel-blur/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Surface renders the composited scene and owns the pointer wiring.
type Surface struct {
	widget.BaseWidget

	state   *app.State
	machine *interact.Machine
	raster  *fynecanvas.Raster

	// Pixel dimensions of the last rendered frame. Pointer positions
	// arrive in device-independent points and are scaled into this space.
	pxW, pxH int
}

// Fyne interfaces the surface relies on: raw button events, hover
// tracking, and consuming secondary taps so no context menu appears.
var (
	_ desktop.Mouseable      = (*Surface)(nil)
	_ desktop.Hoverable      = (*Surface)(nil)
	_ fyne.SecondaryTappable = (*Surface)(nil)
)

// NewSurface creates the annotation surface bound to the session state.
func NewSurface(state *app.State) *Surface {
	s := &Surface{state: state}
	s.machine = interact.New(interact.Deps{
		Store:        state.Store,
		Config:       state.Settings.Config,
		CanvasSize:   s.logicalSize,
		Fit:          s.fit,
		StickerImage: state.Sticker,
	})
	s.raster = fynecanvas.NewRaster(s.draw)
	s.ExtendBaseWidget(s)
	return s
}

// Machine exposes the interaction machine for the shell's keyboard wiring.
func (s *Surface) Machine() *interact.Machine { return s.machine }

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.raster)
}

func (s *Surface) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// draw is the raster callback; w and h are device pixels.
func (s *Surface) draw(w, h int) image.Image {
	s.pxW, s.pxH = w, h
	return compose.Render(s.scene(w, h, true))
}

// Snapshot renders the scene at the current surface size without the
// transient preview, for export.
func (s *Surface) Snapshot() *image.RGBA {
	w, h := s.pxW, s.pxH
	if w <= 0 || h <= 0 {
		w, h = 400, 300
	}
	return compose.Render(s.scene(w, h, false))
}

func (s *Surface) scene(w, h int, withPreview bool) compose.Scene {
	scene := compose.Scene{
		Image:       s.state.Image(),
		Width:       w,
		Height:      h,
		Lenses:      s.state.Store.Lenses(),
		Stickers:    s.state.Store.Stickers(),
		Texts:       s.state.Store.Texts(),
		Background:  compose.Background(s.state.Settings.Background()),
		Placeholder: "Open an image to start",
	}
	if withPreview {
		scene.Preview = s.machine.Preview()
	}
	return scene
}

// logicalSize is the coordinate space overlays live in, which is the
// rendered pixel grid.
func (s *Surface) logicalSize() geometry.Size {
	return geometry.Size{Width: float64(s.pxW), Height: float64(s.pxH)}
}

func (s *Surface) fit() geometry.FitTransform {
	img := s.state.Image()
	if img == nil {
		return geometry.NewFitTransform(float64(s.pxW), float64(s.pxH), 0, 0)
	}
	b := img.Bounds()
	return geometry.NewFitTransform(float64(s.pxW), float64(s.pxH), float64(b.Dx()), float64(b.Dy()))
}

// toCanvas maps a pointer position in points to rendered pixel space.
func (s *Surface) toCanvas(pos fyne.Position) geometry.Point2D {
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
	}
	return geometry.Point2D{
		X: float64(pos.X) * float64(s.pxW) / float64(size.Width),
		Y: float64(pos.Y) * float64(s.pxH) / float64(size.Height),
	}
}

func toButton(b desktop.MouseButton) interact.Button {
	if b == desktop.MouseButtonSecondary {
		return interact.ButtonSecondary
	}
	return interact.ButtonPrimary
}

func (s *Surface) MouseDown(ev *desktop.MouseEvent) {
	s.machine.PointerDown(s.toCanvas(ev.Position), toButton(ev.Button))
	s.Refresh()
}

func (s *Surface) MouseUp(ev *desktop.MouseEvent) {
	s.machine.PointerUp(s.toCanvas(ev.Position))
	s.Refresh()
}

func (s *Surface) MouseIn(ev *desktop.MouseEvent) {}

// MouseMoved only triggers a repaint while a gesture is active; hover
// tracking alone must not re-run the compositor.
func (s *Surface) MouseMoved(ev *desktop.MouseEvent) {
	s.machine.PointerMove(s.toCanvas(ev.Position))
	if s.machine.Active() {
		s.Refresh()
	}
}

func (s *Surface) MouseOut() {
	s.machine.PointerLeave()
	s.Refresh()
}

// TappedSecondary consumes the event so no context menu pops over the
// canvas; the secondary button is the resize handle.
func (s *Surface) TappedSecondary(ev *fyne.PointEvent) {}
