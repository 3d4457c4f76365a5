package interact

import (
	"image"
	"math"
	"strings"
	"time"

	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"

	"github.com/google/uuid"
)

const (
	// clickThreshold separates a click from a drag: movement below this in
	// both axes is a click.
	clickThreshold = 8

	// minResize is the smallest extent a resize gesture can reach.
	minResize = 20

	// minStickerSize is the floor for a newly created sticker.
	minStickerSize = 40

	// Magnify lenses created by a click are displaced from the anchor so
	// source and target read as two distinct points.
	magnifyOffsetX = 0.65
	magnifyOffsetY = -0.25
)

// Deps wires the machine to its collaborators. All funcs are read at event
// time so the machine always sees current values.
type Deps struct {
	Store        *overlay.Store
	Config       func() Config
	CanvasSize   func() geometry.Size
	Fit          func() geometry.FitTransform
	StickerImage func() image.Image
}

// Machine consumes raw pointer events and drives creation, selection,
// dragging, and resizing of overlay entities. It is single-threaded; all
// transitions happen synchronously inside the event handlers.
type Machine struct {
	deps     Deps
	gesture  gesture
	selected uuid.UUID // active text entity being live-edited
	preview  *overlay.Preview
}

// New creates a machine in the idle state.
func New(deps Deps) *Machine {
	return &Machine{deps: deps, gesture: idle{}}
}

// Preview returns the live preview shape, or nil outside a drawing gesture.
func (m *Machine) Preview() *overlay.Preview { return m.preview }

// Active reports whether a pointer gesture is in progress.
func (m *Machine) Active() bool {
	_, quiet := m.gesture.(idle)
	return !quiet
}

// SelectedText returns the id of the active text entity, if any.
func (m *Machine) SelectedText() (uuid.UUID, bool) {
	return m.selected, m.selected != uuid.Nil
}

// ClearTextSelection deselects the active text entity (Escape).
func (m *Machine) ClearTextSelection() { m.selected = uuid.Nil }

// Undo pops the latest overlay snapshot. Any in-flight gesture is abandoned
// so it cannot keep mutating restored entities.
func (m *Machine) Undo() {
	m.reset()
	m.deps.Store.Undo()
}

// PointerDown starts a gesture. Hit-testing runs text, then sticker, then
// lens, top-most first within each collection; the primary button starts a
// drag on a hit (or a preview on empty canvas), the secondary button starts
// a resize.
func (m *Machine) PointerDown(p geometry.Point2D, btn Button) {
	if btn != ButtonPrimary && btn != ButtonSecondary {
		return
	}
	store := m.deps.Store

	if t, ok := store.TextAt(p); ok {
		bounds := store.TextBounds(t)
		if btn == ButtonPrimary {
			m.selected = t.ID
			m.gesture = &dragging{
				kind:   kindText,
				id:     t.ID,
				offset: p.Sub(t.Pos),
				size:   geometry.Size{Width: bounds.Width, Height: bounds.Height},
			}
		} else {
			m.gesture = &resizing{
				kind:     kindText,
				id:       t.ID,
				anchor:   p,
				start:    bounds,
				lines:    lineCount(t.Text),
				maxChars: longestLine(t.Text),
			}
		}
		return
	}

	if st, ok := store.StickerAt(p); ok {
		if btn == ButtonPrimary {
			m.gesture = &dragging{
				kind:   kindSticker,
				id:     st.ID,
				offset: p.Sub(st.Rect.TopLeft()),
				size:   geometry.Size{Width: st.Rect.Width, Height: st.Rect.Height},
			}
		} else {
			m.gesture = &resizing{
				kind:   kindSticker,
				id:     st.ID,
				anchor: p,
				start:  st.Rect,
				shape:  st.Shape,
				ratio:  st.AspectRatio(),
			}
		}
		return
	}

	if l, ok := store.LensAt(p); ok {
		if btn == ButtonPrimary {
			m.gesture = &dragging{
				kind:   kindLens,
				id:     l.ID,
				offset: p.Sub(l.Rect.TopLeft()),
				size:   geometry.Size{Width: l.Rect.Width, Height: l.Rect.Height},
			}
		} else {
			m.gesture = &resizing{
				kind:   kindLens,
				id:     l.ID,
				anchor: p,
				start:  l.Rect,
				shape:  l.Shape,
			}
		}
		return
	}

	if btn == ButtonPrimary {
		m.gesture = previewing{anchor: p, current: p}
		m.preview = m.buildPreview(p, p)
	}
}

// PointerMove advances whichever gesture is active. At most one transient
// state exists at a time.
func (m *Machine) PointerMove(p geometry.Point2D) {
	switch g := m.gesture.(type) {
	case previewing:
		g.current = p
		m.gesture = g
		m.preview = m.buildPreview(g.anchor, p)
	case *dragging:
		m.moveEntity(g, p)
	case *resizing:
		m.resizeEntity(g, p)
	}
}

// PointerUp finishes the gesture. A completed preview commits a new entity
// per the active mode; drags and resizes have already been applied live.
// Transient state is discarded regardless of outcome.
func (m *Machine) PointerUp(p geometry.Point2D) {
	if g, ok := m.gesture.(previewing); ok {
		m.commit(g.anchor, p)
	}
	m.reset()
}

// PointerLeave abandons any gesture in progress.
func (m *Machine) PointerLeave() { m.reset() }

func (m *Machine) reset() {
	m.gesture = idle{}
	m.preview = nil
}

func (m *Machine) buildPreview(anchor, current geometry.Point2D) *overlay.Preview {
	cfg := m.deps.Config().Normalized()
	shape := cfg.Shape
	if cfg.Mode == ModeText {
		shape = overlay.ShapeRounded
	}
	return &overlay.Preview{Rect: normRect(anchor, current), Shape: shape}
}

func (m *Machine) moveEntity(g *dragging, p geometry.Point2D) {
	size := m.deps.CanvasSize()
	pos := p.Sub(g.offset)
	r := geometry.ClampRect(
		geometry.Rect{X: pos.X, Y: pos.Y, Width: g.size.Width, Height: g.size.Height},
		size.Width, size.Height,
	)

	m.pushOnce(&g.pushed)
	switch g.kind {
	case kindLens:
		m.deps.Store.SetLensRect(g.id, r)
	case kindSticker:
		m.deps.Store.SetStickerRect(g.id, r)
	case kindText:
		m.deps.Store.SetTextPos(g.id, r.TopLeft())
	}
}

func (m *Machine) resizeEntity(g *resizing, p geometry.Point2D) {
	size := m.deps.CanvasSize()
	delta := p.Sub(g.anchor)

	m.pushOnce(&g.pushed)
	switch g.kind {
	case kindText:
		m.deps.Store.SetTextSize(g.id, textSizeFor(g, delta))
	case kindLens:
		m.deps.Store.SetLensRect(g.id, resizeRect(g, delta, size, 0))
	case kindSticker:
		m.deps.Store.SetStickerRect(g.id, resizeRect(g, delta, size, g.ratio))
	}
}

// resizeRect applies a resize delta to the start geometry, anchored at the
// top-left. Circle shapes take the larger of the two deltas, bounded by the
// remaining canvas space in both axes, so circularity survives every resize.
// A non-zero ratio re-imposes the sticker's natural aspect.
func resizeRect(g *resizing, delta geometry.Point2D, canvas geometry.Size, ratio float64) geometry.Rect {
	maxW := canvas.Width - g.start.X
	maxH := canvas.Height - g.start.Y

	w := g.start.Width + delta.X
	h := g.start.Height + delta.Y

	if g.shape == overlay.ShapeCircle {
		side := math.Max(w, h)
		limit := math.Min(maxW, maxH)
		// Entities hugging an edge can leave less room than the floor; the
		// canvas bound wins so the rect never spills outside.
		side = geometry.Clamp(side, math.Min(minResize, limit), limit)
		return geometry.Rect{X: g.start.X, Y: g.start.Y, Width: side, Height: side}
	}

	w = geometry.Clamp(w, math.Min(minResize, maxW), maxW)
	h = geometry.Clamp(h, math.Min(minResize, maxH), maxH)
	if ratio > 0 {
		w, h = fitAspect(w, h, ratio)
	}
	return geometry.Rect{X: g.start.X, Y: g.start.Y, Width: w, Height: h}
}

// textSizeFor back-solves a font size from the requested box given the line
// count and longest-line character count. Text metrics are non-linear, so
// this is a deliberate best-effort heuristic rather than exact fitting.
func textSizeFor(g *resizing, delta geometry.Point2D) float64 {
	w := math.Max(g.start.Width+delta.X, 1)
	h := math.Max(g.start.Height+delta.Y, 1)

	fromHeight := h / (float64(maxInt(g.lines, 1)) * 1.2)
	size := fromHeight
	if g.maxChars > 0 {
		// Average glyph advance approximated as 0.6em.
		fromWidth := w / (float64(g.maxChars) * 0.6)
		size = math.Min(fromHeight, fromWidth)
	}
	return geometry.Clamp(size, MinTextSize, MaxTextSize)
}

// commit turns a finished preview gesture into a new entity.
func (m *Machine) commit(anchor, p geometry.Point2D) {
	cfg := m.deps.Config().Normalized()
	canvas := m.deps.CanvasSize()
	delta := p.Sub(anchor)
	isClick := math.Abs(delta.X) < clickThreshold && math.Abs(delta.Y) < clickThreshold

	switch cfg.Mode {
	case ModeBlur, ModeMagnify:
		m.commitLens(cfg, anchor, p, isClick, canvas)
	case ModeSticker:
		m.commitSticker(cfg, anchor, p, isClick, canvas)
	case ModeText:
		m.commitText(cfg, anchor, p, isClick, canvas)
	}
}

func (m *Machine) commitLens(cfg Config, anchor, p geometry.Point2D, isClick bool, canvas geometry.Size) {
	var r geometry.Rect
	if isClick {
		center := anchor
		if cfg.Mode == ModeMagnify {
			center = anchor.Add(geometry.Point2D{
				X: cfg.LensSize * magnifyOffsetX,
				Y: cfg.LensSize * magnifyOffsetY,
			})
		}
		r = geometry.Rect{
			X:      center.X - cfg.LensSize/2,
			Y:      center.Y - cfg.LensSize/2,
			Width:  cfg.LensSize,
			Height: cfg.LensSize,
		}
	} else {
		r = normRect(anchor, p)
		r.Width = math.Max(r.Width, minResize)
		r.Height = math.Max(r.Height, minResize)
	}
	r = geometry.ClampRect(r, canvas.Width, canvas.Height)

	lens := overlay.Lens{
		Rect:          r,
		Shape:         cfg.Shape,
		Mode:          overlay.LensBlur,
		Blur:          cfg.Blur,
		Magnification: cfg.Magnification,
		CreatedAt:     time.Now(),
	}
	if cfg.Mode == ModeMagnify {
		lens.Mode = overlay.LensMagnify
		lens.Source = anchor
		lens.SourceImage = m.deps.Fit().CanvasToImage(anchor)
	}
	m.deps.Store.AddLens(lens)
}

func (m *Machine) commitSticker(cfg Config, anchor, p geometry.Point2D, isClick bool, canvas geometry.Size) {
	img := m.deps.StickerImage()
	if img == nil {
		return
	}

	var r geometry.Rect
	if isClick {
		r = geometry.Rect{
			X:      anchor.X - cfg.LensSize/2,
			Y:      anchor.Y - cfg.LensSize/2,
			Width:  cfg.LensSize,
			Height: cfg.LensSize,
		}
	} else {
		r = normRect(anchor, p)
	}

	b := img.Bounds()
	ratio := 1.0
	if b.Dy() > 0 {
		ratio = float64(b.Dx()) / float64(b.Dy())
	}
	r.Width, r.Height = fitAspect(r.Width, r.Height, ratio)
	if r.Width < minStickerSize || r.Height < minStickerSize {
		// Grow both dimensions together so the floor never skews the ratio.
		if ratio >= 1 {
			r.Height = minStickerSize
			r.Width = minStickerSize * ratio
		} else {
			r.Width = minStickerSize
			r.Height = minStickerSize / ratio
		}
	}
	r = geometry.ClampRect(r, canvas.Width, canvas.Height)

	m.deps.Store.AddSticker(overlay.Sticker{
		Rect:  r,
		Shape: cfg.Shape,
		Image: img,
	})
}

func (m *Machine) commitText(cfg Config, anchor, p geometry.Point2D, isClick bool, canvas geometry.Size) {
	if strings.TrimSpace(cfg.Text) == "" {
		return
	}

	probe := overlay.Text{
		Text:  cfg.Text,
		Color: cfg.TextColor,
		Size:  cfg.TextSize,
		Font:  cfg.TextFont,
	}
	bounds := m.deps.Store.TextBounds(probe)

	var pos geometry.Point2D
	if isClick {
		pos = geometry.Point2D{X: anchor.X - bounds.Width/2, Y: anchor.Y - bounds.Height/2}
	} else {
		pos = normRect(anchor, p).TopLeft()
	}
	r := geometry.ClampRect(
		geometry.Rect{X: pos.X, Y: pos.Y, Width: bounds.Width, Height: bounds.Height},
		canvas.Width, canvas.Height,
	)
	probe.Pos = r.TopLeft()

	added := m.deps.Store.AddText(probe)
	m.selected = added.ID
}

func (m *Machine) pushOnce(pushed *bool) {
	if !*pushed {
		m.deps.Store.PushHistory()
		*pushed = true
	}
}

// fitAspect shrinks whichever dimension overshoots the target ratio.
func fitAspect(w, h, ratio float64) (float64, float64) {
	if ratio <= 0 || h <= 0 {
		return w, h
	}
	if w/h < ratio {
		h = w / ratio
	} else {
		w = h * ratio
	}
	return w, h
}

func normRect(a, b geometry.Point2D) geometry.Rect {
	return geometry.Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func longestLine(s string) int {
	longest := 0
	for _, line := range strings.Split(s, "\n") {
		if n := len([]rune(line)); n > longest {
			longest = n
		}
	}
	return longest
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
