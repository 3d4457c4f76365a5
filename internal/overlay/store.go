package overlay

import (
	"pixel-blur/pkg/geometry"

	"github.com/google/uuid"
)

// historyLimit bounds the undo history; the oldest snapshot is dropped when
// the limit is exceeded.
const historyLimit = 50

// MeasureFunc computes the rendered size of a text block for the given font
// name and size. The store uses it to derive text bounding boxes on demand.
type MeasureFunc func(text, font string, size float64) geometry.Size

type measureKey struct {
	text string
	font string
	size float64
}

// Store holds the ordered overlay collections plus the bounded undo history.
// Entities are ordered oldest first; hit lookups scan newest first so the
// top-most entity wins.
type Store struct {
	lenses   []Lens
	stickers []Sticker
	texts    []Text

	history   []Snapshot
	restoring bool

	measure      MeasureFunc
	measureCache map[measureKey]geometry.Size
}

// NewStore creates an empty store. measure may be nil, in which case text
// bounding boxes degenerate to zero-size rects anchored at the text position.
func NewStore(measure MeasureFunc) *Store {
	return &Store{
		measure:      measure,
		measureCache: make(map[measureKey]geometry.Size),
	}
}

// Lenses returns the lens collection, oldest first.
func (s *Store) Lenses() []Lens { return s.lenses }

// Stickers returns the sticker collection, oldest first.
func (s *Store) Stickers() []Sticker { return s.stickers }

// Texts returns the text collection, oldest first.
func (s *Store) Texts() []Text { return s.texts }

// HistoryLen returns the number of retained undo snapshots.
func (s *Store) HistoryLen() int { return len(s.history) }

// AddLens appends a lens, assigning an id when missing.
func (s *Store) AddLens(l Lens) Lens {
	s.pushHistory()
	if l.ID == uuid.Nil {
		l.ID = newID()
	}
	s.lenses = append(s.lenses, l)
	return l
}

// AddSticker appends a sticker, assigning an id when missing.
func (s *Store) AddSticker(st Sticker) Sticker {
	s.pushHistory()
	if st.ID == uuid.Nil {
		st.ID = newID()
	}
	s.stickers = append(s.stickers, st)
	return st
}

// AddText appends a text block, assigning an id when missing.
func (s *Store) AddText(t Text) Text {
	s.pushHistory()
	if t.ID == uuid.Nil {
		t.ID = newID()
	}
	s.texts = append(s.texts, t)
	return t
}

// UpdateLens applies patch to the lens with the given id. It is a no-op
// returning false when the id is absent.
func (s *Store) UpdateLens(id uuid.UUID, patch func(*Lens)) bool {
	for i := range s.lenses {
		if s.lenses[i].ID == id {
			s.pushHistory()
			patch(&s.lenses[i])
			return true
		}
	}
	return false
}

// UpdateSticker applies patch to the sticker with the given id. It is a
// no-op returning false when the id is absent.
func (s *Store) UpdateSticker(id uuid.UUID, patch func(*Sticker)) bool {
	for i := range s.stickers {
		if s.stickers[i].ID == id {
			s.pushHistory()
			patch(&s.stickers[i])
			return true
		}
	}
	return false
}

// UpdateText applies patch to the text with the given id. It is a no-op
// returning false when the id is absent.
func (s *Store) UpdateText(id uuid.UUID, patch func(*Text)) bool {
	for i := range s.texts {
		if s.texts[i].ID == id {
			s.pushHistory()
			patch(&s.texts[i])
			return true
		}
	}
	return false
}

// PushHistory captures the current state as an undo snapshot. Interaction
// gestures call it once at their first mutation so a whole drag or resize
// undoes as a single step; in-gesture geometry updates then go through the
// Set* mutators, which capture nothing.
func (s *Store) PushHistory() {
	s.pushHistory()
}

// SetLensRect replaces a lens's display rectangle without capturing history.
func (s *Store) SetLensRect(id uuid.UUID, r geometry.Rect) bool {
	for i := range s.lenses {
		if s.lenses[i].ID == id {
			s.lenses[i].Rect = r
			return true
		}
	}
	return false
}

// SetStickerRect replaces a sticker's display rectangle without capturing
// history.
func (s *Store) SetStickerRect(id uuid.UUID, r geometry.Rect) bool {
	for i := range s.stickers {
		if s.stickers[i].ID == id {
			s.stickers[i].Rect = r
			return true
		}
	}
	return false
}

// SetTextPos moves a text block without capturing history.
func (s *Store) SetTextPos(id uuid.UUID, p geometry.Point2D) bool {
	for i := range s.texts {
		if s.texts[i].ID == id {
			s.texts[i].Pos = p
			return true
		}
	}
	return false
}

// SetTextSize replaces a text block's font size without capturing history.
func (s *Store) SetTextSize(id uuid.UUID, size float64) bool {
	for i := range s.texts {
		if s.texts[i].ID == id {
			s.texts[i].Size = size
			return true
		}
	}
	return false
}

// SetTextStyle rewrites a text block's content and style without capturing
// history. Live style mirroring from the panel controls runs through here
// on every change, so a slider drag never floods the history.
func (s *Store) SetTextStyle(id uuid.UUID, text, color string, size float64, font string) bool {
	for i := range s.texts {
		if s.texts[i].ID == id {
			s.texts[i].Text = text
			s.texts[i].Color = color
			s.texts[i].Size = size
			s.texts[i].Font = font
			return true
		}
	}
	return false
}

// TextByID returns a copy of the text with the given id.
func (s *Store) TextByID(id uuid.UUID) (Text, bool) {
	for i := range s.texts {
		if s.texts[i].ID == id {
			return s.texts[i], true
		}
	}
	return Text{}, false
}

// LensByID returns a copy of the lens with the given id.
func (s *Store) LensByID(id uuid.UUID) (Lens, bool) {
	for i := range s.lenses {
		if s.lenses[i].ID == id {
			return s.lenses[i], true
		}
	}
	return Lens{}, false
}

// StickerByID returns a copy of the sticker with the given id.
func (s *Store) StickerByID(id uuid.UUID) (Sticker, bool) {
	for i := range s.stickers {
		if s.stickers[i].ID == id {
			return s.stickers[i], true
		}
	}
	return Sticker{}, false
}

// ReplaceAll swaps in the given snapshot as the live collections.
func (s *Store) ReplaceAll(snap Snapshot) {
	s.pushHistory()
	s.apply(snap)
}

// Clear removes all entities and the undo history. Used by reset and by a
// new base-image load.
func (s *Store) Clear() {
	s.lenses = nil
	s.stickers = nil
	s.texts = nil
	s.history = nil
}

// ClearStickers removes all stickers, capturing history first. Used when the
// sticker source image changes.
func (s *Store) ClearStickers() {
	if len(s.stickers) == 0 {
		return
	}
	s.pushHistory()
	s.stickers = nil
}

// Undo restores the most recent snapshot. It is a silent no-op when the
// history is empty. History pushes are suppressed while the restore is in
// flight so the undo does not re-capture the just-restored state.
func (s *Store) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	snap := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	s.restoring = true
	s.apply(snap)
	s.restoring = false
	return true
}

// Snapshot returns a deep value copy of the current collections.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Lenses:   append([]Lens(nil), s.lenses...),
		Stickers: append([]Sticker(nil), s.stickers...),
		Texts:    append([]Text(nil), s.texts...),
	}
}

// LensAt returns the top-most lens containing the canvas point.
func (s *Store) LensAt(p geometry.Point2D) (Lens, bool) {
	for i := len(s.lenses) - 1; i >= 0; i-- {
		if s.lenses[i].Contains(p) {
			return s.lenses[i], true
		}
	}
	return Lens{}, false
}

// StickerAt returns the top-most sticker containing the canvas point.
func (s *Store) StickerAt(p geometry.Point2D) (Sticker, bool) {
	for i := len(s.stickers) - 1; i >= 0; i-- {
		if s.stickers[i].Contains(p) {
			return s.stickers[i], true
		}
	}
	return Sticker{}, false
}

// TextAt returns the top-most text whose derived bounding box contains the
// canvas point.
func (s *Store) TextAt(p geometry.Point2D) (Text, bool) {
	for i := len(s.texts) - 1; i >= 0; i-- {
		if s.TextBounds(s.texts[i]).Contains(p) {
			return s.texts[i], true
		}
	}
	return Text{}, false
}

// TextBounds derives the on-canvas bounding box of a text block from its
// content, font, and size. Results are memoized by (text, font, size).
func (s *Store) TextBounds(t Text) geometry.Rect {
	if s.measure == nil {
		return geometry.Rect{X: t.Pos.X, Y: t.Pos.Y}
	}
	key := measureKey{text: t.Text, font: t.Font, size: t.Size}
	size, ok := s.measureCache[key]
	if !ok {
		size = s.measure(t.Text, t.Font, t.Size)
		s.measureCache[key] = size
	}
	return geometry.Rect{X: t.Pos.X, Y: t.Pos.Y, Width: size.Width, Height: size.Height}
}

func (s *Store) apply(snap Snapshot) {
	s.lenses = snap.Lenses
	s.stickers = snap.Stickers
	s.texts = snap.Texts
}

// pushHistory captures the pre-mutation state. Suppressed during undo to
// preserve the push/pop invariant.
func (s *Store) pushHistory() {
	if s.restoring {
		return
	}
	s.history = append(s.history, s.Snapshot())
	if len(s.history) > historyLimit {
		s.history = s.history[len(s.history)-historyLimit:]
	}
}
