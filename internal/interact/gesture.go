package interact

import (
	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"

	"github.com/google/uuid"
)

// Button identifies the pointer button that started an event.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonSecondary Button = 2
)

// entityKind tags which collection a gesture targets.
type entityKind int

const (
	kindLens entityKind = iota
	kindSticker
	kindText
)

// gesture is the explicit tagged union of the machine's transient pointer
// states. Exactly one variant is active at a time, which rules out the
// inconsistent combinations a bag of nullable fields would allow.
type gesture interface {
	isGesture()
}

// idle: no pointer gesture in progress.
type idle struct{}

// previewing: primary button held on empty canvas; a new region is being
// drawn from anchor to the current point.
type previewing struct {
	anchor  geometry.Point2D
	current geometry.Point2D
}

// dragging: an existing entity follows the pointer, offset by the distance
// between the pointer and the entity origin at pointer-down. size is the
// entity extent at gesture start, used to clamp against canvas bounds.
type dragging struct {
	kind   entityKind
	id     uuid.UUID
	offset geometry.Point2D
	size   geometry.Size
	pushed bool // history captured for this gesture
}

// resizing: the pointer's travel from anchor is added to the entity's start
// geometry.
type resizing struct {
	kind     entityKind
	id       uuid.UUID
	anchor   geometry.Point2D
	start    geometry.Rect
	shape    overlay.Shape
	ratio    float64 // sticker natural aspect ratio
	lines    int     // line count (text only)
	maxChars int     // longest-line rune count (text only)
	pushed   bool
}

func (idle) isGesture()       {}
func (previewing) isGesture() {}
func (*dragging) isGesture()  {}
func (*resizing) isGesture()  {}
