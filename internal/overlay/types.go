// Package overlay holds the annotation entities placed over the base image
// and the bounded undo history of their collections.
package overlay

import (
	"image"
	"time"

	"pixel-blur/pkg/geometry"

	"github.com/google/uuid"
)

// Shape selects the clip geometry of a lens or sticker.
type Shape string

const (
	ShapeCircle  Shape = "circle"
	ShapeRounded Shape = "rounded"
)

// LensMode selects the effect a lens applies to the underlying image.
type LensMode string

const (
	LensBlur    LensMode = "blur"
	LensMagnify LensMode = "magnify"
)

// Lens is a region applying a blur or magnification effect to the base image.
// Rect is the on-canvas display rectangle, always clamped to canvas bounds.
type Lens struct {
	ID    uuid.UUID
	Rect  geometry.Rect
	Shape Shape
	Mode  LensMode

	// Source is the canvas-space point sampled as the magnification center
	// at creation time; SourceImage is the same point in source-image pixel
	// coordinates so sampling stays correct if the canvas size changes.
	Source      geometry.Point2D
	SourceImage geometry.Point2D

	Blur          float64
	Magnification float64
	CreatedAt     time.Time
}

// Contains reports whether the canvas point hits the lens clip shape.
func (l Lens) Contains(p geometry.Point2D) bool {
	return shapeContains(l.Shape, l.Rect, p)
}

// Sticker is a decorative bitmap placed and resized independently of the
// base image. Image is the decoded sticker bitmap, shared by reference
// across all stickers from the same source and immutable after load.
type Sticker struct {
	ID    uuid.UUID
	Rect  geometry.Rect
	Shape Shape
	Image image.Image
}

// Contains reports whether the canvas point hits the sticker clip shape.
func (s Sticker) Contains(p geometry.Point2D) bool {
	return shapeContains(s.Shape, s.Rect, p)
}

// AspectRatio returns the natural width/height ratio of the sticker bitmap,
// or 1 when the bitmap is missing or degenerate.
func (s Sticker) AspectRatio() float64 {
	if s.Image == nil {
		return 1
	}
	b := s.Image.Bounds()
	if b.Dy() == 0 {
		return 1
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// Text is a free text block anchored at its top-left corner. The bounding
// box is derived from content and styling, never stored.
type Text struct {
	ID    uuid.UUID
	Pos   geometry.Point2D
	Text  string
	Color string // hex-like, e.g. "#ff0040"
	Size  float64
	Font  string
}

// Preview is the live, uncommitted shape shown while a new region is being
// drawn.
type Preview struct {
	Rect  geometry.Rect
	Shape Shape
}

// Snapshot is a deep value copy of all three collections, captured before a
// mutation for undo.
type Snapshot struct {
	Lenses   []Lens
	Stickers []Sticker
	Texts    []Text
}

func shapeContains(shape Shape, r geometry.Rect, p geometry.Point2D) bool {
	if shape == ShapeCircle {
		return geometry.EllipseContains(r, p)
	}
	// Rounded rectangles treat plain containment as a hit.
	return r.Contains(p)
}

func newID() uuid.UUID {
	return uuid.New()
}
