// Package interact turns raw pointer events into overlay mutations: it
// drives creation, selection, dragging, and resizing of overlay entities and
// produces the live preview shape while a new region is drawn.
package interact

import (
	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"
)

// Mode is the active annotation tool.
type Mode string

const (
	ModeBlur    Mode = "blur"
	ModeMagnify Mode = "magnify"
	ModeSticker Mode = "sticker"
	ModeText    Mode = "text"
)

// Configuration surface bounds. Out-of-range values are clamped, never
// rejected.
const (
	MinLensSize = 80
	MaxLensSize = 420
	MinTextSize = 12
	MaxTextSize = 72
)

// Config is a point-in-time snapshot of the configuration surface, consumed
// as plain values.
type Config struct {
	Mode          Mode
	Shape         overlay.Shape
	LensSize      float64
	Blur          float64
	Magnification float64
	Text          string
	TextColor     string
	TextSize      float64
	TextFont      string
}

// Normalized returns the config with every ranged field clamped to its
// bounds and empty enums replaced by defaults.
func (c Config) Normalized() Config {
	if c.Mode == "" {
		c.Mode = ModeBlur
	}
	if c.Shape == "" {
		c.Shape = overlay.ShapeCircle
	}
	c.LensSize = geometry.Clamp(c.LensSize, MinLensSize, MaxLensSize)
	c.Blur = geometry.Clamp(c.Blur, 2, 30)
	c.Magnification = geometry.Clamp(c.Magnification, 1, 4)
	c.TextSize = geometry.Clamp(c.TextSize, MinTextSize, MaxTextSize)
	return c
}
