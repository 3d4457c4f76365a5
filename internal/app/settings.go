package app

import (
	"sync"

	"pixel-blur/internal/interact"
	"pixel-blur/internal/overlay"
	"pixel-blur/internal/typeset"
	"pixel-blur/pkg/geometry"
)

// Background selects what fills the canvas behind the overlays.
type Background string

const (
	BackgroundImage Background = "image"
	BackgroundBlack Background = "black"
	BackgroundWhite Background = "white"
)

// Settings is the live configuration surface the panels write and the
// interaction machine reads. Out-of-range values are clamped on write,
// never rejected.
type Settings struct {
	mu sync.RWMutex

	mode          interact.Mode
	shape         overlay.Shape
	lensSize      float64
	blur          float64
	magnification float64
	text          string
	textColor     string
	textSize      float64
	textFont      string
	background    Background
}

// NewSettings returns settings with the startup defaults.
func NewSettings() *Settings {
	return &Settings{
		mode:          interact.ModeBlur,
		shape:         overlay.ShapeCircle,
		lensSize:      200,
		blur:          10,
		magnification: 2,
		textColor:     "#ffffff",
		textSize:      32,
		textFont:      typeset.DefaultFont,
		background:    BackgroundImage,
	}
}

// Config returns a point-in-time snapshot for the interaction machine.
func (s *Settings) Config() interact.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return interact.Config{
		Mode:          s.mode,
		Shape:         s.shape,
		LensSize:      s.lensSize,
		Blur:          s.blur,
		Magnification: s.magnification,
		Text:          s.text,
		TextColor:     s.textColor,
		TextSize:      s.textSize,
		TextFont:      s.textFont,
	}
}

func (s *Settings) Mode() interact.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Settings) SetMode(m interact.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch m {
	case interact.ModeBlur, interact.ModeMagnify, interact.ModeSticker, interact.ModeText:
		s.mode = m
	}
}

func (s *Settings) Shape() overlay.Shape {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shape
}

func (s *Settings) SetShape(sh overlay.Shape) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sh == overlay.ShapeCircle || sh == overlay.ShapeRounded {
		s.shape = sh
	}
}

func (s *Settings) LensSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lensSize
}

func (s *Settings) SetLensSize(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lensSize = geometry.Clamp(v, interact.MinLensSize, interact.MaxLensSize)
}

func (s *Settings) Blur() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blur
}

func (s *Settings) SetBlur(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blur = geometry.Clamp(v, 2, 30)
}

func (s *Settings) Magnification() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.magnification
}

func (s *Settings) SetMagnification(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.magnification = geometry.Clamp(v, 1, 4)
}

func (s *Settings) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

func (s *Settings) SetText(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = t
}

func (s *Settings) TextColor() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textColor
}

func (s *Settings) SetTextColor(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textColor = c
}

func (s *Settings) TextSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textSize
}

func (s *Settings) SetTextSize(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textSize = geometry.Clamp(v, interact.MinTextSize, interact.MaxTextSize)
}

func (s *Settings) TextFont() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.textFont
}

func (s *Settings) SetTextFont(f string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.textFont = f
}

func (s *Settings) Background() Background {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *Settings) SetBackground(b Background) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch b {
	case BackgroundImage, BackgroundBlack, BackgroundWhite:
		s.background = b
	}
}
