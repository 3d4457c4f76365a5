// Package app holds the session state shared by the UI shell: the decoded
// base image, the sticker bitmap, the configuration surface, the overlay
// store, and the event bus the panels and canvas subscribe to.
package app

import (
	"image"
	"io"
	"log"
	"sync"

	// Decoder registrations for the image and sticker pickers.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pixel-blur/internal/overlay"
	"pixel-blur/internal/typeset"
)

// EventType identifies application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventStickerLoaded
	EventOverlaysChanged
	EventSettingsChanged
	EventStatus
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// State holds the session state for one window.
type State struct {
	mu sync.RWMutex

	image       image.Image
	imageName   string
	sticker     image.Image
	stickerName string

	// Request tokens for in-flight decodes. A completed decode only lands
	// if its token is still the latest, so a slow decode can never
	// overwrite a newer selection.
	imageToken   uint64
	stickerToken uint64

	Settings *Settings
	Store    *overlay.Store

	listeners map[EventType][]EventListener
}

// NewState creates a fresh session.
func NewState() *State {
	return &State{
		Settings:  NewSettings(),
		Store:     overlay.NewStore(typeset.Measure),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Image returns the decoded base image, or nil before one is loaded.
func (s *State) Image() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// ImageName returns the display name of the loaded image.
func (s *State) ImageName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageName
}

// HasImage reports whether a base image is loaded.
func (s *State) HasImage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image != nil
}

// Sticker returns the current sticker bitmap, or nil.
func (s *State) Sticker() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sticker
}

// LoadImage decodes r off the UI goroutine and, if this request is still
// the latest, installs the result as the base image. Loading a new image
// starts a fresh annotation session: all overlays and history are dropped.
// Decode failures are logged and leave the previous image in place.
func (s *State) LoadImage(name string, r io.Reader) {
	s.mu.Lock()
	s.imageToken++
	token := s.imageToken
	s.mu.Unlock()

	go func() {
		img, format, err := image.Decode(r)
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		if err != nil {
			log.Printf("decode image %s: %v", name, err)
			return
		}

		s.mu.Lock()
		if token != s.imageToken {
			s.mu.Unlock()
			log.Printf("decode image %s: superseded, discarding", name)
			return
		}
		s.image = img
		s.imageName = name
		s.mu.Unlock()

		s.Store.Clear()
		log.Printf("loaded image %s (%s, %dx%d)", name, format, img.Bounds().Dx(), img.Bounds().Dy())
		s.Emit(EventImageLoaded, name)
	}()
}

// LoadSticker decodes r off the UI goroutine and installs the result as
// the sticker source. Existing placed stickers are cleared so the canvas
// never mixes bitmaps from different sources.
func (s *State) LoadSticker(name string, r io.Reader) {
	s.mu.Lock()
	s.stickerToken++
	token := s.stickerToken
	s.mu.Unlock()

	go func() {
		img, _, err := image.Decode(r)
		if c, ok := r.(io.Closer); ok {
			c.Close()
		}
		if err != nil {
			log.Printf("decode sticker %s: %v", name, err)
			return
		}

		s.mu.Lock()
		if token != s.stickerToken {
			s.mu.Unlock()
			log.Printf("decode sticker %s: superseded, discarding", name)
			return
		}
		s.sticker = img
		s.stickerName = name
		s.mu.Unlock()

		s.Store.ClearStickers()
		s.Emit(EventStickerLoaded, name)
	}()
}

// Reset drops every overlay and the undo history, keeping the images.
func (s *State) Reset() {
	s.Store.Clear()
	s.Emit(EventOverlaysChanged, nil)
}
