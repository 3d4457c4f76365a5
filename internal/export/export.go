// Package export writes the composited surface to disk.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// DefaultFilename is the suggested name in the save dialog.
const DefaultFilename = "pixel-blur.png"

// EncodePNG writes img to w losslessly.
func EncodePNG(img image.Image, w io.Writer) error {
	if img == nil {
		return fmt.Errorf("export: nil image")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}
