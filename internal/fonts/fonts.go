// Package fonts enumerates the bundled font assets for consumers that need
// the raw font data, such as the configuration surface's font picker.
package fonts

import (
	"encoding/base64"
	"log"

	"pixel-blur/internal/typeset"

	"golang.org/x/image/font/opentype"
)

// Asset is one bundled font: a display name plus inline-encoded TTF data.
type Asset struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64-encoded TTF
}

// List returns every bundled font as a name plus base64 data. If any face
// fails to parse the whole listing is abandoned and an empty list is
// returned; callers see "no fonts" rather than an error.
func List() []Asset {
	names := typeset.FontNames()
	assets := make([]Asset, 0, len(names))
	for _, name := range names {
		ttf := typeset.Sources[name]
		if _, err := opentype.Parse(ttf); err != nil {
			log.Printf("fonts: %s failed to parse: %v", name, err)
			return nil
		}
		assets = append(assets, Asset{
			Name: name,
			Data: base64.StdEncoding.EncodeToString(ttf),
		})
	}
	return assets
}
