// Command composetest renders a sample annotated scene headlessly and writes
// the composited result to a PNG, for eyeballing compositor changes without
// launching the UI.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"time"

	"pixel-blur/internal/compose"
	"pixel-blur/internal/export"
	"pixel-blur/internal/overlay"
	"pixel-blur/pkg/geometry"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func main() {
	imagePath := flag.String("image", "", "Path to the base image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	outPath := flag.String("out", "composetest.png", "Output PNG path")
	width := flag.Int("width", 1024, "Canvas width in pixels")
	height := flag.Int("height", 640, "Canvas height in pixels")
	blur := flag.Float64("blur", 12, "Blur strength for the sample blur lens")
	mag := flag.Float64("mag", 2, "Magnification for the sample magnify lens")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: composetest -image <path> [-out composetest.png] [-width 1024] [-height 640]")
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	scene := sampleScene(img, *width, *height, *blur, *mag)

	start := time.Now()
	out := compose.Render(scene)
	fmt.Printf("Rendered %dx%d scene in %s\n", *width, *height, time.Since(start))

	dst, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer dst.Close()

	if err := export.EncodePNG(out, dst); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// sampleScene places one of everything: a circular blur lens, a rounded
// magnify lens with its connector, a text block, and a live preview rect.
func sampleScene(img image.Image, w, h int, blur, mag float64) compose.Scene {
	cw, ch := float64(w), float64(h)
	fit := geometry.NewFitTransform(cw, ch, float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))

	source := geometry.Point2D{X: cw * 0.3, Y: ch * 0.6}
	lenses := []overlay.Lens{
		{
			Rect:      geometry.Rect{X: cw * 0.1, Y: ch * 0.1, Width: 180, Height: 180},
			Shape:     overlay.ShapeCircle,
			Mode:      overlay.LensBlur,
			Blur:      blur,
			CreatedAt: time.Now(),
		},
		{
			Rect:          geometry.Rect{X: cw * 0.55, Y: ch * 0.15, Width: 220, Height: 160},
			Shape:         overlay.ShapeRounded,
			Mode:          overlay.LensMagnify,
			Source:        source,
			SourceImage:   fit.CanvasToImage(source),
			Magnification: mag,
			CreatedAt:     time.Now(),
		},
	}

	texts := []overlay.Text{
		{
			Pos:   geometry.Point2D{X: cw * 0.1, Y: ch * 0.8},
			Text:  "composetest sample",
			Color: "#ffcc00",
			Size:  28,
			Font:  "Go Regular",
		},
	}

	return compose.Scene{
		Image:      img,
		Width:      w,
		Height:     h,
		Lenses:     lenses,
		Texts:      texts,
		Preview:    &overlay.Preview{Rect: geometry.Rect{X: cw * 0.4, Y: ch * 0.65, Width: 160, Height: 120}, Shape: overlay.ShapeCircle},
		Background: compose.BackgroundImage,
	}
}
