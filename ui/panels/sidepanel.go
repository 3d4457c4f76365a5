// Package panels provides the configuration side panel.
package panels

import (
	"fmt"

	"pixel-blur/internal/app"
	"pixel-blur/internal/interact"
	"pixel-blur/internal/overlay"
	"pixel-blur/internal/typeset"
	"pixel-blur/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel hosts the tool configuration controls. File dialogs live in the
// main window; the panel exposes callbacks for them.
type SidePanel struct {
	state   *app.State
	surface *canvas.Surface

	content fyne.CanvasObject

	exportBtn *widget.Button

	// Assigned by the main window.
	OnOpenImage   func()
	OnOpenSticker func()
	OnExport      func()
}

// NewSidePanel builds the panel bound to the session state and surface.
func NewSidePanel(state *app.State, surface *canvas.Surface) *SidePanel {
	sp := &SidePanel{state: state, surface: surface}
	sp.buildUI()

	state.On(app.EventImageLoaded, func(interface{}) {
		sp.exportBtn.Enable()
	})
	return sp
}

// Container returns the panel for embedding in the window layout.
func (sp *SidePanel) Container() fyne.CanvasObject { return sp.content }

func (sp *SidePanel) buildUI() {
	settings := sp.state.Settings

	mode := widget.NewSelect([]string{"blur", "magnify", "sticker", "text"}, func(v string) {
		settings.SetMode(interact.Mode(v))
	})
	mode.SetSelected(string(settings.Mode()))

	shape := widget.NewSelect([]string{"circle", "rounded"}, func(v string) {
		settings.SetShape(overlay.Shape(v))
	})
	shape.SetSelected(string(settings.Shape()))

	sizeLabel := widget.NewLabel(fmt.Sprintf("Size: %.0f", settings.LensSize()))
	size := widget.NewSlider(interact.MinLensSize, interact.MaxLensSize)
	size.SetValue(settings.LensSize())
	size.OnChanged = func(v float64) {
		settings.SetLensSize(v)
		sizeLabel.SetText(fmt.Sprintf("Size: %.0f", settings.LensSize()))
	}

	blurLabel := widget.NewLabel(fmt.Sprintf("Blur: %.0f", settings.Blur()))
	blur := widget.NewSlider(2, 30)
	blur.SetValue(settings.Blur())
	blur.OnChanged = func(v float64) {
		settings.SetBlur(v)
		blurLabel.SetText(fmt.Sprintf("Blur: %.0f", settings.Blur()))
		sp.surface.Refresh()
	}

	magLabel := widget.NewLabel(fmt.Sprintf("Magnification: %.1fx", settings.Magnification()))
	mag := widget.NewSlider(1, 4)
	mag.Step = 0.1
	mag.SetValue(settings.Magnification())
	mag.OnChanged = func(v float64) {
		settings.SetMagnification(v)
		magLabel.SetText(fmt.Sprintf("Magnification: %.1fx", settings.Magnification()))
		sp.surface.Refresh()
	}

	text := widget.NewEntry()
	text.SetPlaceHolder("Text content")
	text.MultiLine = true
	text.OnChanged = func(v string) {
		settings.SetText(v)
		sp.mirrorTextStyle()
	}

	textSizeLabel := widget.NewLabel(fmt.Sprintf("Text size: %.0f", settings.TextSize()))
	textSize := widget.NewSlider(interact.MinTextSize, interact.MaxTextSize)
	textSize.SetValue(settings.TextSize())
	textSize.OnChanged = func(v float64) {
		settings.SetTextSize(v)
		textSizeLabel.SetText(fmt.Sprintf("Text size: %.0f", settings.TextSize()))
		sp.mirrorTextStyle()
	}

	textColor := widget.NewEntry()
	textColor.SetText(settings.TextColor())
	textColor.OnChanged = func(v string) {
		settings.SetTextColor(v)
		sp.mirrorTextStyle()
	}

	font := widget.NewSelect(typeset.FontNames(), func(v string) {
		settings.SetTextFont(v)
		sp.mirrorTextStyle()
	})
	font.SetSelected(settings.TextFont())

	background := widget.NewSelect([]string{"image", "black", "white"}, func(v string) {
		settings.SetBackground(app.Background(v))
		sp.surface.Refresh()
	})
	background.SetSelected(string(settings.Background()))

	openImage := widget.NewButton("Open Image...", func() {
		if sp.OnOpenImage != nil {
			sp.OnOpenImage()
		}
	})
	openSticker := widget.NewButton("Open Sticker...", func() {
		if sp.OnOpenSticker != nil {
			sp.OnOpenSticker()
		}
	})
	sp.exportBtn = widget.NewButton("Export PNG...", func() {
		if sp.OnExport != nil {
			sp.OnExport()
		}
	})
	sp.exportBtn.Disable()

	undo := widget.NewButton("Undo", func() {
		sp.surface.Machine().Undo()
		sp.surface.Refresh()
	})
	reset := widget.NewButton("Reset", func() {
		sp.state.Reset()
		sp.surface.Refresh()
	})

	sp.content = container.NewVScroll(container.NewVBox(
		widget.NewLabel("Tool"),
		mode,
		shape,
		sizeLabel, size,
		blurLabel, blur,
		magLabel, mag,
		widget.NewSeparator(),
		widget.NewLabel("Text"),
		text,
		textSizeLabel, textSize,
		widget.NewLabel("Color (#rrggbb)"),
		textColor,
		font,
		widget.NewSeparator(),
		widget.NewLabel("Canvas"),
		background,
		openImage,
		openSticker,
		widget.NewSeparator(),
		undo,
		reset,
		sp.exportBtn,
	))
}

// mirrorTextStyle applies the current text settings to the selected text
// overlay so style edits show up live. Continuous edits bypass the history;
// the text keeps its position.
func (sp *SidePanel) mirrorTextStyle() {
	id, ok := sp.surface.Machine().SelectedText()
	if !ok {
		return
	}
	settings := sp.state.Settings
	if sp.state.Store.SetTextStyle(id, settings.Text(), settings.TextColor(), settings.TextSize(), settings.TextFont()) {
		sp.surface.Refresh()
	}
}
