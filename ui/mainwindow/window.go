// Package mainwindow assembles the application window: canvas, side panel,
// menus, status bar, and keyboard shortcuts.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"pixel-blur/internal/app"
	"pixel-blur/internal/export"
	"pixel-blur/ui/canvas"
	"pixel-blur/ui/panels"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const prefKeyLastDir = "lastDirectory"

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".tif", ".webp"}

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	surface   *canvas.Surface
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates the main window over the given session state.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Pixel Blur")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1100, 720))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.surface = canvas.NewSurface(mw.state)

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.surface)
	mw.sidePanel.OnOpenImage = mw.onOpenImage
	mw.sidePanel.OnOpenSticker = mw.onOpenSticker
	mw.sidePanel.OnExport = mw.onExport

	mw.statusBar = widget.NewLabel("Open an image to start")

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		mw.surface,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Open Sticker...", mw.onOpenSticker),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Overlays", mw.onReset),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))
}

// setupShortcuts registers the keyboard bindings at the shell boundary.
// Ctrl/Cmd+Z undoes, Escape clears the text selection.
func (mw *MainWindow) setupShortcuts() {
	undoShortcut := &desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierShortcutDefault,
	}
	mw.Canvas().AddShortcut(undoShortcut, func(fyne.Shortcut) {
		mw.onUndo()
	})

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.surface.Machine().ClearTextSelection()
			mw.updateStatus("Text selection cleared")
		}
	})
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.surface.Refresh()
		mw.updateStatus(fmt.Sprintf("Loaded %v", data))
	})
	mw.state.On(app.EventStickerLoaded, func(data interface{}) {
		mw.surface.Refresh()
		mw.updateStatus(fmt.Sprintf("Sticker %v ready, click or drag to place", data))
	})
	mw.state.On(app.EventOverlaysChanged, func(interface{}) {
		mw.surface.Refresh()
	})
	mw.state.On(app.EventStatus, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("%v", data))
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) onUndo() {
	mw.surface.Machine().Undo()
	mw.surface.Refresh()
	mw.updateStatus("Undone")
}

func (mw *MainWindow) onReset() {
	mw.state.Reset()
	mw.updateStatus("Overlays cleared")
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir remembers the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) onOpenImage() {
	mw.openFile("image", func(name string, reader fyne.URIReadCloser) {
		mw.state.LoadImage(name, reader)
	})
}

func (mw *MainWindow) onOpenSticker() {
	mw.openFile("sticker", func(name string, reader fyne.URIReadCloser) {
		mw.state.LoadSticker(name, reader)
	})
}

// openFile shows an image picker and hands the reader to load; load owns
// closing the reader.
func (mw *MainWindow) openFile(what string, load func(string, fyne.URIReadCloser)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		mw.saveLastDir(reader.URI().Path())
		mw.updateStatus(fmt.Sprintf("Loading %s %s...", what, reader.URI().Name()))
		load(reader.URI().Name(), reader)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	if !mw.state.HasImage() {
		mw.updateStatus("Nothing to export, open an image first")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		mw.saveLastDir(writer.URI().Path())
		if err := export.EncodePNG(mw.surface.Snapshot(), writer); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus(fmt.Sprintf("Exported %s", writer.URI().Name()))
	}, mw.Window)
	fd.SetFileName(export.DefaultFilename)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}
