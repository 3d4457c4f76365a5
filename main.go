// Package main provides the entry point for the Pixel Blur application.
package main

import (
	"log"

	"pixel-blur/internal/app"
	"pixel-blur/internal/version"
	"pixel-blur/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
)

const appTitle = "Pixel Blur"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	fyneApp := fyneapp.NewWithID("io.pixelblur.app")

	appState := app.NewState()

	win := mainwindow.New(fyneApp, appState)
	win.SetTitle(appTitle)

	win.ShowAndRun()
}
