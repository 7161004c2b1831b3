// Package main provides the entry point for the Keychain Studio application.
package main

import (
	"log"
	"os"
	"time"

	"keychain-studio/internal/app"
	"keychain-studio/internal/catalog"
	"keychain-studio/internal/version"
	"keychain-studio/ui/mainwindow"
	"keychain-studio/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appID    = "com.charmandkey.studio"
	appTitle = "Keychain Studio"

	// Set KEYCHAIN_STUDIO_DEV=1 to watch the binary and prompt for restarts.
	devEnv = "KEYCHAIN_STUDIO_DEV"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s %s", appTitle, version.String())

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.StudioTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	// The assets directory holds the catalog manifest and images.
	assetDir := "assets"
	if len(os.Args) > 1 {
		assetDir = os.Args[1]
	}
	cat, err := catalog.Load(assetDir)
	if err != nil {
		log.Printf("Failed to load catalog from %s: %v", assetDir, err)
		log.Println("Falling back to the built-in catalog")
		cat = catalog.Default()
		cat.ResolveDir(assetDir)
	}
	appState.SetCatalog(cat)

	win := mainwindow.New(fyneApp, appState, appPrefs)

	if os.Getenv(devEnv) != "" {
		setupHotReload(win)
	}

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.Baseline().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.NewConfirm("New Version Available",
			"The application binary has been updated. Restart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window).Show()
	})

	reloader.Start()
}
