// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"time"

	"keychain-studio/internal/app"
	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
	"keychain-studio/internal/render"
	"keychain-studio/ui/canvas"
	"keychain-studio/ui/dialogs"
	"keychain-studio/ui/panels"
	"keychain-studio/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultWidth  = 1200
	defaultHeight = 800
	defaultSplit  = 0.70
)

// Mode labels shared by the toolbar selector and the Mode menu.
const (
	modeFixedLabel  = "Fixed Slots"
	modeManualLabel = "Free Placement"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	compositor *render.Compositor
	canvas     *canvas.DesignCanvas
	sidePanel  *panels.SidePanel

	statusBar  *widget.Label
	zoomLabel  *widget.Label
	modeSelect *widget.Select
	editCheck  *widget.Check
	split      *container.Split
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Keychain Studio")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	if cat := state.Catalog(); cat != nil {
		mw.SetTitle("Keychain Studio - " + cat.Shop.Name)
	}

	// First frame
	mw.canvas.Schedule()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	cache := render.NewImageCache(nil)
	mw.compositor = render.NewCompositor(cache)

	// Create the design canvas
	mw.canvas = canvas.NewDesignCanvas(mw.state, mw.compositor)

	// Create the side panel with tabs
	mw.sidePanel = panels.NewSidePanel(mw.state, cache)
	mw.sidePanel.SetWindow(mw.Window)
	mw.sidePanel.OnExport(mw.onExportPNG)

	// Create status bar
	mw.statusBar = widget.NewLabel("Pick a base to get started")

	// Create toolbar with zoom and mode controls
	toolbar := mw.createToolbar()

	// Canvas area with toolbar on top
	canvasArea := container.NewBorder(
		toolbar,   // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		mw.canvas, // center
	)

	// Create main layout: canvas area | side panel
	mw.split = container.NewHSplit(
		canvasArea,
		mw.sidePanel.Container(),
	)
	mw.split.SetOffset(mw.prefs.FloatWithFallback(prefs.KeySplitOffset, defaultSplit))

	// Main container with status bar at bottom
	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.split,                          // center
	)

	mw.SetContent(content)

	width := mw.prefs.FloatWithFallback(prefs.KeyWindowWidth, defaultWidth)
	height := mw.prefs.FloatWithFallback(prefs.KeyWindowHeight, defaultHeight)
	mw.Resize(fyne.NewSize(float32(width), float32(height)))

	mw.SetCloseIntercept(func() {
		sz := mw.Canvas().Size()
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(sz.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(sz.Height))
		mw.prefs.SetFloat(prefs.KeySplitOffset, mw.split.Offset)
		if err := mw.prefs.Save(); err != nil {
			fmt.Printf("Failed to save preferences: %v\n", err)
		}
		mw.Close()
	})
}

// createToolbar creates the toolbar with zoom and mode controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.canvas.ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.canvas.ZoomIn()
	})
	mw.zoomLabel = widget.NewLabel(percent(mw.state.Zoom()))

	mw.modeSelect = widget.NewSelect([]string{modeFixedLabel, modeManualLabel}, func(chosen string) {
		target := design.ModeFixed
		if chosen == modeManualLabel {
			target = design.ModeManual
		}
		mw.requestModeSwitch(target)
	})

	mw.editCheck = widget.NewCheck("Editing", func(checked bool) {
		mw.state.SetEditing(checked)
	})

	mw.syncModeControls(mw.state.Design().Mode)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.zoomLabel,
		zoomInBtn,
		widget.NewSeparator(),
		widget.NewLabel("Mode:"),
		mw.modeSelect,
		mw.editCheck,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	// File menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	// Edit menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Clear All Charms", mw.onClearAllCharms),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Design...", mw.onResetDesign),
	)

	// View menu
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Reset Zoom", mw.onResetZoom),
	)

	// Mode menu
	modeMenu := fyne.NewMenu("Mode",
		fyne.NewMenuItem(modeFixedLabel, func() { mw.requestModeSwitch(design.ModeFixed) }),
		fyne.NewMenuItem(modeManualLabel, func() { mw.requestModeSwitch(design.ModeManual) }),
	)

	// Help menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("How to Order...", mw.onHowToOrder),
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, viewMenu, modeMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventStatusMessage, func(data interface{}) {
		if msg, ok := data.(string); ok {
			mw.updateStatus(msg)
		}
	})

	mw.state.On(app.EventZoomChanged, func(data interface{}) {
		mw.zoomLabel.SetText(percent(mw.state.Zoom()))
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(design.Mode); ok {
			mw.syncModeControls(mode)
			mw.updateStatus("Mode: " + modeLabel(mode))
		}
	})

	mw.state.On(app.EventEditingChanged, func(data interface{}) {
		if editing, ok := data.(bool); ok && mw.editCheck.Checked != editing {
			mw.editCheck.SetChecked(editing)
		}
	})

	mw.state.On(app.EventCatalogLoaded, func(data interface{}) {
		if cat := mw.state.Catalog(); cat != nil {
			mw.SetTitle("Keychain Studio - " + cat.Shop.Name)
		}
	})
}

// syncModeControls mirrors the current mode into the toolbar: the selector
// shows it and the editing toggle only applies to free placement.
func (mw *MainWindow) syncModeControls(mode design.Mode) {
	mw.modeSelect.SetSelected(modeLabel(mode))
	if mode == design.ModeManual {
		mw.editCheck.Enable()
	} else {
		mw.editCheck.SetChecked(false)
		mw.editCheck.Disable()
	}
}

// requestModeSwitch runs the mode transition, asking for confirmation when
// placed charms would be lost. Declining reverts the toolbar selector.
func (mw *MainWindow) requestModeSwitch(target design.Mode) {
	if !mw.state.RequestModeSwitch(target) {
		return
	}
	dialog.NewConfirm("Switch to fixed slots?", "Your placed charms will be removed.",
		func(ok bool) {
			if ok {
				mw.state.ConfirmPending()
				return
			}
			mw.state.CancelPending()
			mw.modeSelect.SetSelected(modeLabel(mw.state.Design().Mode))
		}, mw.Window).Show()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getExportDir returns the last used export directory as a ListableURI, or nil.
func (mw *MainWindow) getExportDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyExportDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveExportDir saves the directory of the given file path.
func (mw *MainWindow) saveExportDir(filePath string) {
	mw.prefs.SetString(prefs.KeyExportDir, filepath.Dir(filePath))
}

// Menu action handlers

func (mw *MainWindow) onExportPNG() {
	cat := mw.state.Catalog()
	if cat == nil {
		mw.updateStatus("Catalog not loaded")
		return
	}

	// Fresh guide-free render at full canvas size, independent of whatever
	// frame is on screen.
	img := mw.compositor.Render(render.BuildScene(mw.state.Design(), render.Interaction{}, cat))

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := render.EncodePNG(writer, img); err != nil {
			dialog.ShowError(fmt.Errorf("export failed: %w", err), mw.Window)
			mw.updateStatus("Export failed")
			return
		}
		mw.saveExportDir(path)
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName(render.ExportFilename(time.Now()))
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	if loc := mw.getExportDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onClearAllCharms() {
	d := mw.state.Design()
	if d.Mode == design.ModeManual {
		if len(d.ManualItems) == 0 {
			mw.updateStatus("No charms to clear")
			return
		}
		dialog.ShowConfirm("Clear all charms?", "Every placed charm will be removed.",
			func(ok bool) {
				if !ok {
					return
				}
				mw.state.RemoveAllManualItems()
				mw.updateStatus("Cleared all charms")
			}, mw.Window)
		return
	}

	slots := d.PopulatedSlots()
	if len(slots) == 0 {
		mw.updateStatus("No charms to clear")
		return
	}
	dialog.ShowConfirm("Clear all charms?", "Every slot will be emptied.",
		func(ok bool) {
			if !ok {
				return
			}
			for _, slot := range slots {
				mw.state.SetSlot(slot, design.SlotEmpty)
			}
			mw.updateStatus("Cleared all charms")
		}, mw.Window)
}

func (mw *MainWindow) onResetDesign() {
	if !mw.state.RequestReset() {
		return
	}
	dialog.NewConfirm("Reset design?", "This returns the keychain to its defaults.",
		func(ok bool) {
			if ok {
				mw.state.ConfirmPending()
				mw.updateStatus("Design reset")
				return
			}
			mw.state.CancelPending()
		}, mw.Window).Show()
}

func (mw *MainWindow) onResetZoom() {
	mw.state.AdjustZoom(design.ZoomDefault - mw.state.Zoom())
}

func (mw *MainWindow) onHowToOrder() {
	dialogs.ShowHowToOrder(mw.Window)
}

func (mw *MainWindow) onAbout() {
	shop := catalog.ShopInfo{}
	if cat := mw.state.Catalog(); cat != nil {
		shop = cat.Shop
	}
	dialogs.NewAboutDialog(shop, mw.Window).Show()
}

// percent formats a zoom factor for the toolbar label.
func percent(zoom float64) string {
	return fmt.Sprintf("%.0f%%", zoom*100)
}

// modeLabel returns the UI label for a mode.
func modeLabel(mode design.Mode) string {
	if mode == design.ModeManual {
		return modeManualLabel
	}
	return modeFixedLabel
}
