// Package dialogs provides application dialogs.
package dialogs

import (
	"keychain-studio/internal/catalog"
	"keychain-studio/internal/version"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AboutDialog shows application and shop information.
type AboutDialog struct {
	shop   catalog.ShopInfo
	window fyne.Window
}

// NewAboutDialog creates a new about dialog.
func NewAboutDialog(shop catalog.ShopInfo, window fyne.Window) *AboutDialog {
	return &AboutDialog{
		shop:   shop,
		window: window,
	}
}

// Show displays the dialog.
func (d *AboutDialog) Show() {
	content := d.createContent()

	dlg := dialog.NewCustom("About Keychain Studio", "Close", content, d.window)
	dlg.Resize(fyne.NewSize(420, 460))
	dlg.Show()
}

func (d *AboutDialog) createContent() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("Keychain Studio", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	versionLabel := widget.NewLabelWithStyle(version.String(), fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	tagline := widget.NewLabel(d.shop.Tagline)
	tagline.Wrapping = fyne.TextWrapWord

	shopCard := widget.NewCard(d.shop.Name, "", container.NewVBox(
		tagline,
		widget.NewLabel("WhatsApp: "+d.shop.Phone),
	))

	steps := widget.NewLabel(orderSteps)
	steps.Wrapping = fyne.TextWrapWord
	orderCard := widget.NewCard("How to Order", "", steps)

	return container.NewVBox(
		title,
		versionLabel,
		shopCard,
		orderCard,
	)
}

// ShowHowToOrder displays just the ordering steps.
func ShowHowToOrder(window fyne.Window) {
	steps := widget.NewLabel(orderSteps)
	steps.Wrapping = fyne.TextWrapWord

	dlg := dialog.NewCustom("How to Order", "Got It", steps, window)
	dlg.Resize(fyne.NewSize(400, 280))
	dlg.Show()
}

const orderSteps = `1. Pick a base shape on the Bases tab.
2. Add charms: fill the three slots, or switch to Free Placement and drag charms anywhere.
3. On the Order tab, export your design as a PNG.
4. Tap Order on WhatsApp and attach the exported image in the chat.`
