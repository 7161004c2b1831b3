package panels

import (
	"fmt"
	"image"
	"net/url"

	"keychain-studio/internal/app"
	"keychain-studio/internal/order"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// OrderPanel shows a live preview and price summary, and hands the order
// off to WhatsApp.
type OrderPanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	preview     *fynecanvas.Image
	itemsLabel  *widget.Label
	totalLabel  *widget.Label
	whatsappBtn *widget.Button
	copyBtn     *widget.Button

	onExport func()
}

// NewOrderPanel creates a new order panel.
func NewOrderPanel(state *app.State) *OrderPanel {
	op := &OrderPanel{state: state}

	op.preview = fynecanvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	op.preview.FillMode = fynecanvas.ImageFillContain
	op.preview.SetMinSize(fyne.NewSize(220, 220))

	op.itemsLabel = widget.NewLabel("")
	op.itemsLabel.Wrapping = fyne.TextWrapWord
	op.totalLabel = widget.NewLabel("")
	op.totalLabel.TextStyle = fyne.TextStyle{Bold: true}

	exportBtn := widget.NewButton("Export PNG...", func() {
		if op.onExport != nil {
			op.onExport()
		}
	})
	op.copyBtn = widget.NewButton("Copy Message", op.onCopyMessage)
	op.whatsappBtn = widget.NewButton("Order on WhatsApp", op.onWhatsApp)

	op.container = container.NewVBox(
		widget.NewCard("Preview", "", op.preview),
		widget.NewCard("Summary", "", container.NewVBox(op.itemsLabel, op.totalLabel)),
		widget.NewCard("Send Your Order", "Export the image, then attach it in the chat.",
			container.NewVBox(exportBtn, op.copyBtn, op.whatsappBtn)),
	)

	state.On(app.EventPreviewReady, func(data interface{}) {
		if img, ok := data.(image.Image); ok && img != nil {
			op.preview.Image = img
			op.preview.Refresh()
		}
	})
	state.On(app.EventDesignChanged, func(data interface{}) {
		op.refreshSummary()
	})
	state.On(app.EventModeChanged, func(data interface{}) {
		op.refreshSummary()
	})
	state.On(app.EventCatalogLoaded, func(data interface{}) {
		op.refreshSummary()
	})
	op.refreshSummary()

	return op
}

// Container returns the panel container.
func (op *OrderPanel) Container() fyne.CanvasObject {
	return op.container
}

// SetWindow sets the parent window for dialogs and clipboard access.
func (op *OrderPanel) SetWindow(w fyne.Window) {
	op.window = w
}

// OnExport sets the callback behind the export button.
func (op *OrderPanel) OnExport(fn func()) {
	op.onExport = fn
}

func (op *OrderPanel) refreshSummary() {
	cat := op.state.Catalog()
	if cat == nil {
		op.itemsLabel.SetText("Catalog not loaded")
		op.totalLabel.SetText("")
		op.whatsappBtn.Disable()
		return
	}

	s := order.Summarize(op.state.Design(), cat)

	text := fmt.Sprintf("Base: %s (%s)\n", s.Base.Name, cat.Shop.FormatPrice(s.Base.Price))
	if len(s.Charms) == 0 {
		text += "No charms yet"
	} else {
		for i, c := range s.Charms {
			if i > 0 {
				text += "\n"
			}
			text += fmt.Sprintf("Charm: %s (%s)", c.Name, cat.Shop.FormatPrice(c.Price))
		}
	}
	op.itemsLabel.SetText(text)
	op.totalLabel.SetText("Total: " + cat.Shop.FormatPrice(s.Total))

	if order.PhoneDigits(cat.Shop.Phone) == "" {
		op.whatsappBtn.Disable()
	} else {
		op.whatsappBtn.Enable()
	}
}

func (op *OrderPanel) onCopyMessage() {
	cat := op.state.Catalog()
	if cat == nil || op.window == nil {
		return
	}
	s := order.Summarize(op.state.Design(), cat)
	op.window.Clipboard().SetContent(order.Message(s, cat.Shop))
	op.state.Status("Order message copied to clipboard")
}

func (op *OrderPanel) onWhatsApp() {
	cat := op.state.Catalog()
	if cat == nil {
		return
	}
	if order.PhoneDigits(cat.Shop.Phone) == "" {
		op.state.Status("No WhatsApp number configured")
		return
	}

	s := order.Summarize(op.state.Design(), cat)
	link := order.WhatsAppLink(cat.Shop.Phone, order.Message(s, cat.Shop))
	u, err := url.Parse(link)
	if err != nil {
		if op.window != nil {
			dialog.ShowError(fmt.Errorf("invalid WhatsApp link: %w", err), op.window)
		}
		return
	}
	if err := fyne.CurrentApp().OpenURL(u); err != nil {
		if op.window != nil {
			dialog.ShowError(fmt.Errorf("could not open WhatsApp: %w", err), op.window)
		}
		op.state.Status("Could not open WhatsApp")
		return
	}
	op.state.Status("Opening WhatsApp...")
}
