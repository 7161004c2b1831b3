// Package panels provides UI panels for the application.
package panels

import (
	"keychain-studio/internal/app"
	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
	"keychain-studio/internal/render"
	"keychain-studio/pkg/colorutil"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	basesPanel  *BasesPanel
	charmsPanel *CharmsPanel
	orderPanel  *OrderPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, cache *render.ImageCache) *SidePanel {
	sp := &SidePanel{state: state}

	sp.basesPanel = NewBasesPanel(state, cache)
	sp.charmsPanel = NewCharmsPanel(state, cache)
	sp.orderPanel = NewOrderPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Bases", sp.basesPanel.Container()),
		container.NewTabItem("Charms", sp.charmsPanel.Container()),
		container.NewTabItem("Order", sp.orderPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.charmsPanel.SetWindow(w)
	sp.orderPanel.SetWindow(w)
}

// OnExport sets the callback behind the order tab's export button.
func (sp *SidePanel) OnExport(fn func()) {
	sp.orderPanel.OnExport(fn)
}

// BasesPanel lists the base shapes; selecting one sets the design's base.
type BasesPanel struct {
	state     *app.State
	container fyne.CanvasObject

	list      *widget.List
	shopLabel *widget.Label
	swatches  *swatchSet
}

// NewBasesPanel creates a new bases panel.
func NewBasesPanel(state *app.State, cache *render.ImageCache) *BasesPanel {
	bp := &BasesPanel{
		state:    state,
		swatches: newSwatchSet(),
	}

	bp.shopLabel = widget.NewLabel("")
	bp.shopLabel.Wrapping = fyne.TextWrapWord

	bp.list = widget.NewList(
		func() int {
			if cat := state.Catalog(); cat != nil {
				return len(cat.Bases)
			}
			return 0
		},
		func() fyne.CanvasObject {
			chip := fynecanvas.NewRectangle(colorutil.Slate)
			chip.SetMinSize(fyne.NewSize(18, 18))
			return container.NewHBox(chip, widget.NewLabel("Base"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cat := state.Catalog()
			if cat == nil || id >= len(cat.Bases) {
				return
			}
			e := cat.Bases[id]
			row := obj.(*fyne.Container)
			chip := row.Objects[0].(*fynecanvas.Rectangle)
			chip.FillColor = bp.swatches.at(e.Path)
			chip.Refresh()
			row.Objects[1].(*widget.Label).SetText(entryLabel(e, cat.Shop))
		},
	)
	bp.list.OnSelected = func(id widget.ListItemID) {
		cat := state.Catalog()
		if cat == nil || id >= len(cat.Bases) {
			return
		}
		state.SetBase(id)
		state.Status("Base: " + cat.Bases[id].Name)
	}

	bp.container = container.NewBorder(
		widget.NewCard("Pick a Base", "", bp.shopLabel),
		nil, nil, nil,
		bp.list,
	)

	state.On(app.EventCatalogLoaded, func(data interface{}) {
		bp.reload(cache)
	})
	if state.Catalog() != nil {
		bp.reload(cache)
	}

	return bp
}

// Container returns the panel container.
func (bp *BasesPanel) Container() fyne.CanvasObject {
	return bp.container
}

func (bp *BasesPanel) reload(cache *render.ImageCache) {
	cat := bp.state.Catalog()
	if cat == nil {
		return
	}
	bp.shopLabel.SetText(cat.Shop.Tagline)
	bp.swatches.load(cache, cat.Bases, bp.list.Refresh)
	bp.list.Refresh()
	bp.list.Select(bp.state.Design().BaseIndex)
}

// CharmsPanel offers the slot pickers in fixed mode and the free-placement
// controls in manual mode. It rebuilds its content when the mode changes.
type CharmsPanel struct {
	state  *app.State
	window fyne.Window
	root   *fyne.Container

	swatches  *swatchSet
	editCheck *widget.Check

	// Manual-mode list selection, feeds the Add to Center button.
	selectedCharm int
}

// NewCharmsPanel creates a new charms panel.
func NewCharmsPanel(state *app.State, cache *render.ImageCache) *CharmsPanel {
	cp := &CharmsPanel{
		state:         state,
		swatches:      newSwatchSet(),
		selectedCharm: -1,
	}

	cp.root = container.NewStack()
	cp.rebuild()

	state.On(app.EventModeChanged, func(data interface{}) {
		cp.rebuild()
	})
	state.On(app.EventCatalogLoaded, func(data interface{}) {
		if cat := state.Catalog(); cat != nil {
			cp.swatches.load(cache, cat.Charms, cp.root.Refresh)
		}
		cp.rebuild()
	})
	state.On(app.EventEditingChanged, func(data interface{}) {
		if cp.editCheck != nil {
			cp.editCheck.SetChecked(state.Editing())
		}
	})

	return cp
}

// Container returns the panel container.
func (cp *CharmsPanel) Container() fyne.CanvasObject {
	return cp.root
}

// SetWindow sets the parent window for dialogs.
func (cp *CharmsPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

func (cp *CharmsPanel) rebuild() {
	cat := cp.state.Catalog()
	if cat == nil {
		cp.root.Objects = []fyne.CanvasObject{widget.NewLabel("Catalog not loaded")}
		cp.root.Refresh()
		return
	}

	var content fyne.CanvasObject
	if cp.state.Design().Mode == design.ModeFixed {
		cp.editCheck = nil
		content = cp.buildFixed(cat)
	} else {
		content = cp.buildManual(cat)
	}
	cp.root.Objects = []fyne.CanvasObject{content}
	cp.root.Refresh()
}

// buildFixed offers one selector per named slot.
func (cp *CharmsPanel) buildFixed(cat *catalog.Catalog) fyne.CanvasObject {
	d := cp.state.Design()

	options := make([]string, 0, len(cat.Charms)+1)
	options = append(options, noneOption)
	for _, e := range cat.Charms {
		options = append(options, entryLabel(e, cat.Shop))
	}

	makeSelect := func(slot design.Slot) *widget.Select {
		sel := widget.NewSelect(options, func(chosen string) {
			cp.state.SetSlot(slot, optionIndex(options, chosen))
		})
		if idx := d.Slots[slot]; idx >= 0 && idx < len(cat.Charms) {
			sel.SetSelected(options[idx+1])
		} else {
			sel.SetSelected(noneOption)
		}
		return sel
	}

	return container.NewVBox(
		widget.NewCard("Charm Slots", "One charm per position on the keychain.",
			container.NewVBox(
				widget.NewLabel("Bottom:"),
				makeSelect(design.SlotBottom),
				widget.NewLabel("Middle:"),
				makeSelect(design.SlotMiddle),
				widget.NewLabel("Top:"),
				makeSelect(design.SlotTop),
			)),
	)
}

// buildManual offers the charm list plus placement and clearing controls.
func (cp *CharmsPanel) buildManual(cat *catalog.Catalog) fyne.CanvasObject {
	cp.selectedCharm = -1

	list := widget.NewList(
		func() int { return len(cat.Charms) },
		func() fyne.CanvasObject {
			chip := fynecanvas.NewRectangle(colorutil.Slate)
			chip.SetMinSize(fyne.NewSize(18, 18))
			return container.NewHBox(chip, widget.NewLabel("Charm"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(cat.Charms) {
				return
			}
			e := cat.Charms[id]
			row := obj.(*fyne.Container)
			chip := row.Objects[0].(*fynecanvas.Rectangle)
			chip.FillColor = cp.swatches.at(e.Path)
			chip.Refresh()
			row.Objects[1].(*widget.Label).SetText(entryLabel(e, cat.Shop))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		if id >= len(cat.Charms) {
			return
		}
		cp.selectedCharm = id
		if cp.state.ArmCharm(id) {
			cp.state.Status("Tap the canvas to place " + cat.Charms[id].Name)
		} else {
			cp.state.Status("Enable editing mode to place charms")
		}
	}

	addBtn := widget.NewButton("Add to Center", func() {
		if cp.selectedCharm < 0 {
			cp.state.Status("Select a charm first")
			return
		}
		if _, ok := cp.state.AddManualItem(cp.selectedCharm, 0.5, 0.5); ok {
			cp.state.Status("Added " + cat.Charms[cp.selectedCharm].Name)
		}
	})

	clearBtn := widget.NewButton("Clear All Charms", func() {
		cp.onClearAll()
	})

	cp.editCheck = widget.NewCheck("Editing mode (drag and place)", func(checked bool) {
		cp.state.SetEditing(checked)
	})
	cp.editCheck.SetChecked(cp.state.Editing())

	return container.NewBorder(
		nil,
		container.NewVBox(addBtn, clearBtn, cp.editCheck),
		nil, nil,
		list,
	)
}

// onClearAll confirms before dropping every placed charm.
func (cp *CharmsPanel) onClearAll() {
	if len(cp.state.Design().ManualItems) == 0 {
		cp.state.Status("No charms to clear")
		return
	}
	if cp.window == nil {
		return
	}
	dialog.ShowConfirm("Clear all charms?", "Every placed charm will be removed.",
		func(ok bool) {
			if !ok {
				return
			}
			cp.state.RemoveAllManualItems()
			cp.state.Status("Cleared all charms")
		}, cp.window)
}
