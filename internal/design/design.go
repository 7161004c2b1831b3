// Package design holds the customizer's selection state and its transitions.
//
// A Design records which base is chosen, where charms are placed and the
// current view zoom. It owns no images, only catalog indices and geometry.
// Every transition is a plain method with no UI or I/O concerns so the whole
// state machine is testable in isolation; the app-level holder adds locking,
// events and confirmation gates on top.
package design

import (
	"github.com/google/uuid"

	"keychain-studio/pkg/geometry"
)

// Mode selects how charms are placed on the base.
type Mode int

const (
	// ModeFixed places charms into three named slots at preset positions.
	ModeFixed Mode = iota
	// ModeManual places charms freely at user-chosen positions.
	ModeManual
)

// String returns a short name for the mode.
func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "fixed"
}

// Slot identifies one of the three fixed charm positions.
type Slot int

const (
	SlotBottom Slot = iota
	SlotMiddle
	SlotTop
	SlotCount
)

// SlotEmpty marks a slot with no charm assigned.
const SlotEmpty = -1

// String returns the slot's name.
func (s Slot) String() string {
	switch s {
	case SlotBottom:
		return "bottom"
	case SlotMiddle:
		return "middle"
	case SlotTop:
		return "top"
	}
	return "unknown"
}

// SlotLayout is a slot's preset placement on the canvas, in normalized
// coordinates.
type SlotLayout struct {
	Pos   geometry.Point2D `json:"pos"`
	Scale float64          `json:"scale"`
}

var slotLayouts = [SlotCount]SlotLayout{
	SlotBottom: {Pos: geometry.Point2D{X: 0.5, Y: 0.76}, Scale: 0.24},
	SlotMiddle: {Pos: geometry.Point2D{X: 0.5, Y: 0.54}, Scale: 0.24},
	SlotTop:    {Pos: geometry.Point2D{X: 0.5, Y: 0.32}, Scale: 0.24},
}

// Layout returns the slot's preset canvas placement.
func (s Slot) Layout() SlotLayout {
	return slotLayouts[s]
}

// View and placement limits.
const (
	ZoomMin     = 0.4
	ZoomMax     = 2.0
	ZoomDefault = 0.65

	// DefaultCharmScale is the scale assigned to newly placed manual charms.
	DefaultCharmScale = 0.28

	// HitRadius is the pointer distance, in normalized units, within which
	// a charm's center counts as hit.
	HitRadius = 0.14
)

// PlacedCharm is one freely placed charm in manual mode.
type PlacedCharm struct {
	ID         string  `json:"id"`
	CharmIndex int     `json:"charmIndex"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
}

// Center returns the charm's normalized center position.
func (c PlacedCharm) Center() geometry.Point2D {
	return geometry.Point2D{X: c.X, Y: c.Y}
}

// Design is the single source of truth for what is being composed.
// Slots are authoritative in fixed mode, ManualItems in manual mode;
// never both at once.
type Design struct {
	Mode        Mode
	BaseIndex   int
	Slots       [SlotCount]int
	ManualItems []PlacedCharm
	Zoom        float64
}

// New returns a design with all fields at their defaults.
func New() *Design {
	d := &Design{}
	d.Reset()
	return d
}

// Reset restores defaults: fixed mode, base 0, empty slots, no manual
// items, default zoom.
func (d *Design) Reset() {
	d.Mode = ModeFixed
	d.BaseIndex = 0
	for i := range d.Slots {
		d.Slots[i] = SlotEmpty
	}
	d.ManualItems = nil
	d.Zoom = ZoomDefault
}

// Clone returns a deep copy, safe to read while the original keeps mutating.
func (d *Design) Clone() Design {
	out := *d
	if d.ManualItems != nil {
		out.ManualItems = make([]PlacedCharm, len(d.ManualItems))
		copy(out.ManualItems, d.ManualItems)
	}
	return out
}

// SetBase selects the base shape. The index must be catalog-valid; that is
// the caller's contract, not a checked error.
func (d *Design) SetBase(index int) {
	d.BaseIndex = index
}

// SetSlot assigns a charm index to a named slot, or clears it with SlotEmpty.
// Meaningful only in fixed mode.
func (d *Design) SetSlot(slot Slot, charmIndex int) {
	d.Slots[slot] = charmIndex
}

// SwitchToManual converts any populated slots into equivalent manual items,
// one per slot in bottom/middle/top order at the slot's preset position and
// scale, then enters manual mode. No-op when already in manual mode.
func (d *Design) SwitchToManual() {
	if d.Mode == ModeManual {
		return
	}
	for slot, charm := range d.Slots {
		if charm == SlotEmpty {
			continue
		}
		layout := Slot(slot).Layout()
		d.ManualItems = append(d.ManualItems, PlacedCharm{
			ID:         uuid.NewString(),
			CharmIndex: charm,
			X:          layout.Pos.X,
			Y:          layout.Pos.Y,
			Z:          layout.Scale,
		})
	}
	d.Mode = ModeManual
}

// SwitchToFixed drops all manual items and enters fixed mode. Destructive;
// callers gate it behind user confirmation. No-op when already in fixed mode.
func (d *Design) SwitchToFixed() {
	if d.Mode == ModeFixed {
		return
	}
	d.ManualItems = nil
	d.Mode = ModeFixed
}

// AddManualItem appends a new charm with a fresh unique id and returns the id.
// New items draw on top of existing ones.
func (d *Design) AddManualItem(charmIndex int, x, y, z float64) string {
	item := PlacedCharm{
		ID:         uuid.NewString(),
		CharmIndex: charmIndex,
		X:          clamp01(x),
		Y:          clamp01(y),
		Z:          z,
	}
	d.ManualItems = append(d.ManualItems, item)
	return item.ID
}

// MoveManualItem repositions exactly one item by id. Positions clamp into
// the unit square so an item cannot be stranded outside the canvas. Returns
// false, changing nothing, when the id is not present.
func (d *Design) MoveManualItem(id string, x, y float64) bool {
	for i := range d.ManualItems {
		if d.ManualItems[i].ID == id {
			d.ManualItems[i].X = clamp01(x)
			d.ManualItems[i].Y = clamp01(y)
			return true
		}
	}
	return false
}

// RemoveAllManualItems clears every placed charm.
func (d *Design) RemoveAllManualItems() {
	d.ManualItems = nil
}

// AdjustZoom adds delta to the zoom factor and clamps it into
// [ZoomMin, ZoomMax].
func (d *Design) AdjustZoom(delta float64) {
	d.Zoom += delta
	if d.Zoom < ZoomMin {
		d.Zoom = ZoomMin
	}
	if d.Zoom > ZoomMax {
		d.Zoom = ZoomMax
	}
}

// HitTest returns the topmost manual item whose center lies within HitRadius
// of p, walking the list in reverse draw order so later (upper) items win.
func (d *Design) HitTest(p geometry.Point2D) (string, bool) {
	for i := len(d.ManualItems) - 1; i >= 0; i-- {
		item := d.ManualItems[i]
		if p.DistanceSq(item.Center()) <= HitRadius*HitRadius {
			return item.ID, true
		}
	}
	return "", false
}

// Item returns the manual item with the given id.
func (d *Design) Item(id string) (PlacedCharm, bool) {
	for _, item := range d.ManualItems {
		if item.ID == id {
			return item, true
		}
	}
	return PlacedCharm{}, false
}

// PopulatedSlots returns the slots holding a charm, in bottom/middle/top order.
func (d *Design) PopulatedSlots() []Slot {
	var out []Slot
	for slot, charm := range d.Slots {
		if charm != SlotEmpty {
			out = append(out, Slot(slot))
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
