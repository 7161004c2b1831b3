// Package app provides application state, events, and lifecycle helpers.
package app

import (
	"image"
	"sync"

	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
)

// State holds the application state: the current design, the loaded catalog,
// and the transient interaction flags the canvas and panels care about.
// All mutation goes through its methods; every mutation emits the matching
// events after the lock is released.
type State struct {
	mu sync.RWMutex

	design  *design.Design
	catalog *catalog.Catalog

	// Manual-mode sub-state: editing (dragging allowed, guides drawn)
	// versus clean preview.
	editing bool

	// Interaction
	draggingID string
	armedCharm int // charm index armed for tap placement, -1 when none

	// Destructive transition waiting on user confirmation. Only one at a
	// time; a newer request replaces it.
	pending pendingAction

	// Latest clean preview capture.
	preview image.Image

	listeners map[EventType][]EventListener
}

type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingSwitchToFixed
	pendingReset
)

// EventType identifies application events.
type EventType int

const (
	EventDesignChanged EventType = iota
	EventModeChanged
	EventZoomChanged
	EventEditingChanged
	EventDragChanged
	EventArmedChanged
	EventCatalogLoaded
	EventPreviewReady
	EventStatusMessage
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates the application state with a default design.
func NewState() *State {
	return &State{
		design:     design.New(),
		armedCharm: -1,
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Status broadcasts a transient status bar message.
func (s *State) Status(msg string) {
	s.Emit(EventStatusMessage, msg)
}

// SetCatalog installs the loaded asset catalog.
func (s *State) SetCatalog(cat *catalog.Catalog) {
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
	s.Emit(EventCatalogLoaded, cat)
}

// Catalog returns the loaded catalog, nil before SetCatalog.
func (s *State) Catalog() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Design returns a snapshot of the current design, safe to read while the
// state keeps changing.
func (s *State) Design() design.Design {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.design.Clone()
}

// Editing reports whether manual mode is in its editing sub-state.
func (s *State) Editing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

// DraggingID returns the id of the item under drag, empty when none.
func (s *State) DraggingID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draggingID
}

// ArmedCharm returns the charm index armed for tap placement, -1 when none.
func (s *State) ArmedCharm() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.armedCharm
}

// SetBase selects the base shape.
func (s *State) SetBase(index int) {
	s.mu.Lock()
	s.design.SetBase(index)
	s.mu.Unlock()
	s.Emit(EventDesignChanged, nil)
}

// SetSlot assigns or clears a fixed-mode slot.
func (s *State) SetSlot(slot design.Slot, charmIndex int) {
	s.mu.Lock()
	s.design.SetSlot(slot, charmIndex)
	s.mu.Unlock()
	s.Emit(EventDesignChanged, nil)
}

// AddManualItem places a charm at the given normalized position with the
// default scale. Accepted only in manual mode; returns the new item's id.
func (s *State) AddManualItem(charmIndex int, x, y float64) (string, bool) {
	s.mu.Lock()
	if s.design.Mode != design.ModeManual {
		s.mu.Unlock()
		return "", false
	}
	id := s.design.AddManualItem(charmIndex, x, y, design.DefaultCharmScale)
	s.mu.Unlock()
	s.Emit(EventDesignChanged, nil)
	return id, true
}

// MoveManualItem repositions one placed charm.
func (s *State) MoveManualItem(id string, x, y float64) bool {
	s.mu.Lock()
	moved := s.design.MoveManualItem(id, x, y)
	s.mu.Unlock()
	if moved {
		s.Emit(EventDesignChanged, nil)
	}
	return moved
}

// RemoveAllManualItems clears every placed charm. Destructive; the UI
// confirms before calling.
func (s *State) RemoveAllManualItems() {
	s.mu.Lock()
	s.design.RemoveAllManualItems()
	s.mu.Unlock()
	s.Emit(EventDesignChanged, nil)
}

// AdjustZoom nudges the view zoom, clamped to the allowed range.
func (s *State) AdjustZoom(delta float64) {
	s.mu.Lock()
	s.design.AdjustZoom(delta)
	zoom := s.design.Zoom
	s.mu.Unlock()
	s.Emit(EventZoomChanged, zoom)
	s.Emit(EventDesignChanged, nil)
}

// Zoom returns the current view zoom.
func (s *State) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.design.Zoom
}

// SetEditing toggles manual mode between editing and clean preview.
func (s *State) SetEditing(editing bool) {
	s.mu.Lock()
	if s.editing == editing {
		s.mu.Unlock()
		return
	}
	s.editing = editing
	if !editing {
		s.draggingID = ""
		s.armedCharm = -1
	}
	s.mu.Unlock()
	s.Emit(EventEditingChanged, editing)
}

// SetDragging records which item is under drag; empty ends the drag.
func (s *State) SetDragging(id string) {
	s.mu.Lock()
	if s.draggingID == id {
		s.mu.Unlock()
		return
	}
	s.draggingID = id
	s.mu.Unlock()
	s.Emit(EventDragChanged, id)
}

// ArmCharm marks a charm for tap placement. Accepted only in manual
// editing; -1 disarms.
func (s *State) ArmCharm(charmIndex int) bool {
	s.mu.Lock()
	if charmIndex >= 0 && (s.design.Mode != design.ModeManual || !s.editing) {
		s.mu.Unlock()
		return false
	}
	s.armedCharm = charmIndex
	s.mu.Unlock()
	s.Emit(EventArmedChanged, charmIndex)
	return true
}

// PlaceArmed adds the armed charm at the tapped position and disarms.
// Accepted only in manual editing with a charm armed.
func (s *State) PlaceArmed(x, y float64) (string, bool) {
	s.mu.Lock()
	if s.armedCharm < 0 || s.design.Mode != design.ModeManual || !s.editing {
		s.mu.Unlock()
		return "", false
	}
	id := s.design.AddManualItem(s.armedCharm, x, y, design.DefaultCharmScale)
	s.armedCharm = -1
	s.mu.Unlock()
	s.Emit(EventArmedChanged, -1)
	s.Emit(EventDesignChanged, nil)
	return id, true
}

// RequestModeSwitch asks for a placement mode change. Switching to manual
// converts populated slots and enters the editing sub-state immediately.
// Switching to fixed drops placed charms, so with any present the switch is
// held until ConfirmPending; the return value reports whether confirmation
// is needed.
func (s *State) RequestModeSwitch(target design.Mode) (needsConfirm bool) {
	s.mu.Lock()
	if s.design.Mode == target {
		s.mu.Unlock()
		return false
	}

	if target == design.ModeManual {
		s.design.SwitchToManual()
		s.editing = true
		s.draggingID = ""
		s.armedCharm = -1
		s.mu.Unlock()
		s.Emit(EventModeChanged, design.ModeManual)
		s.Emit(EventEditingChanged, true)
		s.Emit(EventDesignChanged, nil)
		return false
	}

	if len(s.design.ManualItems) == 0 {
		s.applySwitchToFixedLocked()
		s.mu.Unlock()
		s.Emit(EventModeChanged, design.ModeFixed)
		s.Emit(EventDesignChanged, nil)
		return false
	}

	s.pending = pendingSwitchToFixed
	s.mu.Unlock()
	return true
}

// RequestReset asks for a full reset to defaults. Always confirmation-gated.
func (s *State) RequestReset() (needsConfirm bool) {
	s.mu.Lock()
	s.pending = pendingReset
	s.mu.Unlock()
	return true
}

// ConfirmPending applies the transition held by the last Request call.
func (s *State) ConfirmPending() {
	s.mu.Lock()
	action := s.pending
	s.pending = pendingNone

	switch action {
	case pendingSwitchToFixed:
		s.applySwitchToFixedLocked()
		s.mu.Unlock()
		s.Emit(EventModeChanged, design.ModeFixed)
		s.Emit(EventDesignChanged, nil)
	case pendingReset:
		s.design.Reset()
		s.editing = false
		s.draggingID = ""
		s.armedCharm = -1
		zoom := s.design.Zoom
		s.mu.Unlock()
		s.Emit(EventModeChanged, design.ModeFixed)
		s.Emit(EventEditingChanged, false)
		s.Emit(EventZoomChanged, zoom)
		s.Emit(EventDesignChanged, nil)
	default:
		s.mu.Unlock()
	}
}

// CancelPending abandons the held transition; state stays as it was.
func (s *State) CancelPending() {
	s.mu.Lock()
	s.pending = pendingNone
	s.mu.Unlock()
}

func (s *State) applySwitchToFixedLocked() {
	s.design.SwitchToFixed()
	s.editing = false
	s.draggingID = ""
	s.armedCharm = -1
}

// SetPreview stores the latest clean preview capture.
func (s *State) SetPreview(img image.Image) {
	s.mu.Lock()
	s.preview = img
	s.mu.Unlock()
	s.Emit(EventPreviewReady, img)
}

// Preview returns the latest clean preview capture, nil before the first.
func (s *State) Preview() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preview
}
