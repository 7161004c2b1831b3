package app

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-studio/internal/design"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	d := s.Design()
	assert.Equal(t, design.ModeFixed, d.Mode)
	assert.False(t, s.Editing())
	assert.Equal(t, "", s.DraggingID())
	assert.Equal(t, -1, s.ArmedCharm())
	assert.Nil(t, s.Preview())
}

func TestSetBaseEmitsDesignChanged(t *testing.T) {
	s := NewState()

	changed := 0
	s.On(EventDesignChanged, func(data interface{}) { changed++ })

	s.SetBase(2)

	assert.Equal(t, 2, s.Design().BaseIndex)
	assert.Equal(t, 1, changed)
}

func TestSwitchToManualAppliesImmediately(t *testing.T) {
	s := NewState()
	s.SetSlot(design.SlotMiddle, 3)

	modes := 0
	s.On(EventModeChanged, func(data interface{}) {
		modes++
		assert.Equal(t, design.ModeManual, data)
	})

	needsConfirm := s.RequestModeSwitch(design.ModeManual)

	assert.False(t, needsConfirm)
	assert.Equal(t, 1, modes)
	assert.True(t, s.Editing(), "entering manual should start in editing")

	d := s.Design()
	assert.Equal(t, design.ModeManual, d.Mode)
	require.Len(t, d.ManualItems, 1)
	assert.Equal(t, 3, d.ManualItems[0].CharmIndex)
}

func TestSwitchToFixedWithItemsNeedsConfirm(t *testing.T) {
	s := NewState()
	s.RequestModeSwitch(design.ModeManual)
	s.AddManualItem(1, 0.5, 0.5)

	needsConfirm := s.RequestModeSwitch(design.ModeFixed)
	require.True(t, needsConfirm)

	// Nothing applied until confirmed.
	d := s.Design()
	assert.Equal(t, design.ModeManual, d.Mode)
	assert.Len(t, d.ManualItems, 1)

	s.ConfirmPending()

	d = s.Design()
	assert.Equal(t, design.ModeFixed, d.Mode)
	assert.Empty(t, d.ManualItems)
	assert.False(t, s.Editing())
}

func TestDecliningSwitchLeavesDesignUntouched(t *testing.T) {
	s := NewState()
	s.RequestModeSwitch(design.ModeManual)
	s.AddManualItem(1, 0.3, 0.4)
	s.AddManualItem(2, 0.6, 0.7)
	before := s.Design()

	needsConfirm := s.RequestModeSwitch(design.ModeFixed)
	require.True(t, needsConfirm)
	s.CancelPending()

	after := s.Design()
	assert.Equal(t, design.ModeManual, after.Mode)
	assert.Equal(t, before.ManualItems, after.ManualItems)

	// A later confirm must not replay the cancelled switch.
	s.ConfirmPending()
	assert.Equal(t, design.ModeManual, s.Design().Mode)
}

func TestSwitchToFixedWithoutItemsSkipsConfirm(t *testing.T) {
	s := NewState()
	s.RequestModeSwitch(design.ModeManual)

	needsConfirm := s.RequestModeSwitch(design.ModeFixed)

	assert.False(t, needsConfirm)
	assert.Equal(t, design.ModeFixed, s.Design().Mode)
}

func TestSwitchToCurrentModeIsNoOp(t *testing.T) {
	s := NewState()

	modes := 0
	s.On(EventModeChanged, func(data interface{}) { modes++ })

	assert.False(t, s.RequestModeSwitch(design.ModeFixed))
	assert.Equal(t, 0, modes)
}

func TestResetIsAlwaysGated(t *testing.T) {
	s := NewState()
	s.SetBase(3)
	s.AdjustZoom(0.05)

	require.True(t, s.RequestReset())

	// Still untouched.
	assert.Equal(t, 3, s.Design().BaseIndex)

	s.ConfirmPending()

	d := s.Design()
	assert.Equal(t, 0, d.BaseIndex)
	assert.Equal(t, design.ZoomDefault, d.Zoom)
	assert.Equal(t, design.ModeFixed, d.Mode)
}

func TestNewerRequestReplacesPending(t *testing.T) {
	s := NewState()
	s.RequestModeSwitch(design.ModeManual)
	s.AddManualItem(0, 0.5, 0.5)

	require.True(t, s.RequestModeSwitch(design.ModeFixed))
	require.True(t, s.RequestReset())

	s.ConfirmPending()

	// The reset won, not the stale mode switch.
	d := s.Design()
	assert.Equal(t, design.ModeFixed, d.Mode)
	assert.Equal(t, 0, d.BaseIndex)
	assert.Empty(t, d.ManualItems)
}

func TestAddManualItemRejectedInFixedMode(t *testing.T) {
	s := NewState()

	id, ok := s.AddManualItem(1, 0.5, 0.5)

	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Empty(t, s.Design().ManualItems)
}

func TestArmCharmOnlyInManualEditing(t *testing.T) {
	s := NewState()

	assert.False(t, s.ArmCharm(2), "fixed mode must not arm")
	assert.Equal(t, -1, s.ArmedCharm())

	s.RequestModeSwitch(design.ModeManual)
	assert.True(t, s.ArmCharm(2))
	assert.Equal(t, 2, s.ArmedCharm())

	s.SetEditing(false)
	assert.Equal(t, -1, s.ArmedCharm(), "leaving editing disarms")
	assert.False(t, s.ArmCharm(1))
}

func TestPlaceArmedAddsAndDisarms(t *testing.T) {
	s := NewState()
	s.RequestModeSwitch(design.ModeManual)
	s.ArmCharm(4)

	id, ok := s.PlaceArmed(0.25, 0.75)
	require.True(t, ok)
	require.NotEmpty(t, id)
	assert.Equal(t, -1, s.ArmedCharm())

	d := s.Design()
	require.Len(t, d.ManualItems, 1)
	item := d.ManualItems[0]
	assert.Equal(t, 4, item.CharmIndex)
	assert.Equal(t, 0.25, item.X)
	assert.Equal(t, 0.75, item.Y)
	assert.Equal(t, design.DefaultCharmScale, item.Z)

	_, ok = s.PlaceArmed(0.5, 0.5)
	assert.False(t, ok, "nothing armed after a placement")
}

func TestSetDraggingEmitsOnChangeOnly(t *testing.T) {
	s := NewState()

	events := 0
	s.On(EventDragChanged, func(data interface{}) { events++ })

	s.SetDragging("abc")
	s.SetDragging("abc")
	s.SetDragging("")

	assert.Equal(t, 2, events)
}

func TestAdjustZoomEmitsZoomChanged(t *testing.T) {
	s := NewState()

	var got float64
	s.On(EventZoomChanged, func(data interface{}) { got = data.(float64) })

	s.AdjustZoom(0.05)

	assert.InDelta(t, 0.70, got, 1e-9)
	assert.InDelta(t, 0.70, s.Zoom(), 1e-9)
}

func TestSetPreviewEmitsPreviewReady(t *testing.T) {
	s := NewState()

	var got image.Image
	s.On(EventPreviewReady, func(data interface{}) { got = data.(image.Image) })

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.SetPreview(img)

	assert.Equal(t, img, got)
	assert.Equal(t, img, s.Preview())
}
