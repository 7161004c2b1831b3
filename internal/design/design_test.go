package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-studio/pkg/geometry"
)

func TestNewDefaults(t *testing.T) {
	d := New()

	assert.Equal(t, ModeFixed, d.Mode)
	assert.Equal(t, 0, d.BaseIndex)
	for slot := Slot(0); slot < SlotCount; slot++ {
		assert.Equal(t, SlotEmpty, d.Slots[slot])
	}
	assert.Empty(t, d.ManualItems)
	assert.Equal(t, ZoomDefault, d.Zoom)
}

func TestResetRestoresDefaults(t *testing.T) {
	d := New()
	d.SetBase(2)
	d.SetSlot(SlotTop, 1)
	d.SwitchToManual()
	d.AddManualItem(3, 0.2, 0.3, 0.5)
	d.AdjustZoom(1)

	d.Reset()

	assert.Equal(t, ModeFixed, d.Mode)
	assert.Equal(t, 0, d.BaseIndex)
	assert.Empty(t, d.PopulatedSlots())
	assert.Empty(t, d.ManualItems)
	assert.Equal(t, ZoomDefault, d.Zoom)
}

func TestSwitchToManualConvertsSingleSlot(t *testing.T) {
	d := New()
	d.SetSlot(SlotBottom, 4)

	d.SwitchToManual()

	assert.Equal(t, ModeManual, d.Mode)
	require.Len(t, d.ManualItems, 1)

	item := d.ManualItems[0]
	layout := SlotBottom.Layout()
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 4, item.CharmIndex)
	assert.Equal(t, layout.Pos.X, item.X)
	assert.Equal(t, layout.Pos.Y, item.Y)
	assert.Equal(t, layout.Scale, item.Z)
}

func TestSwitchToManualConvertsSlotsInOrder(t *testing.T) {
	d := New()
	d.SetSlot(SlotTop, 7)
	d.SetSlot(SlotBottom, 5)

	d.SwitchToManual()

	require.Len(t, d.ManualItems, 2)
	assert.Equal(t, 5, d.ManualItems[0].CharmIndex) // bottom first
	assert.Equal(t, 7, d.ManualItems[1].CharmIndex)
	assert.NotEqual(t, d.ManualItems[0].ID, d.ManualItems[1].ID)
}

func TestSwitchToManualIsIdempotent(t *testing.T) {
	d := New()
	d.SetSlot(SlotMiddle, 1)
	d.SwitchToManual()
	require.Len(t, d.ManualItems, 1)

	// Already in manual mode: a second switch must not duplicate items.
	d.SwitchToManual()
	assert.Len(t, d.ManualItems, 1)
}

func TestSwitchToFixedDropsManualItems(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(1, 0.5, 0.5, 0.28)
	d.AddManualItem(2, 0.4, 0.4, 0.28)

	d.SwitchToFixed()

	assert.Equal(t, ModeFixed, d.Mode)
	assert.Empty(t, d.ManualItems)
}

func TestAddManualItemAppendsOnTop(t *testing.T) {
	d := New()
	d.SwitchToManual()

	first := d.AddManualItem(0, 0.3, 0.3, 0.28)
	second := d.AddManualItem(1, 0.6, 0.6, 0.28)

	require.Len(t, d.ManualItems, 2)
	assert.Equal(t, first, d.ManualItems[0].ID)
	assert.Equal(t, second, d.ManualItems[1].ID)
	assert.NotEqual(t, first, second)
}

func TestAddManualItemClampsPosition(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(0, -0.5, 1.5, 0.28)

	item := d.ManualItems[0]
	assert.Equal(t, 0.0, item.X)
	assert.Equal(t, 1.0, item.Y)
}

func TestMoveManualItemTouchesOnlyTarget(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(0, 0.2, 0.2, 0.28)
	target := d.AddManualItem(1, 0.5, 0.5, 0.28)
	d.AddManualItem(2, 0.8, 0.8, 0.28)

	before := []PlacedCharm{d.ManualItems[0], d.ManualItems[2]}

	ok := d.MoveManualItem(target, 0.7, 0.1)
	assert.True(t, ok)

	moved, found := d.Item(target)
	require.True(t, found)
	assert.Equal(t, 0.7, moved.X)
	assert.Equal(t, 0.1, moved.Y)

	assert.Equal(t, before[0], d.ManualItems[0])
	assert.Equal(t, before[1], d.ManualItems[2])
}

func TestMoveManualItemMissingIDIsNoop(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(0, 0.5, 0.5, 0.28)
	before := d.Clone()

	ok := d.MoveManualItem("no-such-id", 0.1, 0.1)

	assert.False(t, ok)
	assert.Equal(t, before.ManualItems, d.ManualItems)
}

func TestRemoveAllManualItems(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(0, 0.5, 0.5, 0.28)
	d.AddManualItem(1, 0.6, 0.6, 0.28)

	d.RemoveAllManualItems()
	assert.Empty(t, d.ManualItems)
}

func TestAdjustZoomClamps(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"no change", nil, ZoomDefault},
		{"single step up", []float64{0.05}, 0.70},
		{"single step down", []float64{-0.05}, 0.60},
		{"huge positive clamps to max", []float64{10}, ZoomMax},
		{"huge negative clamps to min", []float64{-10}, ZoomMin},
		{"clamp then move back", []float64{10, -0.1}, 1.9},
		{"underflow then up", []float64{-5, 0.2}, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			for _, delta := range tt.deltas {
				d.AdjustZoom(delta)
			}
			assert.InDelta(t, tt.want, d.Zoom, 1e-9)
			assert.GreaterOrEqual(t, d.Zoom, ZoomMin)
			assert.LessOrEqual(t, d.Zoom, ZoomMax)
		})
	}
}

func TestHitTestRadius(t *testing.T) {
	d := New()
	d.SwitchToManual()
	id := d.AddManualItem(0, 0.5, 0.5, 0.28)

	// Inside the hit radius.
	hit, ok := d.HitTest(geometry.NewPoint2D(0.5+0.139, 0.5))
	assert.True(t, ok)
	assert.Equal(t, id, hit)

	// 0.15 away misses.
	_, ok = d.HitTest(geometry.NewPoint2D(0.5+0.15, 0.5))
	assert.False(t, ok)

	// Dead center hits.
	hit, ok = d.HitTest(geometry.NewPoint2D(0.5, 0.5))
	assert.True(t, ok)
	assert.Equal(t, id, hit)
}

func TestHitTestPrefersTopmost(t *testing.T) {
	d := New()
	d.SwitchToManual()
	d.AddManualItem(0, 0.50, 0.5, 0.28)
	upper := d.AddManualItem(1, 0.52, 0.5, 0.28)

	// Both items are in range; the later (topmost) one wins.
	hit, ok := d.HitTest(geometry.NewPoint2D(0.51, 0.5))
	assert.True(t, ok)
	assert.Equal(t, upper, hit)
}

func TestHitTestEmpty(t *testing.T) {
	d := New()
	d.SwitchToManual()

	_, ok := d.HitTest(geometry.NewPoint2D(0.5, 0.5))
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	d := New()
	d.SwitchToManual()
	id := d.AddManualItem(0, 0.5, 0.5, 0.28)

	snap := d.Clone()
	d.MoveManualItem(id, 0.9, 0.9)

	assert.Equal(t, 0.5, snap.ManualItems[0].X)
	assert.Equal(t, 0.9, d.ManualItems[0].X)
}

func TestPopulatedSlots(t *testing.T) {
	d := New()
	assert.Empty(t, d.PopulatedSlots())

	d.SetSlot(SlotTop, 2)
	d.SetSlot(SlotBottom, 1)
	assert.Equal(t, []Slot{SlotBottom, SlotTop}, d.PopulatedSlots())

	d.SetSlot(SlotTop, SlotEmpty)
	assert.Equal(t, []Slot{SlotBottom}, d.PopulatedSlots())
}
