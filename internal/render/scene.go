package render

import (
	"image/color"

	"keychain-studio/internal/catalog"
	"keychain-studio/internal/design"
	"keychain-studio/pkg/colorutil"
	"keychain-studio/pkg/geometry"
)

// RefSize is the square canvas reference resolution in pixels. Normalized
// design coordinates resolve against it, and previews and exports are
// captured at it.
const RefSize = 800

// The base shape occupies this fraction of the canvas width, centered.
const baseWidthFrac = 0.80

// Layer is one charm draw request within a scene.
type Layer struct {
	Path     string
	Center   geometry.Point2D // normalized [0,1] coordinates
	Scale    float64          // fraction of the canvas width
	Selected bool             // actively dragged, gets the selection guides
}

// Interaction is the transient UI state a render pass cares about:
// which item is being dragged and whether manual mode is in its editing
// sub-state (guides allowed) or clean preview.
type Interaction struct {
	DraggingID string
	Editing    bool
}

// Scene is everything one render pass needs, captured up front so the pass
// stays isolated from state changes that happen while it runs.
type Scene struct {
	Size       int
	Zoom       float64
	BasePath   string
	Charms     []Layer
	ShowGuides bool
	Background color.Color
}

// BuildScene derives the draw list from a design snapshot: the base at its
// fixed layout, then one charm layer per populated slot (fixed mode) or per
// placed item in list order (manual mode, later items on top).
func BuildScene(d design.Design, inter Interaction, cat *catalog.Catalog) Scene {
	sc := Scene{
		Size:       RefSize,
		Zoom:       d.Zoom,
		BasePath:   cat.Base(d.BaseIndex).Path,
		Background: colorutil.Cream,
	}

	switch d.Mode {
	case design.ModeFixed:
		for _, slot := range d.PopulatedSlots() {
			layout := slot.Layout()
			sc.Charms = append(sc.Charms, Layer{
				Path:   cat.Charm(d.Slots[slot]).Path,
				Center: layout.Pos,
				Scale:  layout.Scale,
			})
		}
	case design.ModeManual:
		sc.ShowGuides = inter.Editing
		for _, item := range d.ManualItems {
			sc.Charms = append(sc.Charms, Layer{
				Path:     cat.Charm(item.CharmIndex).Path,
				Center:   item.Center(),
				Scale:    item.Z,
				Selected: inter.Editing && inter.DraggingID != "" && item.ID == inter.DraggingID,
			})
		}
	}
	return sc
}

// WithoutGuides returns a copy of the scene with all editing decoration
// stripped, for preview capture and export.
func (s Scene) WithoutGuides() Scene {
	s.ShowGuides = false
	charms := make([]Layer, len(s.Charms))
	copy(charms, s.Charms)
	for i := range charms {
		charms[i].Selected = false
	}
	s.Charms = charms
	return s
}

// CharmRect derives a charm's pixel rectangle at unit zoom: width is canvas
// size times scale, height preserves the source aspect ratio, centered on
// the normalized position.
func CharmRect(center geometry.Point2D, scale float64, size, imgW, imgH int) geometry.Rect {
	w := float64(size) * scale
	h := w * float64(imgH) / float64(imgW)
	return geometry.RectAround(
		geometry.NewPoint2D(center.X*float64(size), center.Y*float64(size)), w, h)
}

// BaseRect derives the base layer's fixed layout rectangle: 80% of the
// canvas width, aspect preserved, centered.
func BaseRect(size, imgW, imgH int) geometry.Rect {
	w := float64(size) * baseWidthFrac
	h := w * float64(imgH) / float64(imgW)
	c := float64(size) / 2
	return geometry.RectAround(geometry.NewPoint2D(c, c), w, h)
}
