// Package canvas provides the interactive design canvas widget.
package canvas

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"keychain-studio/internal/app"
	"keychain-studio/internal/design"
	"keychain-studio/internal/render"
	"keychain-studio/pkg/colorutil"
	"keychain-studio/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

const (
	previewDelay = 500 * time.Millisecond
	zoomStep     = 0.05
)

// DesignCanvas displays the composited keychain design and handles canvas
// interaction: dragging placed charms, tap-to-place, and wheel zoom.
// Compositing runs in background passes; the raster only presents the most
// recent finished composite, letterboxed into the widget.
type DesignCanvas struct {
	widget.BaseWidget

	state      *app.State
	compositor *render.Compositor

	raster *fynecanvas.Raster

	// Most recent finished composite.
	mu        sync.Mutex
	composite *image.RGBA

	// Bumped on every relevant state change; a finished pass publishes
	// only if it still matches.
	generation atomic.Uint64

	// Drag session, touched only from the event goroutine. A gesture whose
	// press point hit nothing is dead until release.
	dragging   bool
	dragDead   bool
	dragID     string
	dragOffset geometry.Point2D // pointer minus item center at grab

	// Debounced clean-preview capture. previewGen is the generation of the
	// published preview; captures behind it are dropped.
	previewMu    sync.Mutex
	previewTimer *time.Timer
	previewGen   uint64
}

var _ fyne.Draggable = (*DesignCanvas)(nil)
var _ fyne.Tappable = (*DesignCanvas)(nil)
var _ fyne.Scrollable = (*DesignCanvas)(nil)

// NewDesignCanvas creates the canvas and subscribes it to state changes.
func NewDesignCanvas(state *app.State, compositor *render.Compositor) *DesignCanvas {
	dc := &DesignCanvas{
		state:      state,
		compositor: compositor,
	}

	dc.raster = fynecanvas.NewRaster(dc.draw)
	dc.raster.SetMinSize(fyne.NewSize(360, 360))
	dc.ExtendBaseWidget(dc)

	for _, ev := range []app.EventType{
		app.EventDesignChanged,
		app.EventModeChanged,
		app.EventEditingChanged,
		app.EventDragChanged,
		app.EventCatalogLoaded,
	} {
		state.On(ev, func(data interface{}) { dc.Schedule() })
	}

	return dc
}

// CreateRenderer implements fyne.Widget.
func (dc *DesignCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(dc.raster)
}

// Refresh redraws the presented composite.
func (dc *DesignCanvas) Refresh() {
	dc.raster.Refresh()
}

// Schedule starts a background render pass for the current state.
func (dc *DesignCanvas) Schedule() {
	gen := dc.generation.Add(1)
	go dc.renderPass(gen)
}

// renderPass snapshots state, composites, and publishes the result unless a
// newer pass started meanwhile. A slow old pass can never overwrite a newer
// composite.
func (dc *DesignCanvas) renderPass(gen uint64) {
	cat := dc.state.Catalog()
	if cat == nil {
		return
	}
	d := dc.state.Design()
	inter := render.Interaction{
		DraggingID: dc.state.DraggingID(),
		Editing:    dc.state.Editing(),
	}
	out := dc.compositor.Render(render.BuildScene(d, inter, cat))

	// The staleness check must sit inside the publish lock, or a pass
	// preempted between check and publish could overwrite a newer frame.
	dc.mu.Lock()
	if cur := dc.generation.Load(); cur != gen {
		dc.mu.Unlock()
		fmt.Printf("canvas: dropping stale render pass %d (current %d)\n", gen, cur)
		return
	}
	dc.composite = out
	dc.mu.Unlock()
	dc.raster.Refresh()

	if dc.state.DraggingID() == "" {
		dc.schedulePreview()
	}
}

// draw presents the latest composite, scaled into the widget square.
func (dc *DesignCanvas) draw(w, h int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(colorutil.Cream), image.Point{}, draw.Src)

	dc.mu.Lock()
	comp := dc.composite
	dc.mu.Unlock()
	if comp == nil || w <= 0 || h <= 0 {
		return out
	}

	xdraw.ApproxBiLinear.Scale(out, fitRect(w, h), comp, comp.Bounds(), xdraw.Src, nil)
	return out
}

// Dragged moves a placed charm. Only manual mode's editing sub-state
// accepts drags; the first event hit-tests at the press point and a miss
// kills the whole gesture.
func (dc *DesignCanvas) Dragged(ev *fyne.DragEvent) {
	if dc.dragDead {
		return
	}
	d := dc.state.Design()
	if d.Mode != design.ModeManual || !dc.state.Editing() {
		return
	}

	sz := dc.Size()
	if !dc.dragging {
		// ev.Dragged is a per-event delta, so the press point can only be
		// recovered on the gesture's first event. A miss marks the gesture
		// dead; re-testing later events would grab whatever charm the
		// pointer sweeps across.
		press := fyne.NewPos(ev.Position.X-ev.Dragged.DX, ev.Position.Y-ev.Dragged.DY)
		p, ok := widgetToDesign(float64(press.X), float64(press.Y),
			float64(sz.Width), float64(sz.Height), d.Zoom)
		if !ok {
			dc.dragDead = true
			return
		}
		id, hit := d.HitTest(p)
		if !hit {
			dc.dragDead = true
			return
		}
		item, _ := d.Item(id)
		dc.dragging = true
		dc.dragID = id
		dc.dragOffset = p.Sub(item.Center())
		dc.state.SetDragging(id)
	}

	p, ok := widgetToDesign(float64(ev.Position.X), float64(ev.Position.Y),
		float64(sz.Width), float64(sz.Height), d.Zoom)
	if !ok {
		return
	}
	target := p.Sub(dc.dragOffset)
	dc.state.MoveManualItem(dc.dragID, target.X, target.Y)
}

// DragEnd releases the drag and captures a preview right away instead of
// waiting out the debounce. Dead gestures revive here even when no session
// ever started.
func (dc *DesignCanvas) DragEnd() {
	dc.dragDead = false
	if !dc.dragging {
		return
	}
	dc.dragging = false
	dc.dragID = ""
	dc.state.SetDragging("")
	go dc.capturePreview()
}

// Tapped places the armed charm at the tap point. Taps with nothing armed,
// outside the canvas square, or outside manual editing do nothing.
func (dc *DesignCanvas) Tapped(ev *fyne.PointEvent) {
	// Workaround for Fyne bug: reject clicks outside widget bounds
	sz := dc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > sz.Width || ev.Position.Y > sz.Height {
		return
	}

	p, ok := widgetToDesign(float64(ev.Position.X), float64(ev.Position.Y),
		float64(sz.Width), float64(sz.Height), dc.state.Zoom())
	if !ok || p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
		return
	}
	dc.state.PlaceArmed(p.X, p.Y)
}

// Scrolled zooms the view, one step per wheel notch.
func (dc *DesignCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		dc.state.AdjustZoom(zoomStep)
	} else if ev.Scrolled.DY < 0 {
		dc.state.AdjustZoom(-zoomStep)
	}
}

// ZoomIn increases the view zoom by one step.
func (dc *DesignCanvas) ZoomIn() {
	dc.state.AdjustZoom(zoomStep)
}

// ZoomOut decreases the view zoom by one step.
func (dc *DesignCanvas) ZoomOut() {
	dc.state.AdjustZoom(-zoomStep)
}

// schedulePreview arms the debounced capture, replacing any pending one.
func (dc *DesignCanvas) schedulePreview() {
	dc.previewMu.Lock()
	defer dc.previewMu.Unlock()
	if dc.previewTimer != nil {
		dc.previewTimer.Stop()
	}
	dc.previewTimer = time.AfterFunc(previewDelay, dc.capturePreview)
}

// capturePreview renders the current design without editing decoration and
// publishes it for the order panel and export. Captures publish in
// generation order, so a slow one never replaces a newer preview.
func (dc *DesignCanvas) capturePreview() {
	gen := dc.generation.Load()
	if dc.state.DraggingID() != "" {
		// Mid-drag states are transient; the release captures.
		return
	}
	cat := dc.state.Catalog()
	if cat == nil {
		return
	}
	d := dc.state.Design()
	inter := render.Interaction{Editing: dc.state.Editing()}
	sc := render.BuildScene(d, inter, cat).WithoutGuides()
	out := dc.compositor.Render(sc)

	dc.previewMu.Lock()
	defer dc.previewMu.Unlock()
	if gen < dc.previewGen {
		return
	}
	dc.previewGen = gen
	dc.state.SetPreview(out)
}
