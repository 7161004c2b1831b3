package canvas

import (
	"image"
	"math"

	"keychain-studio/internal/render"
	"keychain-studio/pkg/geometry"
)

// viewSquare returns the centered square the composite occupies inside a
// widget of the given size, letterboxing along the longer dimension.
func viewSquare(w, h float64) (side, ox, oy float64) {
	side = math.Min(w, h)
	ox = (w - side) / 2
	oy = (h - side) / 2
	return
}

// fitRect is viewSquare in pixel units for the raster draw.
func fitRect(w, h int) image.Rectangle {
	side, ox, oy := viewSquare(float64(w), float64(h))
	return image.Rect(int(ox), int(oy), int(ox+side), int(oy+side))
}

// widgetToDesign maps a widget-space pointer position to normalized design
// coordinates: undo the letterbox fit, then the same zoom-about-center
// transform the compositor draws with. Interaction and rendering share this
// mapping, so hits line up with pixels at any zoom.
func widgetToDesign(x, y, w, h, zoom float64) (geometry.Point2D, bool) {
	side, ox, oy := viewSquare(w, h)
	if side <= 0 {
		return geometry.Point2D{}, false
	}

	px := (x - ox) / side * render.RefSize
	py := (y - oy) / side * render.RefSize

	half := float64(render.RefSize) / 2
	inv, ok := geometry.ZoomAbout(geometry.NewPoint2D(half, half), zoom).Inverse()
	if !ok {
		return geometry.Point2D{}, false
	}
	p := inv.Apply(geometry.NewPoint2D(px, py))
	return geometry.NewPoint2D(p.X/render.RefSize, p.Y/render.RefSize), true
}
