package canvas

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSquareCentersShorterDimension(t *testing.T) {
	side, ox, oy := viewSquare(600, 400)
	assert.Equal(t, 400.0, side)
	assert.Equal(t, 100.0, ox)
	assert.Equal(t, 0.0, oy)

	side, ox, oy = viewSquare(400, 400)
	assert.Equal(t, 400.0, side)
	assert.Equal(t, 0.0, ox)
	assert.Equal(t, 0.0, oy)
}

func TestFitRect(t *testing.T) {
	assert.Equal(t, image.Rect(100, 0, 500, 400), fitRect(600, 400))
	assert.Equal(t, image.Rect(0, 150, 300, 450), fitRect(300, 600))
}

func TestWidgetToDesignAtUnitZoom(t *testing.T) {
	p, ok := widgetToDesign(200, 200, 400, 400, 1.0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Y, 1e-9)

	p, ok = widgetToDesign(100, 100, 400, 400, 1.0)
	require.True(t, ok)
	assert.InDelta(t, 0.25, p.X, 1e-9)
	assert.InDelta(t, 0.25, p.Y, 1e-9)
}

func TestWidgetToDesignUndoesLetterbox(t *testing.T) {
	// 600x400 widget letterboxes to a 400 square starting at x=100.
	p, ok := widgetToDesign(300, 200, 600, 400, 1.0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
}

func TestWidgetToDesignUndoesZoom(t *testing.T) {
	// The canvas center is zoom's fixed point.
	p, ok := widgetToDesign(200, 200, 400, 400, 2.0)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Y, 1e-9)

	// At zoom 2 a point three quarters across the widget sits only an
	// eighth past the design center.
	p, ok = widgetToDesign(300, 200, 400, 400, 2.0)
	require.True(t, ok)
	assert.InDelta(t, 0.625, p.X, 1e-9)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
}

func TestWidgetToDesignRejectsEmptyWidget(t *testing.T) {
	_, ok := widgetToDesign(0, 0, 0, 0, 1.0)
	assert.False(t, ok)
}
