package render

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keychain-studio/pkg/colorutil"
	"keychain-studio/pkg/geometry"
)

var (
	baseBlue = color.NRGBA{B: 255, A: 255}
	charmRed = color.NRGBA{R: 255, A: 255}
)

func solid(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func testCompositor(images map[string]image.Image) *Compositor {
	return NewCompositor(NewImageCache(func(path string) (image.Image, error) {
		img, ok := images[path]
		if !ok {
			return nil, fmt.Errorf("no such asset %s", path)
		}
		return img, nil
	}))
}

func centerScene(zoom float64) Scene {
	return Scene{
		Size:     RefSize,
		Zoom:     zoom,
		BasePath: "base.png",
		Charms: []Layer{
			{Path: "charm.png", Center: geometry.NewPoint2D(0.5, 0.5), Scale: 0.28},
		},
	}
}

func channelsAt(img image.Image, x, y int) (int, int, int) {
	r, g, b, _ := img.At(x, y).RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func assertPixel(t *testing.T, img image.Image, x, y int, want color.NRGBA, tol float64) {
	t.Helper()
	r, g, b := channelsAt(img, x, y)
	assert.InDelta(t, int(want.R), r, tol, "R at (%d,%d)", x, y)
	assert.InDelta(t, int(want.G), g, tol, "G at (%d,%d)", x, y)
	assert.InDelta(t, int(want.B), b, tol, "B at (%d,%d)", x, y)
}

func pixelNear(img image.Image, x, y int, want color.NRGBA, tol int) bool {
	r, g, b := channelsAt(img, x, y)
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(r-int(want.R)) <= tol && abs(g-int(want.G)) <= tol && abs(b-int(want.B)) <= tol
}

func TestRenderCompositesLayers(t *testing.T) {
	comp := testCompositor(map[string]image.Image{
		"base.png":  solid(100, 100, baseBlue),
		"charm.png": solid(64, 64, charmRed),
	})

	img := comp.Render(centerScene(1))
	require.NotNil(t, img)
	assert.Equal(t, RefSize, img.Bounds().Dx())

	// Outside every layer: the default background.
	assertPixel(t, img, 10, 10, colorutil.Cream, 2)
	// Inside the base, above the charm footprint.
	assertPixel(t, img, 400, 100, baseBlue, 2)
	// The charm draws over the base at the canvas center.
	assertPixel(t, img, 400, 400, charmRed, 2)
}

func TestRenderZoomMagnifiesAboutCenter(t *testing.T) {
	comp := testCompositor(map[string]image.Image{
		"base.png":  solid(100, 100, baseBlue),
		"charm.png": solid(64, 64, charmRed),
	})

	at1 := comp.Render(centerScene(1))
	at2 := comp.Render(centerScene(2))

	// The center is a fixed point of the zoom transform.
	assertPixel(t, at1, 400, 400, charmRed, 2)
	assertPixel(t, at2, 400, 400, charmRed, 2)

	// A point outside the charm at 1x falls inside it at 2x.
	assertPixel(t, at1, 250, 400, baseBlue, 2)
	assertPixel(t, at2, 250, 400, charmRed, 2)
}

func TestRenderBaseFailureIsVisible(t *testing.T) {
	comp := testCompositor(map[string]image.Image{
		"charm.png": solid(64, 64, charmRed),
	})

	img := comp.Render(centerScene(1))

	// The failure placeholder must leave visible marks around the center.
	found := false
	for y := 280; y <= 520 && !found; y += 2 {
		for x := 200; x <= 600; x += 2 {
			if !pixelNear(img, x, y, colorutil.Cream, 20) && !pixelNear(img, x, y, charmRed, 20) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected a visible base error placeholder")

	// The charm still renders on top.
	assertPixel(t, img, 400, 400, charmRed, 2)
}

func TestRenderCharmFailureIsVisible(t *testing.T) {
	comp := testCompositor(map[string]image.Image{
		"base.png": solid(100, 100, baseBlue),
	})

	img := comp.Render(centerScene(1))

	// The crossed placeholder box tints the charm footprint away from the
	// plain base color.
	assert.False(t, pixelNear(img, 400, 400, baseBlue, 10),
		"charm failure placeholder should be visible over the base")
	assert.False(t, pixelNear(img, 400, 400, colorutil.Cream, 10))
}

func TestRenderSelectionGuides(t *testing.T) {
	comp := testCompositor(map[string]image.Image{
		"base.png":  solid(100, 100, baseBlue),
		"charm.png": solid(64, 64, charmRed),
	})

	sc := centerScene(1)
	sc.ShowGuides = true
	sc.Charms[0].Selected = true

	img := comp.Render(sc)

	// Center handle dot.
	assertPixel(t, img, 400, 400, colorutil.Amber, 12)

	// Dashed outline along the top edge of the charm rect.
	found := false
	for y := 281; y <= 287 && !found; y++ {
		for x := 285; x <= 515; x++ {
			if pixelNear(img, x, y, colorutil.Amber, 50) {
				found = true
				break
			}
		}
	}
	assert.True(t, found, "expected dashed selection outline")

	// A clean capture of the same scene has no decoration.
	clean := comp.Render(sc.WithoutGuides())
	assertPixel(t, clean, 400, 400, charmRed, 2)
}

func TestRoundPxRoundsNegativesDown(t *testing.T) {
	assert.Equal(t, 1, roundPx(0.7))
	assert.Equal(t, 0, roundPx(0.4))
	assert.Equal(t, -1, roundPx(-0.7))
	assert.Equal(t, -1, roundPx(-1.2))
	assert.Equal(t, -2, roundPx(-1.7))
}
