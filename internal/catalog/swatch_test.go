package catalog

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"keychain-studio/pkg/colorutil"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestSwatchSolidColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(img, color.NRGBA{R: 255, A: 255})

	got := Swatch(img)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, got)
}

func TestSwatchIgnoresTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(img, color.NRGBA{G: 255}) // green, but fully transparent
	for y := 0; y < 16; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	got := Swatch(img)
	assert.Equal(t, uint8(255), got.R)
	assert.Equal(t, uint8(0), got.G)
}

func TestSwatchTranslucentKeepsHue(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(img, color.NRGBA{B: 255, A: 96})

	got := Swatch(img)
	assert.Equal(t, uint8(255), got.B)
	assert.Equal(t, uint8(0), got.R)
}

func TestSwatchFallbacks(t *testing.T) {
	empty := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	assert.Equal(t, colorutil.Slate, Swatch(empty))

	clear := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	assert.Equal(t, colorutil.Slate, Swatch(clear))
}
