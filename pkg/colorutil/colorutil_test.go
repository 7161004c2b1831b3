package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"black", 0, 0, 0, 0, 0, 0},
		{"white", 255, 255, 255, 0, 0, 1},
		{"red", 255, 0, 0, 0, 1, 1},
		{"green", 0, 255, 0, 120, 1, 1},
		{"blue", 0, 0, 255, 240, 1, 1},
		{"grey", 128, 128, 128, 0, 0, 128.0 / 255.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 1e-6)
			assert.InDelta(t, tt.s, s, 1e-6)
			assert.InDelta(t, tt.v, v, 1e-6)
		})
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    color.NRGBA
	}{
		{"red", 0, 1, 1, color.NRGBA{R: 255, A: 255}},
		{"green", 120, 1, 1, color.NRGBA{G: 255, A: 255}},
		{"blue", 240, 1, 1, color.NRGBA{B: 255, A: 255}},
		{"white", 0, 0, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"wraps negative hue", -120, 1, 1, color.NRGBA{B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HSVToRGB(tt.h, tt.s, tt.v))
		})
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, c := range []color.NRGBA{Amber, Blush, Charcoal} {
		h, s, v := RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
		back := HSVToRGB(h, s, v)
		assert.InDelta(t, float64(c.R), float64(back.R), 1)
		assert.InDelta(t, float64(c.G), float64(back.G), 1)
		assert.InDelta(t, float64(c.B), float64(back.B), 1)
	}
}

func TestRelativeLuminance(t *testing.T) {
	assert.InDelta(t, 0, RelativeLuminance(color.NRGBA{A: 255}), 1e-6)
	assert.InDelta(t, 1, RelativeLuminance(color.NRGBA{R: 255, G: 255, B: 255, A: 255}), 1e-6)

	grey := RelativeLuminance(color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	assert.Greater(t, grey, 0.4)
	assert.Less(t, grey, 0.6)
}
