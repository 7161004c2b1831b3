// Package colorutil provides shared color utilities for the keychain studio application.
package colorutil

import (
	"image/color"
	"math"
)

// Brand palette used throughout the application.
var (
	Cream    = color.NRGBA{R: 0xFA, G: 0xF5, B: 0xEC, A: 0xFF} // canvas backdrop
	Charcoal = color.NRGBA{R: 0x2B, G: 0x29, B: 0x26, A: 0xFF} // text, outlines
	Amber    = color.NRGBA{R: 0xE8, G: 0x9C, B: 0x31, A: 0xFF} // primary accent
	Blush    = color.NRGBA{R: 0xE8, G: 0x6A, B: 0x73, A: 0xFF} // secondary accent
	Slate    = color.NRGBA{R: 0x6E, G: 0x6A, B: 0x63, A: 0xFF} // muted labels, placeholders
)

// RGBToHSV converts RGB (0-255) to HSV with H in 0-360 degrees and S, V in 0-1.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	return h, s, v
}

// HSVToRGB converts HSV (H in 0-360 degrees, S and V in 0-1) to an opaque color.
func HSVToRGB(h, s, v float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}

// RelativeLuminance returns the perceptual luminance of a color in 0-1,
// using the Rec. 709 coefficients.
func RelativeLuminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
}
