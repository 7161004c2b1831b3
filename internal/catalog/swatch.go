package catalog

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/stat"

	"keychain-studio/pkg/colorutil"
)

// Swatch derives a representative chip color for a catalog image: the
// alpha-weighted mean of its pixels, nudged toward full saturation because
// plain averages of artwork read muddy in small UI chips.
//
// Fully transparent images fall back to a neutral grey.
func Swatch(img image.Image) color.NRGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return colorutil.Slate
	}

	// Sample on a grid; full resolution buys nothing for a 20px chip.
	step := bounds.Dx() / 64
	if step < 1 {
		step = 1
	}

	var rs, gs, bs, ws []float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			// Un-premultiply so translucent edge pixels keep their hue.
			rs = append(rs, float64(r)/float64(a)*255)
			gs = append(gs, float64(g)/float64(a)*255)
			bs = append(bs, float64(b)/float64(a)*255)
			ws = append(ws, float64(a)/0xffff)
		}
	}
	if len(ws) == 0 {
		return colorutil.Slate
	}

	h, s, v := colorutil.RGBToHSV(
		stat.Mean(rs, ws),
		stat.Mean(gs, ws),
		stat.Mean(bs, ws),
	)

	s = min(1, s*1.15)
	v = min(1, v*1.05)
	return colorutil.HSVToRGB(h, s, v)
}
