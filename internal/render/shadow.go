package render

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	xdraw "golang.org/x/image/draw"
)

// Drop shadow tuning for the base layer.
const (
	shadowAlpha      = 80
	shadowBlurRadius = 8.0
	shadowOffsetX    = 6
	shadowOffsetY    = 10
)

// scaleImage resamples src into a w x h image.
func scaleImage(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// dropShadow builds a blurred black silhouette of src. The returned image is
// padded on every side so the blur has room to spread; pad is the padding in
// pixels, to subtract from the draw position.
func dropShadow(src *image.RGBA, alpha uint8, radius float64) (*image.RGBA, int) {
	pad := int(radius * 2)
	b := src.Bounds()

	mask := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*pad, b.Dy()+2*pad))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			a := src.Pix[y*src.Stride+x*4+3]
			if a == 0 {
				continue
			}
			// Premultiplied black at the silhouette's strength.
			sa := uint8(int(a) * int(alpha) / 255)
			i := (y+pad)*mask.Stride + (x+pad)*4
			mask.Pix[i+3] = sa
		}
	}

	return blur.Gaussian(mask, radius), pad
}
