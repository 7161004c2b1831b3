package render

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"keychain-studio/pkg/colorutil"
	"keychain-studio/pkg/geometry"
)

// Compositor flattens scenes into raster images. A single instance is
// shared by every render pass; it owns no mutable state beyond the cache.
type Compositor struct {
	cache *ImageCache
}

// NewCompositor creates a compositor over the given cache.
func NewCompositor(cache *ImageCache) *Compositor {
	return &Compositor{cache: cache}
}

// Cache exposes the compositor's image cache.
func (c *Compositor) Cache() *ImageCache {
	return c.cache
}

type resolvedImage struct {
	img image.Image
	err error
}

// resolveAll fetches every image the scene needs as one batch and waits for
// all of them, so a frame never mixes freshly decoded layers with stale ones.
func (c *Compositor) resolveAll(sc Scene) map[string]resolvedImage {
	paths := make(map[string]struct{}, len(sc.Charms)+1)
	if sc.BasePath != "" {
		paths[sc.BasePath] = struct{}{}
	}
	for _, layer := range sc.Charms {
		paths[layer.Path] = struct{}{}
	}

	results := make(map[string]resolvedImage, len(paths))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for path := range paths {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			img, err := c.cache.Resolve(p)
			mu.Lock()
			results[p] = resolvedImage{img: img, err: err}
			mu.Unlock()
		}(path)
	}
	wg.Wait()
	return results
}

// Render composites the scene into a flattened image. Layer failures
// degrade to visible placeholders, never to a missing frame.
func (c *Compositor) Render(sc Scene) *image.RGBA {
	resolved := c.resolveAll(sc)

	dst := image.NewRGBA(image.Rect(0, 0, sc.Size, sc.Size))
	dc := gg.NewContextForRGBA(dst)

	bg := sc.Background
	if bg == nil {
		bg = colorutil.Cream
	}
	dc.SetColor(bg)
	dc.Clear()

	// One global transform: zoom is a uniform magnification about the canvas
	// center, applied identically to every layer.
	half := float64(sc.Size) / 2
	dc.Translate(half, half)
	dc.Scale(sc.Zoom, sc.Zoom)
	dc.Translate(-half, -half)

	c.drawBase(dc, sc, resolved)
	for _, layer := range sc.Charms {
		c.drawCharm(dc, sc, layer, resolved)
	}
	return dst
}

func (c *Compositor) drawBase(dc *gg.Context, sc Scene, resolved map[string]resolvedImage) {
	r, ok := resolved[sc.BasePath]
	if !ok || r.err != nil {
		c.drawBaseError(dc, sc)
		return
	}

	b := r.img.Bounds()
	rect := BaseRect(sc.Size, b.Dx(), b.Dy())
	scaled := scaleImage(r.img, roundPx(rect.Width), roundPx(rect.Height))

	shadow, pad := dropShadow(scaled, shadowAlpha, shadowBlurRadius)
	dc.DrawImage(shadow, roundPx(rect.X)-pad+shadowOffsetX, roundPx(rect.Y)-pad+shadowOffsetY)
	dc.DrawImage(scaled, roundPx(rect.X), roundPx(rect.Y))
}

// drawBaseError paints the failure in plain sight instead of leaving a
// blank canvas: the message plus the path that did not load.
func (c *Compositor) drawBaseError(dc *gg.Context, sc Scene) {
	half := float64(sc.Size) / 2

	dc.SetColor(colorutil.Slate)
	dc.SetLineWidth(2)
	dc.SetDash(10, 6)
	box := geometry.RectAround(geometry.NewPoint2D(half, half), float64(sc.Size)*0.5, float64(sc.Size)*0.3)
	dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	dc.Stroke()
	dc.SetDash()

	dc.SetColor(colorutil.Charcoal)
	if c.setFontFace(dc, 22) {
		dc.DrawStringAnchored("Could not load base image", half, half-14, 0.5, 0.5)
	}
	if c.setFontFace(dc, 14) {
		dc.DrawStringAnchored(sc.BasePath, half, half+16, 0.5, 0.5)
	}
}

func (c *Compositor) drawCharm(dc *gg.Context, sc Scene, layer Layer, resolved map[string]resolvedImage) {
	r, ok := resolved[layer.Path]
	if !ok || r.err != nil {
		// Square fallback footprint; same visible-failure policy as the base.
		rect := CharmRect(layer.Center, layer.Scale, sc.Size, 1, 1)
		c.drawCharmError(dc, rect)
		if sc.ShowGuides && layer.Selected {
			c.drawSelection(dc, rect, sc.Zoom)
		}
		return
	}

	b := r.img.Bounds()
	rect := CharmRect(layer.Center, layer.Scale, sc.Size, b.Dx(), b.Dy())
	scaled := scaleImage(r.img, roundPx(rect.Width), roundPx(rect.Height))
	dc.DrawImage(scaled, roundPx(rect.X), roundPx(rect.Y))

	if sc.ShowGuides && layer.Selected {
		c.drawSelection(dc, rect, sc.Zoom)
	}
}

// drawCharmError marks a charm that failed to resolve with a crossed box
// at its footprint.
func (c *Compositor) drawCharmError(dc *gg.Context, rect geometry.Rect) {
	dc.SetColor(color.NRGBA{R: colorutil.Slate.R, G: colorutil.Slate.G, B: colorutil.Slate.B, A: 48})
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	dc.Fill()

	dc.SetColor(colorutil.Slate)
	dc.SetLineWidth(2)
	dc.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	dc.Stroke()
	dc.DrawLine(rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height)
	dc.DrawLine(rect.X+rect.Width, rect.Y, rect.X, rect.Y+rect.Height)
	dc.Stroke()
}

// drawSelection draws the dashed outline and center handle for the layer
// under drag. Widths divide by zoom so the on-screen thickness stays
// constant at any magnification.
func (c *Compositor) drawSelection(dc *gg.Context, rect geometry.Rect, zoom float64) {
	out := rect.Inset(-4 / zoom)

	dc.SetColor(colorutil.Amber)
	dc.SetLineWidth(2 / zoom)
	dc.SetDash(8/zoom, 5/zoom)
	dc.DrawRectangle(out.X, out.Y, out.Width, out.Height)
	dc.Stroke()
	dc.SetDash()

	center := rect.Center()
	dc.DrawCircle(center.X, center.Y, 4/zoom)
	dc.Fill()
}

func (c *Compositor) setFontFace(dc *gg.Context, size float64) bool {
	f, err := uiFont()
	if err != nil {
		return false
	}
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: size}))
	return true
}

var fontOnce struct {
	sync.Once
	font *truetype.Font
	err  error
}

func uiFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontOnce.font, fontOnce.err = truetype.Parse(goregular.TTF)
	})
	return fontOnce.font, fontOnce.err
}

func roundPx(v float64) int {
	// int() truncates toward zero, which would round negatives up.
	return int(math.Floor(v + 0.5))
}
