// Command genassets draws placeholder catalog art and writes a matching
// manifest, so the app can run before real product photos exist.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"keychain-studio/internal/catalog"
	"keychain-studio/pkg/colorutil"

	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"
)

const artSize = 512

func main() {
	outDir := flag.String("out", "assets", "Output directory for images and manifest.json")
	flag.Parse()

	cat := catalog.Default()

	for _, sub := range []string{"bases", "charms"} {
		if err := os.MkdirAll(filepath.Join(*outDir, sub), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", sub, err)
			os.Exit(1)
		}
	}

	// One distinct hue per entry, spaced evenly around the wheel.
	total := len(cat.Bases) + len(cat.Charms)
	step := 360.0 / float64(total)

	var g errgroup.Group
	for i, e := range cat.Bases {
		i := i // per-iteration copy; lang go1.21 shares the loop variable
		hue := math.Mod(25+step*float64(i), 360)
		dest := filepath.Join(*outDir, filepath.FromSlash(e.Path))
		g.Go(func() error {
			return drawBase(i, hue, dest)
		})
	}
	for i, e := range cat.Charms {
		i := i // per-iteration copy; lang go1.21 shares the loop variable
		hue := math.Mod(25+step*float64(len(cat.Bases)+i), 360)
		dest := filepath.Join(*outDir, filepath.FromSlash(e.Path))
		g.Go(func() error {
			return drawCharm(i, hue, dest)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to draw assets: %v\n", err)
		os.Exit(1)
	}

	// Manifest paths stay relative; the app anchors them to its asset dir.
	if err := cat.SaveToFile(filepath.Join(*outDir, catalog.ManifestName)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write manifest: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d images and %s under %s\n", total, catalog.ManifestName, *outDir)
}

// drawBase renders one base shape: soft fill, keyring hole, contrast outline.
func drawBase(index int, hue float64, path string) error {
	const sat, val = 0.50, 0.93
	fill := colorutil.HSVToRGB(hue, sat, val)
	outline := outlineFor(hue, sat, val)

	dc := gg.NewContext(artSize, artSize)
	s := float64(artSize)
	cx, cy := s/2, s/2

	var holeY float64
	switch index {
	case 1: // heart
		heartPath(dc, cx, cy+s*0.05, s*0.42)
		holeY = cy - s*0.02
	case 2: // hexagon
		polygonPath(dc, cx, cy, s*0.44, 6)
		holeY = cy - s*0.32
	case 3: // scallop
		dc.SetColor(fill)
		for i := 0; i < 10; i++ {
			a := 2 * math.Pi * float64(i) / 10
			dc.DrawCircle(cx+math.Cos(a)*s*0.36, cy+math.Sin(a)*s*0.36, s*0.11)
			dc.Fill()
		}
		dc.DrawCircle(cx, cy, s*0.38)
		holeY = cy - s*0.26
	default: // rounded tag
		dc.DrawRoundedRectangle(cx-s*0.26, cy-s*0.40, s*0.52, s*0.80, s*0.09)
		holeY = cy - s*0.30
	}

	// Punch the keyring hole through the fill.
	dc.NewSubPath()
	dc.DrawCircle(cx, holeY, s*0.05)
	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(s * 0.015)
	dc.Stroke()

	return dc.SavePNG(path)
}

// drawCharm renders one charm glyph with a saturated fill and outline.
func drawCharm(index int, hue float64, path string) error {
	const sat, val = 0.72, 0.95
	fill := colorutil.HSVToRGB(hue, sat, val)
	outline := outlineFor(hue, sat, val)

	dc := gg.NewContext(artSize, artSize)
	s := float64(artSize)
	cx, cy := s/2, s/2

	switch index {
	case 1: // moon
		dc.DrawArc(cx-s*0.06, cy, s*0.42, gg.Radians(-115), gg.Radians(115))
		dc.DrawArc(cx+s*0.16, cy, s*0.34, gg.Radians(125), gg.Radians(-125))
		dc.ClosePath()
	case 2: // little heart
		heartPath(dc, cx, cy+s*0.05, s*0.40)
	case 3: // dewdrop
		dc.MoveTo(cx, cy-s*0.46)
		dc.CubicTo(cx+s*0.34, cy-s*0.04, cx+s*0.28, cy+s*0.38, cx, cy+s*0.38)
		dc.CubicTo(cx-s*0.28, cy+s*0.38, cx-s*0.34, cy-s*0.04, cx, cy-s*0.46)
		dc.ClosePath()
	case 4: // ring
		dc.DrawCircle(cx, cy, s*0.42)
		dc.NewSubPath()
		dc.DrawCircle(cx, cy, s*0.26)
		dc.SetFillRule(gg.FillRuleEvenOdd)
	case 5: // bolt
		boltPath(dc, cx, cy, s*0.45)
	default: // star
		starPath(dc, cx, cy, s*0.46, s*0.19)
	}

	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(s * 0.02)
	dc.Stroke()

	return dc.SavePNG(path)
}

// outlineFor picks a stroke color that stays visible against the fill.
func outlineFor(h, s, v float64) color.NRGBA {
	fill := colorutil.HSVToRGB(h, s, v)
	if colorutil.RelativeLuminance(fill) > 0.3 {
		return colorutil.HSVToRGB(h, math.Min(1, s*1.2), v*0.55)
	}
	return colorutil.HSVToRGB(h, s*0.5, math.Min(1, v*1.5))
}

func heartPath(dc *gg.Context, cx, cy, s float64) {
	dc.MoveTo(cx, cy+0.7*s)
	dc.CubicTo(cx-1.2*s, cy-0.1*s, cx-0.6*s, cy-1.0*s, cx, cy-0.4*s)
	dc.CubicTo(cx+0.6*s, cy-1.0*s, cx+1.2*s, cy-0.1*s, cx, cy+0.7*s)
	dc.ClosePath()
}

func polygonPath(dc *gg.Context, cx, cy, r float64, sides int) {
	for i := 0; i < sides; i++ {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(sides)
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func starPath(dc *gg.Context, cx, cy, outer, inner float64) {
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := -math.Pi/2 + math.Pi*float64(i)/5
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

func boltPath(dc *gg.Context, cx, cy, s float64) {
	pts := [][2]float64{
		{0.18, -1.0}, {-0.42, 0.12}, {-0.06, 0.12},
		{-0.18, 1.0}, {0.42, -0.18}, {0.06, -0.18},
	}
	for i, p := range pts {
		x, y := cx+p[0]*s, cy+p[1]*s
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}
